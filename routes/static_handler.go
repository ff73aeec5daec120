package routes

import (
	"io/ioutil"
	"log"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/abocci/phrasepush/models"
	"github.com/markbates/pkger"
)

// StaticHandler serves the embedded PWA files (index, service worker, icons).
type StaticHandler struct {
	config *models.Config
	assets map[string][]byte
}

func NewStaticHandler(config *models.Config) *StaticHandler {
	return &StaticHandler{config: config, assets: make(map[string][]byte)}
}

// LoadAssets reads every file under the pkger-included directory into memory.
func (g *StaticHandler) LoadAssets(dir string) error {
	return pkger.Walk(dir, func(filePath string, info os.FileInfo, _ error) error {
		if info.IsDir() {
			return nil
		}
		// Load file from pkger virtual file, or real file if pkged.go has not
		// yet been generated, during development.
		f, err := pkger.Open(filePath)
		if err != nil {
			return err
		}
		defer f.Close()
		content, err := ioutil.ReadAll(f)
		if err != nil {
			return err
		}
		assetPath := filePath
		if idx := strings.Index(assetPath, ":"); idx >= 0 {
			assetPath = assetPath[idx+1:]
		}
		assetPath = strings.TrimPrefix(assetPath, "/public")
		g.assets[assetPath] = content
		return nil
	})
}

func (g *StaticHandler) HandleStaticAsset(response http.ResponseWriter, request *http.Request) {
	fileName := request.URL.Path
	if fileName == "/" {
		fileName = "/index.html"
	}
	content, exists := g.assets[fileName]
	if !exists {
		log.Printf("StaticHandler: %s: not found", fileName)
		http.Error(response, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	if contentType := mime.TypeByExtension(path.Ext(fileName)); contentType != "" {
		response.Header().Set("Content-Type", contentType)
	}
	response.Write(content)
}
