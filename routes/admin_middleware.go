package routes

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/abocci/phrasepush/models"
	"github.com/abocci/phrasepush/utils"
)

// AdminGuard protects the /admin endpoints with the shared-secret header.
type AdminGuard struct {
	config *models.Config
	utils  *utils.Utils
}

func NewAdminGuard(config *models.Config) *AdminGuard {
	return &AdminGuard{config: config, utils: utils.New(config)}
}

func (g *AdminGuard) Middleware(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(g.config.AdminKey)) != 1 {
			log.Printf("AdminGuard: rejected %s %s from %s with bad admin key", r.Method, r.URL.Path, g.utils.GetClientIP(r))
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		h(w, r)
	}
}
