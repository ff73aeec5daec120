package routes

import (
	"log"
	"net/http"
	"os"

	adminController "github.com/abocci/phrasepush/controllers/admin"
	historyController "github.com/abocci/phrasepush/controllers/history"
	subscriptionController "github.com/abocci/phrasepush/controllers/subscription"
	"github.com/abocci/phrasepush/models"
	"github.com/abocci/phrasepush/services"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/markbates/pkger"
	"gorm.io/gorm"
)

func New(config *models.Config, db *gorm.DB, dispatcher *services.Dispatcher) http.Handler {
	// Prepare embedded PWA assets
	dir := pkger.Include("/public")
	staticHandler := NewStaticHandler(config)
	if err := staticHandler.LoadAssets(dir); err != nil {
		log.Fatalf("Error loading static assets: %s", err.Error())
	}

	router := mux.NewRouter()
	logged := func(h http.HandlerFunc) http.Handler {
		return handlers.LoggingHandler(os.Stdout, h)
	}

	router.Handle("/vapidPublicKey", logged(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(config.VapidPublicKey))
	})).Methods(http.MethodGet)

	subscriptionC := subscriptionController.New(db, config)
	router.Handle("/subscribe", logged(subscriptionC.Subscribe)).Methods(http.MethodPost)
	router.Handle("/subscribe", logged(subscriptionC.Unsubscribe)).Methods(http.MethodDelete)
	router.Handle("/subscribe/exists", logged(subscriptionC.Exists)).Methods(http.MethodGet)
	router.Handle("/subscribe/language", logged(subscriptionC.UpdateLanguage)).Methods(http.MethodPatch)
	router.Handle("/subscribe/difficulty", logged(subscriptionC.UpdateDifficulty)).Methods(http.MethodPatch)
	router.Handle("/subscribe/ios", logged(subscriptionC.SubscribeIOS)).Methods(http.MethodPost)
	router.Handle("/subscribe/ios", logged(subscriptionC.UnsubscribeIOS)).Methods(http.MethodDelete)
	router.Handle("/subscribe/ios/exists", logged(subscriptionC.ExistsIOS)).Methods(http.MethodGet)

	historyC := historyController.New(db, config)
	router.Handle("/last-notification", logged(historyC.LastNotification)).Methods(http.MethodGet)
	router.Handle("/notifications", logged(historyC.Notifications)).Methods(http.MethodGet)

	adminC := adminController.New(db, config, dispatcher)
	guard := NewAdminGuard(config)
	router.Handle("/admin/broadcast", logged(guard.Middleware(adminC.Broadcast))).Methods(http.MethodPost)
	router.Handle("/admin/send-now", logged(guard.Middleware(adminC.SendNow))).Methods(http.MethodPost)
	router.Handle("/admin/subs", logged(guard.Middleware(adminC.ListSubscriptions))).Methods(http.MethodGet)

	// Everything else is the embedded PWA.
	router.PathPrefix("/").Handler(logged(staticHandler.HandleStaticAsset)).Methods(http.MethodGet)

	return router
}
