package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/abocci/phrasepush/models"
	"github.com/abocci/phrasepush/services"
	"github.com/abocci/phrasepush/utils"
	"gorm.io/gorm"
)

type AdminController struct {
	config     *models.Config
	dispatcher *services.Dispatcher
	manager    *services.SubscriptionManager
}

// New creates an instance of the controller and sets its DB handle
func New(db *gorm.DB, config *models.Config, dispatcher *services.Dispatcher) *AdminController {
	return &AdminController{
		config:     config,
		dispatcher: dispatcher,
		manager:    services.NewSubscriptionManager(db, config),
	}
}

// Broadcast pushes one phrase to every active subscriber and returns the
// aggregate counts plus the phrases used per language/difficulty combination.
func (c *AdminController) Broadcast(w http.ResponseWriter, r *http.Request) {
	report, err := c.dispatcher.Broadcast()
	if err != nil {
		log.Printf("AdminController: Broadcast error: %s", err.Error())
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Broadcast failed"}, http.StatusInternalServerError)
		return
	}
	utils.JSONResponse(w, map[string]interface{}{
		"ok":      true,
		"sent":    report.Sent,
		"failed":  report.Failed,
		"phrases": report.Phrases,
	}, http.StatusOK)
}

type sendNowRequest struct {
	Endpoint  string `json:"endpoint"`
	IOSToken  string `json:"iosToken"`
	AppIsOpen bool   `json:"appIsOpen"`
}

// SendNow delivers one fresh phrase to a single subscriber.
func (c *AdminController) SendNow(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, c.config.MaxBodySize)

	var body sendNowRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Invalid body"}, http.StatusBadRequest)
		return
	}
	id := services.Identifier{Endpoint: body.Endpoint, IOSToken: body.IOSToken}
	if id.IsZero() {
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Missing endpoint or iosToken"}, http.StatusBadRequest)
		return
	}

	if err := c.dispatcher.SendNow(id, body.AppIsOpen); err != nil {
		if errors.Is(err, services.ErrSubscriptionNotFound) {
			utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Subscription not found"}, http.StatusNotFound)
			return
		}
		log.Printf("AdminController: Send now failed: %s", err.Error())
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Failed to send notification"}, http.StatusInternalServerError)
		return
	}
	utils.JSONResponse(w, map[string]interface{}{"ok": true, "sent": 1}, http.StatusOK)
}

type subscriptionSummary struct {
	ID                     string     `json:"id"`
	Platform               string     `json:"platform"`
	Language               string     `json:"language"`
	Difficulty             string     `json:"difficulty"`
	Deactivated            bool       `json:"deactivated"`
	LastNotificationSentAt *time.Time `json:"lastNotificationSentAt"`
}

// ListSubscriptions returns every stored subscription, without the
// transport credentials.
func (c *AdminController) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subscriptions, err := c.manager.ListAll()
	if err != nil {
		log.Printf("AdminController: Error listing subscriptions: %s", err.Error())
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Failed to list subscriptions"}, http.StatusInternalServerError)
		return
	}

	subs := make([]subscriptionSummary, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		subs = append(subs, subscriptionSummary{
			ID:                     subscription.ID.String(),
			Platform:               subscription.Platform,
			Language:               subscription.Language,
			Difficulty:             subscription.Difficulty,
			Deactivated:            subscription.Deactivated,
			LastNotificationSentAt: subscription.LastNotificationSentAt,
		})
	}
	utils.JSONResponse(w, map[string]interface{}{"ok": true, "count": len(subs), "subs": subs}, http.StatusOK)
}
