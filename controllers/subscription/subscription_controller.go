package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/abocci/phrasepush/models"
	"github.com/abocci/phrasepush/services"
	"github.com/abocci/phrasepush/utils"
	"gorm.io/gorm"
)

type SubscriptionController struct {
	config  *models.Config
	manager *services.SubscriptionManager
}

// New creates an instance of the controller and sets its DB handle
func New(db *gorm.DB, config *models.Config) *SubscriptionController {
	return &SubscriptionController{
		config:  config,
		manager: services.NewSubscriptionManager(db, config),
	}
}

type preferenceFields struct {
	Language   string `json:"language"`
	Difficulty string `json:"difficulty"`
}

// Subscribe stores a browser push subscription. The body is the subscription
// object from PushManager.subscribe(), optionally carrying language and
// difficulty preferences.
func (c *SubscriptionController) Subscribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, c.config.MaxBodySize) // Refuse request with big body

	// Keep the raw body: it is stored verbatim and replayed to the push
	// service on every send.
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	// Validate that what we receive is a valid web push subscription.
	subscription := &webpush.Subscription{}
	if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(subscription); err != nil || subscription.Endpoint == "" {
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Missing endpoint"}, http.StatusBadRequest)
		return
	}

	// Preferences are optional extras on the subscription object; absent or
	// malformed values fall back to the defaults at write time.
	var prefs preferenceFields
	_ = json.Unmarshal(bodyBytes, &prefs)

	if _, err := c.manager.UpsertWeb(subscription.Endpoint, string(bodyBytes), prefs.Language, prefs.Difficulty); err != nil {
		log.Printf("SubscriptionController: Error saving web subscription: %s", err.Error())
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Failed to subscribe"}, http.StatusInternalServerError)
		return
	}
	utils.JSONResponse(w, map[string]interface{}{"ok": true}, http.StatusOK)
}

// Exists reports whether an active subscription is stored for the endpoint.
func (c *SubscriptionController) Exists(w http.ResponseWriter, r *http.Request) {
	endpoint := r.URL.Query().Get("endpoint")
	if endpoint == "" {
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Missing endpoint"}, http.StatusBadRequest)
		return
	}
	c.respondExists(w, services.Identifier{Endpoint: endpoint})
}

// Unsubscribe deactivates the subscription for the endpoint in the body.
func (c *SubscriptionController) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, c.config.MaxBodySize)

	var body struct {
		Endpoint string `json:"endpoint"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Endpoint == "" {
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Missing endpoint"}, http.StatusBadRequest)
		return
	}
	c.deactivate(w, services.Identifier{Endpoint: body.Endpoint})
}

type iosSubscribeRequest struct {
	Token      string `json:"token"`
	Language   string `json:"language"`
	Difficulty string `json:"difficulty"`
}

// SubscribeIOS stores an APNs device token reported by the Capacitor app.
func (c *SubscriptionController) SubscribeIOS(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, c.config.MaxBodySize)

	var body iosSubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Token == "" {
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Missing token"}, http.StatusBadRequest)
		return
	}
	if !c.config.HasAPNS() {
		log.Printf("SubscriptionController: accepting ios token while APNs sending is disabled")
	}

	if _, err := c.manager.UpsertIOS(body.Token, body.Language, body.Difficulty); err != nil {
		log.Printf("SubscriptionController: Error saving ios subscription: %s", err.Error())
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Failed to subscribe"}, http.StatusInternalServerError)
		return
	}
	utils.JSONResponse(w, map[string]interface{}{"ok": true}, http.StatusOK)
}

// ExistsIOS reports whether an active subscription is stored for the device token.
func (c *SubscriptionController) ExistsIOS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Missing token"}, http.StatusBadRequest)
		return
	}
	c.respondExists(w, services.Identifier{IOSToken: token})
}

// UnsubscribeIOS deactivates the subscription for the device token in the body.
func (c *SubscriptionController) UnsubscribeIOS(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, c.config.MaxBodySize)

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Token == "" {
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Missing token"}, http.StatusBadRequest)
		return
	}
	c.deactivate(w, services.Identifier{IOSToken: body.Token})
}

type preferenceRequest struct {
	Endpoint   string `json:"endpoint"`
	IOSToken   string `json:"iosToken"`
	Language   string `json:"language"`
	Difficulty string `json:"difficulty"`
}

// UpdateLanguage changes the language preference of an active subscription.
func (c *SubscriptionController) UpdateLanguage(w http.ResponseWriter, r *http.Request) {
	body, id, ok := c.decodePreference(w, r)
	if !ok {
		return
	}
	if !models.ValidLanguage(body.Language) {
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Invalid language"}, http.StatusBadRequest)
		return
	}
	c.applyPreference(w, id, func() error { return c.manager.SetLanguage(id, body.Language) })
}

// UpdateDifficulty changes the difficulty preference of an active subscription.
func (c *SubscriptionController) UpdateDifficulty(w http.ResponseWriter, r *http.Request) {
	body, id, ok := c.decodePreference(w, r)
	if !ok {
		return
	}
	if !models.ValidDifficulty(body.Difficulty) {
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Invalid difficulty"}, http.StatusBadRequest)
		return
	}
	c.applyPreference(w, id, func() error { return c.manager.SetDifficulty(id, body.Difficulty) })
}

func (c *SubscriptionController) decodePreference(w http.ResponseWriter, r *http.Request) (*preferenceRequest, services.Identifier, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, c.config.MaxBodySize)

	var body preferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Invalid body"}, http.StatusBadRequest)
		return nil, services.Identifier{}, false
	}
	id := services.Identifier{Endpoint: body.Endpoint, IOSToken: body.IOSToken}
	if id.IsZero() {
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Missing endpoint or iosToken"}, http.StatusBadRequest)
		return nil, services.Identifier{}, false
	}
	return &body, id, true
}

func (c *SubscriptionController) applyPreference(w http.ResponseWriter, id services.Identifier, update func() error) {
	if err := update(); err != nil {
		if err == services.ErrSubscriptionNotFound {
			utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Subscription not found"}, http.StatusNotFound)
			return
		}
		log.Printf("SubscriptionController: Error updating preference: %s", err.Error())
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Failed to update"}, http.StatusInternalServerError)
		return
	}
	utils.JSONResponse(w, map[string]interface{}{"ok": true}, http.StatusOK)
}

func (c *SubscriptionController) respondExists(w http.ResponseWriter, id services.Identifier) {
	exists, err := c.manager.Exists(id)
	if err != nil {
		log.Printf("SubscriptionController: Error checking subscription: %s", err.Error())
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Failed to check subscription"}, http.StatusInternalServerError)
		return
	}
	utils.JSONResponse(w, map[string]interface{}{"exists": exists}, http.StatusOK)
}

func (c *SubscriptionController) deactivate(w http.ResponseWriter, id services.Identifier) {
	subscription, err := c.manager.Find(id)
	if err != nil {
		if err == services.ErrSubscriptionNotFound {
			// Unsubscribing something we never knew about is not an error.
			utils.JSONResponse(w, map[string]interface{}{"ok": true}, http.StatusOK)
			return
		}
		log.Printf("SubscriptionController: Error looking up subscription: %s", err.Error())
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Failed to unsubscribe"}, http.StatusInternalServerError)
		return
	}
	if err := c.manager.Deactivate(subscription); err != nil {
		log.Printf("SubscriptionController: Error deactivating subscription %s: %s", subscription.ID, err.Error())
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Failed to unsubscribe"}, http.StatusInternalServerError)
		return
	}
	utils.JSONResponse(w, map[string]interface{}{"ok": true}, http.StatusOK)
}
