package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/abocci/phrasepush/models"
	"github.com/abocci/phrasepush/services"
	"github.com/abocci/phrasepush/utils"
	"gorm.io/gorm"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type HistoryController struct {
	config  *models.Config
	manager *services.SubscriptionManager
}

// New creates an instance of the controller and sets its DB handle
func New(db *gorm.DB, config *models.Config) *HistoryController {
	return &HistoryController{
		config:  config,
		manager: services.NewSubscriptionManager(db, config),
	}
}

// LastNotification returns the denormalized last-sent snapshot for a
// subscriber, so the client can render the current phrase without walking
// its history.
func (c *HistoryController) LastNotification(w http.ResponseWriter, r *http.Request) {
	id, ok := identifierFromQuery(w, r)
	if !ok {
		return
	}

	subscription, err := c.manager.Find(id)
	if err != nil {
		if errors.Is(err, services.ErrSubscriptionNotFound) {
			utils.JSONResponse(w, map[string]interface{}{"ok": true, "hasNotification": false}, http.StatusOK)
			return
		}
		log.Printf("HistoryController: Error fetching subscription: %s", err.Error())
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Failed to fetch last notification"}, http.StatusInternalServerError)
		return
	}
	if subscription.LastNotificationSentAt == nil {
		utils.JSONResponse(w, map[string]interface{}{"ok": true, "hasNotification": false}, http.StatusOK)
		return
	}

	utils.JSONResponse(w, map[string]interface{}{
		"ok":              true,
		"hasNotification": true,
		"original":        subscription.LastPhraseOriginal,
		"english":         subscription.LastPhraseEnglish,
		"language":        subscription.LastPhraseLanguage,
		"sentAt":          subscription.LastNotificationSentAt.Format(time.RFC3339),
	}, http.StatusOK)
}

type historyEntry struct {
	PhraseOriginal string    `json:"phrase_original"`
	PhraseEnglish  string    `json:"phrase_english"`
	Language       string    `json:"language"`
	Difficulty     string    `json:"difficulty"`
	SentAt         time.Time `json:"sent_at"`
}

// Notifications returns the subscriber's history, newest first.
func (c *HistoryController) Notifications(w http.ResponseWriter, r *http.Request) {
	id, ok := identifierFromQuery(w, r)
	if !ok {
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	rows, err := c.manager.History(id, limit)
	if err != nil {
		if errors.Is(err, services.ErrSubscriptionNotFound) {
			utils.JSONResponse(w, map[string]interface{}{"ok": true, "notifications": []historyEntry{}}, http.StatusOK)
			return
		}
		log.Printf("HistoryController: Error fetching history: %s", err.Error())
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Failed to fetch notifications"}, http.StatusInternalServerError)
		return
	}

	notifications := make([]historyEntry, 0, len(rows))
	for _, row := range rows {
		notifications = append(notifications, historyEntry{
			PhraseOriginal: row.PhraseOriginal,
			PhraseEnglish:  row.PhraseEnglish,
			Language:       row.Language,
			Difficulty:     row.Difficulty,
			SentAt:         row.SentAt,
		})
	}
	utils.JSONResponse(w, map[string]interface{}{"ok": true, "notifications": notifications}, http.StatusOK)
}

func identifierFromQuery(w http.ResponseWriter, r *http.Request) (services.Identifier, bool) {
	id := services.Identifier{
		Endpoint: r.URL.Query().Get("endpoint"),
		IOSToken: r.URL.Query().Get("iosToken"),
	}
	if id.IsZero() {
		utils.JSONResponse(w, map[string]interface{}{"ok": false, "error": "Missing endpoint or iosToken"}, http.StatusBadRequest)
		return services.Identifier{}, false
	}
	return id, true
}
