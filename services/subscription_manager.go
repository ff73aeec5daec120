package services

import (
	"errors"
	"log"
	"time"

	"github.com/abocci/phrasepush/models"
	"github.com/abocci/phrasepush/phrases"
	"gorm.io/gorm"
)

// ErrSubscriptionNotFound is returned when no active subscription matches
// the given endpoint or device token.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// Identifier designates one subscriber: a Web Push endpoint URL or an APNs
// device token, never both.
type Identifier struct {
	Endpoint string
	IOSToken string
}

func (id Identifier) IsZero() bool {
	return id.Endpoint == "" && id.IOSToken == ""
}

type SubscriptionManager struct {
	db     *gorm.DB
	config *models.Config
}

// NewSubscriptionManager creates an instance of the manager and sets its DB handle
func NewSubscriptionManager(db *gorm.DB, config *models.Config) *SubscriptionManager {
	return &SubscriptionManager{db: db, config: config}
}

// UpsertWeb stores a browser subscription. Re-subscribing with a known
// endpoint reactivates and overwrites the existing row, so there is never
// more than one active row per endpoint.
func (m *SubscriptionManager) UpsertWeb(endpoint string, data string, language string, difficulty string) (*models.Subscription, error) {
	var subscription models.Subscription
	result := m.db.Where("platform = ? AND endpoint = ?", models.PlatformWeb, endpoint).First(&subscription)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, result.Error
		}
		subscription = models.Subscription{
			Platform:   models.PlatformWeb,
			Endpoint:   endpoint,
			Data:       data,
			Language:   normalizeLanguage(language),
			Difficulty: normalizeDifficulty(difficulty),
		}
		if result := m.db.Create(&subscription); result.Error != nil {
			return nil, result.Error
		}
		log.Printf("SubscriptionManager: created web subscription %s", subscription.ID)
		return &subscription, nil
	}

	updates := map[string]interface{}{
		"data":        data,
		"language":    normalizeLanguage(language),
		"difficulty":  normalizeDifficulty(difficulty),
		"deactivated": false,
	}
	if result := m.db.Model(&subscription).Updates(updates); result.Error != nil {
		return nil, result.Error
	}
	log.Printf("SubscriptionManager: reactivated web subscription %s", subscription.ID)
	return &subscription, nil
}

// UpsertIOS stores an iOS device token, with the same reactivate-and-overwrite
// semantics as UpsertWeb.
func (m *SubscriptionManager) UpsertIOS(deviceToken string, language string, difficulty string) (*models.Subscription, error) {
	var subscription models.Subscription
	result := m.db.Where("platform = ? AND ios_token = ?", models.PlatformIOS, deviceToken).First(&subscription)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, result.Error
		}
		subscription = models.Subscription{
			Platform:   models.PlatformIOS,
			IOSToken:   deviceToken,
			Language:   normalizeLanguage(language),
			Difficulty: normalizeDifficulty(difficulty),
		}
		if result := m.db.Create(&subscription); result.Error != nil {
			return nil, result.Error
		}
		log.Printf("SubscriptionManager: created ios subscription %s", subscription.ID)
		return &subscription, nil
	}

	updates := map[string]interface{}{
		"language":    normalizeLanguage(language),
		"difficulty":  normalizeDifficulty(difficulty),
		"deactivated": false,
	}
	if result := m.db.Model(&subscription).Updates(updates); result.Error != nil {
		return nil, result.Error
	}
	log.Printf("SubscriptionManager: reactivated ios subscription %s", subscription.ID)
	return &subscription, nil
}

// FindActive returns the one active subscription matching the identifier.
func (m *SubscriptionManager) FindActive(id Identifier) (*models.Subscription, error) {
	var subscription models.Subscription
	result := m.scope(id).Where("deactivated = ?", false).First(&subscription)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, result.Error
	}
	return &subscription, nil
}

// Find returns the subscription matching the identifier, active or not.
// History stays readable after an unsubscribe or a transport deactivation.
func (m *SubscriptionManager) Find(id Identifier) (*models.Subscription, error) {
	var subscription models.Subscription
	result := m.scope(id).First(&subscription)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, result.Error
	}
	return &subscription, nil
}

// Exists reports whether an active subscription matches the identifier.
func (m *SubscriptionManager) Exists(id Identifier) (bool, error) {
	_, err := m.FindActive(id)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Deactivate soft-deletes a subscription. Rows are never hard-deleted so the
// notification history keeps its parent.
func (m *SubscriptionManager) Deactivate(subscription *models.Subscription) error {
	return m.db.Model(subscription).Update("deactivated", true).Error
}

// SetLanguage updates the language preference of an active subscription.
func (m *SubscriptionManager) SetLanguage(id Identifier, language string) error {
	subscription, err := m.FindActive(id)
	if err != nil {
		return err
	}
	return m.db.Model(subscription).Update("language", language).Error
}

// SetDifficulty updates the difficulty preference of an active subscription.
func (m *SubscriptionManager) SetDifficulty(id Identifier, difficulty string) error {
	subscription, err := m.FindActive(id)
	if err != nil {
		return err
	}
	return m.db.Model(subscription).Update("difficulty", difficulty).Error
}

// ListActive returns every subscription eligible for a broadcast, both platforms.
func (m *SubscriptionManager) ListActive() ([]models.Subscription, error) {
	var subscriptions []models.Subscription
	if result := m.db.Where("deactivated = ?", false).Find(&subscriptions); result.Error != nil {
		return nil, result.Error
	}
	return subscriptions, nil
}

// ListAll returns every subscription, for the admin listing.
func (m *SubscriptionManager) ListAll() ([]models.Subscription, error) {
	var subscriptions []models.Subscription
	if result := m.db.Order("created_at desc").Find(&subscriptions); result.Error != nil {
		return nil, result.Error
	}
	return subscriptions, nil
}

// RecordDelivery persists a successful send: the denormalized last-sent
// snapshot on the subscription and the history row are written in one
// transaction, so readers see both or neither.
func (m *SubscriptionManager) RecordDelivery(subscription *models.Subscription, phrase phrases.Phrase, sentAt time.Time) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"last_phrase_original":      phrase.Original,
			"last_phrase_english":       phrase.English,
			"last_phrase_language":      subscription.Language,
			"last_notification_sent_at": sentAt,
		}
		if result := tx.Model(subscription).Updates(updates); result.Error != nil {
			return result.Error
		}
		entry := models.Notification{
			SubscriptionID: subscription.ID,
			PhraseOriginal: phrase.Original,
			PhraseEnglish:  phrase.English,
			Language:       subscription.Language,
			Difficulty:     subscription.Difficulty,
			SentAt:         sentAt,
		}
		return tx.Create(&entry).Error
	})
}

// History returns the most recent notifications for a subscriber, newest first.
func (m *SubscriptionManager) History(id Identifier, limit int) ([]models.Notification, error) {
	subscription, err := m.Find(id)
	if err != nil {
		return nil, err
	}
	var notifications []models.Notification
	result := m.db.Where("subscription_id = ?", subscription.ID).
		Order("sent_at desc").
		Limit(limit).
		Find(&notifications)
	if result.Error != nil {
		return nil, result.Error
	}
	return notifications, nil
}

func (m *SubscriptionManager) scope(id Identifier) *gorm.DB {
	if id.IOSToken != "" {
		return m.db.Where("platform = ? AND ios_token = ?", models.PlatformIOS, id.IOSToken)
	}
	return m.db.Where("platform = ? AND endpoint = ?", models.PlatformWeb, id.Endpoint)
}

func normalizeLanguage(language string) string {
	if models.ValidLanguage(language) {
		return language
	}
	return models.DefaultLanguage
}

func normalizeDifficulty(difficulty string) string {
	if models.ValidDifficulty(difficulty) {
		return difficulty
	}
	return models.DefaultDifficulty
}
