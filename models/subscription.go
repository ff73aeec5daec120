package models

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const (
	PlatformWeb = "web"
	PlatformIOS = "ios"

	DefaultLanguage   = "italian"
	DefaultDifficulty = "easy"
)

// Subscription is a single push notification recipient: either a browser
// Web Push subscription or an iOS device token.
type Subscription struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Platform   string    `gorm:"index"`
	Endpoint   string    `gorm:"index"` // Web Push endpoint URL, web only
	Data       string    // raw push subscription JSON (endpoint + encryption keys), web only
	IOSToken   string    `gorm:"index"` // APNs device token, ios only
	Language   string
	Difficulty string
	// Subscriptions are never hard-deleted on delivery failures or
	// unsubscribe, only flagged, so notification history stays attached.
	Deactivated bool `gorm:"index"`

	// Denormalized snapshot of the most recent successful send, written in
	// the same transaction as the Notification row.
	LastPhraseOriginal     string
	LastPhraseEnglish      string
	LastPhraseLanguage     string
	LastNotificationSentAt *time.Time

	CreatedAt     time.Time
	UpdatedAt     time.Time
	Notifications []Notification `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// BeforeCreate ensures the model has an ID before saving it
func (s *Subscription) BeforeCreate(scope *gorm.DB) error {
	if s.ID != uuid.Nil {
		return nil
	}
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

// Identifier returns the transport-level identity of the subscription.
func (s *Subscription) Identifier() string {
	if s.Platform == PlatformIOS {
		return s.IOSToken
	}
	return s.Endpoint
}

// ValidLanguage reports whether l is one of the supported catalog languages.
func ValidLanguage(l string) bool {
	switch l {
	case "italian", "spanish", "french", "japanese":
		return true
	}
	return false
}

// ValidDifficulty reports whether d is one of the supported tiers.
func ValidDifficulty(d string) bool {
	return d == "easy" || d == "medium"
}
