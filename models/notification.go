package models

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Notification is one successfully dispatched phrase, append-only.
// Rows are only ever removed by the Subscription cascade.
type Notification struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	SubscriptionID uuid.UUID `gorm:"type:uuid;index"`
	PhraseOriginal string
	PhraseEnglish  string
	Language       string
	Difficulty     string
	SentAt         time.Time `gorm:"index"`
	CreatedAt      time.Time
}

// BeforeCreate ensures the model has an ID before saving it
func (n *Notification) BeforeCreate(scope *gorm.DB) error {
	if n.ID != uuid.Nil {
		return nil
	}
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	n.ID = id
	return nil
}
