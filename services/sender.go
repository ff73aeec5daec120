package services

import (
	"fmt"
	"time"

	"github.com/abocci/phrasepush/models"
	"github.com/abocci/phrasepush/phrases"
)

// Sender delivers one phrase to one subscription over a platform transport.
// Implementations report failures as *DeliveryError so the dispatcher can
// tell expired endpoints apart from transient push service trouble.
type Sender interface {
	Platform() string
	Send(subscription *models.Subscription, phrase phrases.Phrase, sentAt time.Time) error
}

// DeliveryError is a normalized transport failure.
type DeliveryError struct {
	StatusCode int
	Reason     string
	// Permanent means the destination is gone (expired subscription or
	// invalid device token) and the subscription must be deactivated.
	Permanent bool
}

func (e *DeliveryError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("push delivery failed with status %d (%s)", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("push delivery failed with status %d", e.StatusCode)
}
