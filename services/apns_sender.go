package services

import (
	"fmt"
	"time"

	"github.com/abocci/phrasepush/models"
	"github.com/abocci/phrasepush/phrases"
	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"
)

// APNSSender delivers phrases to iOS devices through Apple's provider API,
// using token-based (p8 key) authentication.
type APNSSender struct {
	config *models.Config
	client *apns2.Client
}

// NewAPNSSender builds the APNs client from the configured auth key. It is
// only called when the credentials are present; a missing or unreadable key
// file is a startup error, not a per-send one.
func NewAPNSSender(config *models.Config) (*APNSSender, error) {
	authKey, err := token.AuthKeyFromFile(config.APNSAuthKeyPath)
	if err != nil {
		return nil, fmt.Errorf("loading APNs auth key: %w", err)
	}
	client := apns2.NewTokenClient(&token.Token{
		AuthKey: authKey,
		KeyID:   config.APNSKeyID,
		TeamID:  config.APNSTeamID,
	})
	if config.APNSProduction {
		client = client.Production()
	} else {
		client = client.Development()
	}
	return &APNSSender{config: config, client: client}, nil
}

func (s *APNSSender) Platform() string {
	return models.PlatformIOS
}

func (s *APNSSender) Send(subscription *models.Subscription, phrase phrases.Phrase, sentAt time.Time) error {
	// original/english ride along as custom keys so the app can highlight the
	// phrase in its history view when the notification is tapped.
	p := payload.NewPayload().
		AlertTitle(fmt.Sprintf("%s Translate To", phrases.Flag(subscription.Language))).
		AlertBody(phrase.English).
		Badge(1).
		Sound("default").
		Custom("sentAt", sentAt.Format(time.RFC3339)).
		Custom("language", subscription.Language).
		Custom("original", phrase.Original).
		Custom("english", phrase.English)

	resp, err := s.client.Push(&apns2.Notification{
		DeviceToken: subscription.IOSToken,
		Topic:       s.config.APNSTopic,
		Payload:     p,
	})
	if err != nil {
		return err
	}
	if !resp.Sent() {
		return &DeliveryError{
			StatusCode: resp.StatusCode,
			Reason:     resp.Reason,
			Permanent:  apnsTerminal(resp),
		}
	}
	return nil
}

// apnsTerminal reports whether the provider response means the device token
// will never work again.
func apnsTerminal(resp *apns2.Response) bool {
	if resp.StatusCode == 410 {
		return true
	}
	switch resp.Reason {
	case apns2.ReasonUnregistered, apns2.ReasonBadDeviceToken, apns2.ReasonDeviceTokenNotForTopic:
		return true
	}
	return false
}
