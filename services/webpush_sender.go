package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/abocci/phrasepush/models"
	"github.com/abocci/phrasepush/phrases"
)

// WebPushSender delivers phrases to browser subscriptions, signed with the
// VAPID key pair from the config.
type WebPushSender struct {
	config *models.Config
}

func NewWebPushSender(config *models.Config) *WebPushSender {
	return &WebPushSender{config: config}
}

type webPushPayload struct {
	Title string      `json:"title"`
	Body  string      `json:"body"`
	Icon  string      `json:"icon"`
	Badge string      `json:"badge"`
	Data  webPushData `json:"data"`
}

type webPushData struct {
	SentAt string `json:"sentAt"`
}

func (s *WebPushSender) Platform() string {
	return models.PlatformWeb
}

func (s *WebPushSender) Send(subscription *models.Subscription, phrase phrases.Phrase, sentAt time.Time) error {
	// The stored Data blob may carry extra fields (language, difficulty from
	// older clients); decoding into webpush.Subscription keeps only the
	// endpoint and encryption keys the push service expects.
	pushSubscription := &webpush.Subscription{}
	if err := json.Unmarshal([]byte(subscription.Data), pushSubscription); err != nil {
		return fmt.Errorf("invalid stored push subscription: %w", err)
	}

	payload := webPushPayload{
		Title: fmt.Sprintf("%s New Phrase!", phrases.Flag(subscription.Language)),
		Body:  fmt.Sprintf("%s\n%s %s", phrase.Original, phrases.EnglishFlag, phrase.English),
		Icon:  "/icon-192.png",
		Badge: "/icon-192.png",
		Data:  webPushData{SentAt: sentAt.Format(time.RFC3339)},
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := webpush.SendNotification(jsonPayload, pushSubscription, &webpush.Options{
		Subscriber:      s.config.AdminEmail,
		VAPIDPublicKey:  s.config.VapidPublicKey,
		VAPIDPrivateKey: s.config.VapidPrivateKey,
		TTL:             60,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &DeliveryError{
			StatusCode: resp.StatusCode,
			// The push service signals that the subscription is no longer active.
			Permanent: resp.StatusCode == 404 || resp.StatusCode == 410,
		}
	}
	return nil
}
