package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/abocci/phrasepush/models"
	"github.com/abocci/phrasepush/phrases"
	"github.com/asaskevich/EventBus"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Bus topics published by the dispatcher.
const (
	EventDeactivated        = "subscription:deactivated"
	EventBroadcastCompleted = "broadcast:completed"
)

// DeactivationEvent is published when a permanent delivery failure retires a
// subscription.
type DeactivationEvent struct {
	SubscriptionID uuid.UUID
	Platform       string
	StatusCode     int
}

// BroadcastReport aggregates one broadcast run. Phrases records which phrase
// each (language, difficulty) combination received, keyed
// "language/difficulty", making the run auditable.
type BroadcastReport struct {
	Sent    int                       `json:"sent"`
	Failed  int                       `json:"failed"`
	Phrases map[string]phrases.Phrase `json:"phrases"`
}

// Dispatcher orchestrates phrase selection, transport sends and delivery
// state reconciliation for all subscribers or a single one.
type Dispatcher struct {
	config        *models.Config
	selector      *phrases.Selector
	subscriptions *SubscriptionManager
	senders       map[string]Sender
	bus           *EventBus.Bus
}

// NewDispatcher creates an instance of the dispatcher. A platform without a
// sender (APNs credentials absent) keeps its subscriptions active but every
// send to it fails as a configuration error.
func NewDispatcher(db *gorm.DB, config *models.Config, selector *phrases.Selector, senders []Sender, bus *EventBus.Bus) *Dispatcher {
	byPlatform := make(map[string]Sender, len(senders))
	for _, sender := range senders {
		byPlatform[sender.Platform()] = sender
	}
	return &Dispatcher{
		config:        config,
		selector:      selector,
		subscriptions: NewSubscriptionManager(db, config),
		senders:       byPlatform,
		bus:           bus,
	}
}

// Broadcast sends one phrase to every active subscriber. Subscribers sharing
// a (language, difficulty) combination all receive the same phrase within a
// run. Individual failures are counted and logged, never abort the pass.
func (d *Dispatcher) Broadcast() (*BroadcastReport, error) {
	subscriptions, err := d.subscriptions.ListActive()
	if err != nil {
		return nil, err
	}

	report := &BroadcastReport{Phrases: make(map[string]phrases.Phrase)}
	for i := range subscriptions {
		subscription := &subscriptions[i]
		key := subscription.Language + "/" + subscription.Difficulty
		phrase, drawn := report.Phrases[key]
		if !drawn {
			phrase = d.selector.Pick(subscription.Language, subscription.Difficulty)
			report.Phrases[key] = phrase
		}

		sentAt := time.Now().UTC()
		if err := d.send(subscription, phrase, sentAt); err != nil {
			report.Failed++
			log.Printf("Dispatcher: send to %s subscription %s failed: %s", subscription.Platform, subscription.ID, err.Error())
			continue
		}
		if err := d.subscriptions.RecordDelivery(subscription, phrase, sentAt); err != nil {
			// The push already went out; only the bookkeeping is missing.
			report.Failed++
			log.Printf("Dispatcher: recording delivery for subscription %s failed: %s", subscription.ID, err.Error())
			continue
		}
		report.Sent++
		if d.config.Debug {
			log.Printf("Dispatcher: sent %q to %s subscription %s", phrase.Original, subscription.Platform, subscription.ID)
		}
	}

	bus := *d.bus
	bus.Publish(EventBroadcastCompleted, report)
	return report, nil
}

// SendNow delivers one fresh phrase to a single subscriber, on demand.
// When the caller asserts its app is foregrounded (appIsOpen), the transport
// send is skipped but the last-sent snapshot and history are still written,
// so the client gets a new phrase without a duplicate push.
func (d *Dispatcher) SendNow(id Identifier, appIsOpen bool) error {
	subscription, err := d.subscriptions.FindActive(id)
	if err != nil {
		return err
	}

	phrase := d.selector.Pick(subscription.Language, subscription.Difficulty)
	sentAt := time.Now().UTC()

	if !appIsOpen {
		if err := d.send(subscription, phrase, sentAt); err != nil {
			return err
		}
	}
	return d.subscriptions.RecordDelivery(subscription, phrase, sentAt)
}

// send routes one phrase through the subscription's platform transport and
// reconciles permanent failures into subscription state.
func (d *Dispatcher) send(subscription *models.Subscription, phrase phrases.Phrase, sentAt time.Time) error {
	sender, ok := d.senders[subscription.Platform]
	if !ok {
		return fmt.Errorf("sending to platform %q is disabled", subscription.Platform)
	}

	err := sender.Send(subscription, phrase, sentAt)
	if err == nil {
		return nil
	}

	var deliveryErr *DeliveryError
	if errors.As(err, &deliveryErr) && deliveryErr.Permanent {
		if deactivateErr := d.subscriptions.Deactivate(subscription); deactivateErr != nil {
			log.Printf("Dispatcher: could not deactivate subscription %s: %s", subscription.ID, deactivateErr.Error())
		} else {
			bus := *d.bus
			bus.Publish(EventDeactivated, DeactivationEvent{
				SubscriptionID: subscription.ID,
				Platform:       subscription.Platform,
				StatusCode:     deliveryErr.StatusCode,
			})
		}
	}
	return err
}
