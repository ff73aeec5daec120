package services

import (
	"log"

	"github.com/asaskevich/EventBus"
)

// DeliveryListener logs the dispatcher's bus events: retired subscriptions
// and broadcast run summaries.
type DeliveryListener struct {
	bus *EventBus.Bus
}

func NewDeliveryListener(bus *EventBus.Bus) *DeliveryListener {
	return &DeliveryListener{bus: bus}
}

func (l *DeliveryListener) Start() error {
	bus := *l.bus
	if err := bus.Subscribe(EventDeactivated, l.onDeactivated); err != nil {
		return err
	}
	return bus.Subscribe(EventBroadcastCompleted, l.onBroadcastCompleted)
}

func (l *DeliveryListener) onDeactivated(event DeactivationEvent) {
	log.Printf("DeliveryListener: deactivated %s subscription %s after permanent failure (status %d)",
		event.Platform, event.SubscriptionID, event.StatusCode)
}

func (l *DeliveryListener) onBroadcastCompleted(report *BroadcastReport) {
	log.Printf("DeliveryListener: broadcast completed, sent=%d failed=%d combinations=%d",
		report.Sent, report.Failed, len(report.Phrases))
}
