package messaging

import (
	"context"

	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/models"
)

// Relay forwards engine domain events to the broker. It runs on its own
// goroutine, after transitions commit: a broker outage can drop
// notifications but can never stall or fail a transition.
type Relay struct {
	events    <-chan models.Event
	publisher *Publisher
	logger    *logger.Logger
}

// NewRelay creates a relay over an engine event subscription.
func NewRelay(events <-chan models.Event, publisher *Publisher, log *logger.Logger) *Relay {
	return &Relay{
		events:    events,
		publisher: publisher,
		logger:    log,
	}
}

// Run forwards events until the context is cancelled.
func (r *Relay) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("relay_stopped", "Event relay stopped", "", nil)
			return
		case ev, ok := <-r.events:
			if !ok {
				return
			}
			if err := r.publisher.PublishEvent(ctx, ev); err != nil {
				r.logger.Error("relay_publish_failed", "Dropping event after publish failure", "", err, map[string]interface{}{
					"event_type": string(ev.Type),
				})
			}
		}
	}
}
