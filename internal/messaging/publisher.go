package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/models"
)

// Publisher handles message publishing to RabbitMQ
type Publisher struct {
	conn   *Connection
	logger *logger.Logger
}

// NewPublisher creates a new message publisher
func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: log,
	}
}

// PublishEvent publishes one domain event to the events fanout exchange
func (p *Publisher) PublishEvent(ctx context.Context, ev models.Event) error {
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: 1, // events are a live feed, not a system of record
		Timestamp:    time.Now(),
		Type:         string(ev.Type),
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.conn.Channel().PublishWithContext(
		ctx,
		EventsExchange, // exchange
		"",             // routing key (fanout)
		false,          // mandatory
		false,          // immediate
		publishing,
	)
	if err != nil {
		p.logger.Error("event_publish_failed",
			fmt.Sprintf("Failed to publish %s event", ev.Type),
			"", err, map[string]interface{}{
				"event_type": string(ev.Type),
			})
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("event_published",
		fmt.Sprintf("Published %s event", ev.Type),
		"", map[string]interface{}{
			"event_type":   string(ev.Type),
			"message_size": len(body),
		})

	return nil
}

// Close closes the publisher
func (p *Publisher) Close() error {
	return p.conn.Close()
}
