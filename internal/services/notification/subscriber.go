package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/messaging"
	"restaurant-pos/internal/models"
)

// Subscriber consumes the event stream and prints human-readable
// notifications for the floor staff
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger

	// Graceful shutdown
	shutdown chan os.Signal
	done     chan bool
}

// NewSubscriber creates a new notification subscriber
func NewSubscriber(consumer *messaging.Consumer, logger *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   logger,
		shutdown: make(chan os.Signal, 1),
		done:     make(chan bool, 1),
	}
}

// Start starts the notification subscriber
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)

	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)

	go func() {
		if err := s.consumer.StartConsuming(ctx, s.handleEvent); err != nil {
			s.logger.Error("consumer_failed", "Notification consumer failed", requestID, err, nil)
		}
		s.done <- true
	}()

	select {
	case <-s.shutdown:
		s.logger.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		return s.gracefulShutdown(requestID)
	case <-s.done:
		return nil
	}
}

// handleEvent processes one event from the queue
func (s *Subscriber) handleEvent(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var ev models.Event
	if err := json.Unmarshal(body, &ev); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse event message", requestID, err, nil)
		return fmt.Errorf("failed to parse event: %w", err)
	}

	s.logger.Debug("event_received", "Received event", requestID, map[string]interface{}{
		"event_type":   ev.Type,
		"order_number": ev.OrderNumber,
		"ingredient":   ev.Ingredient,
	})

	s.displayEvent(&ev)
	return nil
}

// displayEvent prints a human-readable line for the event
func (s *Subscriber) displayEvent(ev *models.Event) {
	notification := s.formatEvent(ev)

	fmt.Println(notification)

	s.logger.Info("notification_displayed", "Notification displayed to user", "", map[string]interface{}{
		"event_type":   ev.Type,
		"order_number": ev.OrderNumber,
		"new_status":   ev.NewStatus,
		"timestamp":    ev.Timestamp.Format("2006-01-02 15:04:05"),
	})
}

// formatEvent creates a human-readable notification message
func (s *Subscriber) formatEvent(ev *models.Event) string {
	timestamp := ev.Timestamp.Format("2006-01-02 15:04:05")

	switch ev.Type {
	case models.EventOrderPlaced:
		return fmt.Sprintf(
			"📋 [%s] Order %d placed: %s for table %d seat %d (server %s).",
			timestamp, ev.OrderNumber, ev.Dish, ev.TableNumber, ev.Seat, ev.Server,
		)
	case models.EventOrderStatusChanged:
		switch ev.NewStatus {
		case string(models.StatusReceived):
			return fmt.Sprintf(
				"🍳 [%s] Order %d is now being prepared by %s.",
				timestamp, ev.OrderNumber, ev.ChangedBy,
			)
		case string(models.StatusCooked):
			return fmt.Sprintf(
				"✅ [%s] Order %d is ready for delivery! Prepared by %s.",
				timestamp, ev.OrderNumber, ev.ChangedBy,
			)
		case string(models.StatusDelivered):
			return fmt.Sprintf(
				"🎉 [%s] Order %d has been delivered to table %d.",
				timestamp, ev.OrderNumber, ev.TableNumber,
			)
		case string(models.StatusCancelled):
			return fmt.Sprintf(
				"❌ [%s] Order %d has been cancelled (%s).",
				timestamp, ev.OrderNumber, ev.Reason,
			)
		}
		return fmt.Sprintf(
			"📋 [%s] Order %d status changed from '%s' to '%s'.",
			timestamp, ev.OrderNumber, ev.OldStatus, ev.NewStatus,
		)
	case models.EventThresholdCrossed:
		return fmt.Sprintf(
			"⚠️  [%s] %s is running low (%d left, threshold %d). Requested %d units.",
			timestamp, ev.Ingredient, ev.Amount, ev.Threshold, ev.ReorderAmount,
		)
	case models.EventThresholdCleared:
		return fmt.Sprintf(
			"📦 [%s] %s is back above threshold (%d in stock).",
			timestamp, ev.Ingredient, ev.Amount,
		)
	case models.EventShipmentReceived:
		return fmt.Sprintf(
			"🚚 [%s] Shipment received: %d units of %s.",
			timestamp, ev.ShippedAmount, ev.Ingredient,
		)
	case models.EventTableCleared:
		return fmt.Sprintf(
			"🧹 [%s] Table %d cleared by %s.",
			timestamp, ev.TableNumber, ev.Server,
		)
	case models.EventPaymentRecorded:
		return fmt.Sprintf(
			"💰 [%s] Payment of $%.2f recorded for table %d (server %s).",
			timestamp, ev.Payment, ev.TableNumber, ev.Server,
		)
	}

	return fmt.Sprintf("📋 [%s] Event: %s", timestamp, ev.Type)
}

// gracefulShutdown handles graceful shutdown of the subscriber
func (s *Subscriber) gracefulShutdown(requestID string) error {
	s.logger.Info("graceful_shutdown", "Starting graceful shutdown", requestID, nil)

	if s.consumer != nil {
		s.consumer.Close()
	}

	s.logger.Info("graceful_shutdown", "Graceful shutdown completed", requestID, nil)
	return nil
}
