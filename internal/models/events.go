package models

import "time"

// EventType identifies a domain event emitted by the engine.
type EventType string

const (
	EventOrderPlaced        EventType = "order_placed"
	EventOrderStatusChanged EventType = "order_status_changed"
	EventThresholdCrossed   EventType = "threshold_crossed"
	EventThresholdCleared   EventType = "threshold_cleared"
	EventShipmentReceived   EventType = "shipment_received"
	EventTableCleared       EventType = "table_cleared"
	EventPaymentRecorded    EventType = "payment_recorded"
)

// Event is a domain event published after a committed transition.
// Presentation layers, the notification relay and the archive all subscribe
// to the same stream; a slow subscriber drops events, it never blocks a
// transition.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	// Order fields
	OrderNumber int     `json:"order_number,omitempty"`
	Dish        string  `json:"dish,omitempty"`
	OldStatus   string  `json:"old_status,omitempty"`
	NewStatus   string  `json:"new_status,omitempty"`
	ChangedBy   string  `json:"changed_by,omitempty"`
	Reason      string  `json:"reason,omitempty"`
	Price       float64 `json:"price,omitempty"`

	// Table / payment fields
	TableNumber int     `json:"table_number,omitempty"`
	Seat        int     `json:"seat,omitempty"`
	Server      string  `json:"server,omitempty"`
	Payment     float64 `json:"payment,omitempty"`

	// Ingredient fields
	Ingredient    string `json:"ingredient,omitempty"`
	Amount        int    `json:"amount,omitempty"`
	Threshold     int    `json:"threshold,omitempty"`
	ReorderAmount int    `json:"reorder_amount,omitempty"`
	ShippedAmount int    `json:"shipped_amount,omitempty"`
}

// NewEvent stamps a bare event of the given type.
func NewEvent(t EventType) Event {
	return Event{Type: t, Timestamp: time.Now().UTC()}
}
