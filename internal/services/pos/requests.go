package pos

import (
	"fmt"

	"restaurant-pos/internal/engine"
)

// OrderActionRequest targets one order with an acting employee.
type OrderActionRequest struct {
	OrderNumber int    `json:"order_number"`
	Cook        string `json:"cook,omitempty"`
	Server      string `json:"server,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// ShipmentRequest books received stock for one ingredient.
type ShipmentRequest struct {
	Ingredient string `json:"ingredient"`
	Amount     int    `json:"amount"`
}

// ClearTableRequest settles one table.
type ClearTableRequest struct {
	Table int `json:"table"`
}

// ValidatePlace checks a placement request's shape before it reaches the
// engine; the engine re-validates against the catalog and floor.
func ValidatePlace(req *engine.PlaceRequest) error {
	if req.Dish == "" {
		return fmt.Errorf("dish is required")
	}
	if req.Table < 1 {
		return fmt.Errorf("table must be a positive table number")
	}
	if req.Seat < 1 {
		return fmt.Errorf("seat must be a positive seat number")
	}
	if req.Server == "" {
		return fmt.Errorf("server is required")
	}
	for name, qty := range req.Additions {
		if qty < 1 {
			return fmt.Errorf("addition %q must have positive quantity", name)
		}
	}
	for name, qty := range req.Removals {
		if qty < 1 {
			return fmt.Errorf("removal %q must have positive quantity", name)
		}
	}
	return nil
}

// Validate checks an order action request.
func (r *OrderActionRequest) Validate(needCook, needServer bool) error {
	if r.OrderNumber < 1 {
		return fmt.Errorf("order_number is required")
	}
	if needCook && r.Cook == "" {
		return fmt.Errorf("cook is required")
	}
	if needServer && r.Server == "" {
		return fmt.Errorf("server is required")
	}
	return nil
}

// Validate checks a shipment request.
func (r *ShipmentRequest) Validate() error {
	if r.Ingredient == "" {
		return fmt.Errorf("ingredient is required")
	}
	if r.Amount < 1 {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}
