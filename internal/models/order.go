package models

import (
	"fmt"
	"sort"
	"time"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	StatusPlaced    OrderStatus = "placed"
	StatusReceived  OrderStatus = "received"
	StatusCooked    OrderStatus = "cooked"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// CancelReason records why a cancelled order was cancelled
type CancelReason string

const (
	ReasonCustomerCancelled CancelReason = "customer-cancelled"
	ReasonCustomerReturned  CancelReason = "customer-returned"
)

// Order is a single line item: one dish for one seat at one table, with
// optional ingredient additions and removals against the dish's recipe.
//
// Price is frozen when the order is placed (base price plus the add-on
// price of every extra unit) and never recomputed. Status only changes
// through engine transitions.
type Order struct {
	Number      int
	Item        *MenuItem
	TableNumber int
	Seat        int // 1-based
	Server      string
	Cook        string // empty until received
	Status      OrderStatus
	Reason      CancelReason // set only when Status is cancelled
	Additions   []IngredientQty
	Removals    []IngredientQty
	Price       float64
	PlacedAt    time.Time
}

// IsReceived reports whether the order has been picked up by a cook. Cooked
// and delivered orders were necessarily received first.
func (o *Order) IsReceived() bool {
	return o.Status == StatusReceived || o.Status == StatusCooked || o.Status == StatusDelivered
}

// IsDelivered reports whether the order reached its terminal billing state.
func (o *Order) IsDelivered() bool {
	return o.Status == StatusDelivered
}

// IsCancelled reports whether the order was cancelled or returned.
func (o *Order) IsCancelled() bool {
	return o.Status == StatusCancelled
}

// AllIngredients returns the effective requirement for this order: the
// recipe adjusted by additions and removals, clipped at zero. Recipe order
// is preserved; additions of off-recipe ingredients follow in name order.
// Inventory deduction and the kitchen display both work from this list.
func (o *Order) AllIngredients() []IngredientQty {
	out := make([]IngredientQty, 0, len(o.Item.Recipe)+len(o.Additions))

	for _, rq := range o.Item.Recipe {
		qty := rq.Qty + o.deltaFor(rq.Ingredient.Name)
		if qty < 0 {
			qty = 0
		}
		if qty > 0 {
			out = append(out, IngredientQty{Ingredient: rq.Ingredient, Qty: qty})
		}
	}

	var extras []IngredientQty
	for _, add := range o.Additions {
		if o.Item.RecipeQty(add.Ingredient.Name) == 0 {
			extras = append(extras, add)
		}
	}
	sort.Slice(extras, func(i, j int) bool {
		return extras[i].Ingredient.Name < extras[j].Ingredient.Name
	})

	return append(out, extras...)
}

// deltaFor is the net addition/removal adjustment for one recipe ingredient.
func (o *Order) deltaFor(name string) int {
	delta := 0
	for _, add := range o.Additions {
		if add.Ingredient.Name == name {
			delta += add.Qty
		}
	}
	for _, rem := range o.Removals {
		if rem.Ingredient.Name == name {
			delta -= rem.Qty
		}
	}
	return delta
}

// CloneNew returns a fresh unplaced copy of this order: same dish, table,
// seat, server and ingredient deltas, with no number, no cook and no status.
// Used when a delivered order is returned and must re-enter the pipeline as
// a brand-new order.
func (o *Order) CloneNew() *Order {
	clone := &Order{
		Item:        o.Item,
		TableNumber: o.TableNumber,
		Seat:        o.Seat,
		Server:      o.Server,
		Additions:   append([]IngredientQty(nil), o.Additions...),
		Removals:    append([]IngredientQty(nil), o.Removals...),
	}
	return clone
}

// String is the kitchen-facing description of the order.
func (o *Order) String() string {
	return fmt.Sprintf("Order %d (%s, table %d seat %d)", o.Number, o.Item.Name, o.TableNumber, o.Seat)
}
