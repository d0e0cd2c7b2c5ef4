package engine

import (
	"fmt"
	"strings"

	"restaurant-pos/internal/models"
)

// Bill is a computed bill for a table or a single seat.
type Bill struct {
	TableNumber int     `json:"table_number"`
	Seat        int     `json:"seat,omitempty"` // 0 means whole table
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	Tip         float64 `json:"tip"`
	Total       float64 `json:"total"`
	Text        string  `json:"text"`
}

// TableBill previews the whole table's bill over delivered orders. Reading
// a bill is not a transition; nothing is mutated and the table stays open.
func (e *Engine) TableBill(tableNumber int) (Bill, error) {
	return e.bill(tableNumber, 0)
}

// SeatBill previews one seat's bill. A seat beyond the table's capacity
// bills zero rather than erroring.
func (e *Engine) SeatBill(tableNumber, seat int) (Bill, error) {
	return e.bill(tableNumber, seat)
}

func (e *Engine) bill(tableNumber, seat int) (Bill, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	table, err := e.tableLocked(tableNumber)
	if err != nil {
		return Bill{}, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Table Number: %d\n", table.Number)

	var orders []*models.Order
	var subtotal float64
	if seat == 0 {
		orders = table.Orders()
		subtotal = table.BasePrice()
	} else {
		fmt.Fprintf(&sb, "Seat Number: %d\n", seat)
		orders = table.SeatOrders(seat)
		subtotal = table.SeatBasePrice(seat)
	}

	for _, o := range orders {
		if !o.IsDelivered() {
			continue
		}
		sb.WriteString("\nOrder ===========\n")
		fmt.Fprintf(&sb, "\t%s\n", o)
		fmt.Fprintf(&sb, "\t\tPrice: $%.2f\n", o.Price)
	}

	tax := table.TaxAmount(subtotal)
	tip := table.TipAmount(subtotal)

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Subtotal:    $%.2f\n", subtotal)
	fmt.Fprintf(&sb, "Tax (HST):   $%.2f\n", tax)
	fmt.Fprintf(&sb, "Tip:         $%.2f\n", tip)
	fmt.Fprintf(&sb, "Total:       $%.2f\n", subtotal+tax+tip)

	return Bill{
		TableNumber: table.Number,
		Seat:        seat,
		Subtotal:    subtotal,
		Tax:         tax,
		Tip:         tip,
		Total:       subtotal + tax + tip,
		Text:        sb.String(),
	}, nil
}

// Payments returns the ledger records for the given date with their running
// total.
func (e *Engine) Payments(date string) ([]models.PaymentRecord, float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.QueryByDate(date)
}
