package models

// Billing constants. The automatic gratuity applies once a party occupies
// eight or more seats; HST applies to every bill.
const (
	TaxRate          = 0.13
	AutoTipRate      = 0.15
	AutoTipPartySize = 8
)

// Table groups orders by seat and aggregates the bill. The server is
// assigned once, on first seating, and never reassigned.
type Table struct {
	Number   int
	Capacity int

	server     string
	seatOrders [][]*Order // index 0 is seat 1
}

// NewTable creates an empty table with the given seat count.
func NewTable(number, capacity int) *Table {
	return &Table{
		Number:     number,
		Capacity:   capacity,
		seatOrders: make([][]*Order, capacity),
	}
}

// SetServer assigns the table's server. The first assignment wins; later
// calls are ignored.
func (t *Table) SetServer(server string) {
	if t.server == "" {
		t.server = server
	}
}

// Server returns the assigned server, or "" if nobody has seated the table.
func (t *Table) Server() string {
	return t.server
}

// AddOrder appends an order to its seat slot.
func (t *Table) AddOrder(o *Order) {
	t.seatOrders[o.Seat-1] = append(t.seatOrders[o.Seat-1], o)
}

// RemoveOrder removes an order from its seat slot. Removing an order that
// is not at the table is a no-op.
func (t *Table) RemoveOrder(o *Order) {
	seat := t.seatOrders[o.Seat-1]
	for i, existing := range seat {
		if existing == o {
			t.seatOrders[o.Seat-1] = append(seat[:i], seat[i+1:]...)
			return
		}
	}
}

// HasOrder reports whether the order is currently at the table.
func (t *Table) HasOrder(o *Order) bool {
	for _, existing := range t.seatOrders[o.Seat-1] {
		if existing == o {
			return true
		}
	}
	return false
}

// Orders returns every order at the table, seat by seat.
func (t *Table) Orders() []*Order {
	var all []*Order
	for _, seat := range t.seatOrders {
		all = append(all, seat...)
	}
	return all
}

// SeatOrders returns the orders for one seat. A seat beyond capacity has no
// orders.
func (t *Table) SeatOrders(seat int) []*Order {
	if seat < 1 || seat > t.Capacity {
		return nil
	}
	return t.seatOrders[seat-1]
}

// OccupiedSeats counts seats holding at least one order of any state. This
// count, not the delivered-order count, drives the automatic tip.
func (t *Table) OccupiedSeats() int {
	n := 0
	for _, seat := range t.seatOrders {
		if len(seat) > 0 {
			n++
		}
	}
	return n
}

// IsOccupied reports whether anyone has ordered at this table.
func (t *Table) IsOccupied() bool {
	return t.OccupiedSeats() > 0
}

// HasActiveOrders reports whether any order at the table is not delivered.
// Cancelled orders count as active under this rule, so a table holding only
// cancelled orders still cannot be cleared.
func (t *Table) HasActiveOrders() bool {
	for _, o := range t.Orders() {
		if !o.IsDelivered() {
			return true
		}
	}
	return false
}

// BasePrice sums the price of delivered orders. Undelivered and cancelled
// orders contribute nothing.
func (t *Table) BasePrice() float64 {
	total := 0.0
	for _, o := range t.Orders() {
		if o.IsDelivered() {
			total += o.Price
		}
	}
	return total
}

// SeatBasePrice sums delivered orders for one seat. A seat beyond capacity
// bills zero rather than erroring.
func (t *Table) SeatBasePrice(seat int) float64 {
	if seat < 1 || seat > t.Capacity {
		return 0
	}
	total := 0.0
	for _, o := range t.seatOrders[seat-1] {
		if o.IsDelivered() {
			total += o.Price
		}
	}
	return total
}

// TipAmount returns the automatic gratuity on the given base.
func (t *Table) TipAmount(base float64) float64 {
	if t.OccupiedSeats() >= AutoTipPartySize {
		return base * AutoTipRate
	}
	return 0
}

// TaxAmount returns the tax on the given base.
func (t *Table) TaxAmount(base float64) float64 {
	return base * TaxRate
}

// TotalBill returns base + tip + tax over delivered orders.
func (t *Table) TotalBill() float64 {
	base := t.BasePrice()
	return base + t.TipAmount(base) + t.TaxAmount(base)
}

// Clear empties every seat's order list. Order history elsewhere is
// untouched; clearing an already-empty table is a no-op.
func (t *Table) Clear() {
	for i := range t.seatOrders {
		t.seatOrders[i] = nil
	}
}
