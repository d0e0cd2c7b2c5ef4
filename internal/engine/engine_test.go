package engine

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"restaurant-pos/internal/catalog"
	"restaurant-pos/internal/inventory"
	"restaurant-pos/internal/ledger"
	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/models"
	"restaurant-pos/internal/stats"
)

// newTestEngine builds an engine over a small fixed catalog:
//
//	flour  10 units, threshold 5
//	cheese 20 units, threshold 3, add-on $1.50
//	Bread  $10, needs 8 flour
//	Pizza  $12, needs 2 flour + 1 cheese
//
// The floor has table 1 (2 seats) and table 2 (4 seats).
func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	cat, err := catalog.Build(
		[]catalog.IngredientSpec{
			{Name: "flour", DisplayName: "Flour", Amount: 10, Threshold: 5},
			{Name: "cheese", DisplayName: "Cheese", Amount: 20, Threshold: 3, AddOnPrice: 1.5},
		},
		[]catalog.DishSpec{
			{Name: "Bread", Price: 10, Ingredients: []catalog.RecipeSpec{
				{Ingredient: "flour", Quantity: 8},
			}},
			{Name: "Pizza", Price: 12, Ingredients: []catalog.RecipeSpec{
				{Ingredient: "flour", Quantity: 2},
				{Ingredient: "cheese", Quantity: 1},
			}},
		},
	)
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}

	dir := t.TempDir()
	log := logger.New("test")
	inv := inventory.NewManager(cat.Ingredients, filepath.Join(dir, "requests.json"), 20, log)
	st := stats.New(prometheus.NewRegistry())
	led := ledger.New(filepath.Join(dir, "payments.json"), log)

	return New(cat, inv, st, led, []int{0, 1, 0, 1}, log)
}

func ingredientAmount(t *testing.T, e *Engine, name string) int {
	t.Helper()
	for _, entry := range e.Inventory() {
		if entry.Name == name {
			return entry.Amount
		}
	}
	t.Fatalf("ingredient %s not in inventory", name)
	return 0
}

func ingredientPending(t *testing.T, e *Engine, name string) bool {
	t.Helper()
	for _, entry := range e.Inventory() {
		if entry.Name == name {
			return entry.Pending
		}
	}
	t.Fatalf("ingredient %s not in inventory", name)
	return false
}

func mustPlace(t *testing.T, e *Engine, req PlaceRequest) *models.Order {
	t.Helper()
	order, err := e.Place(req)
	if err != nil {
		t.Fatalf("Place(%+v) returned error: %v", req, err)
	}
	return order
}

func TestEngine_Place(t *testing.T) {
	e := newTestEngine(t)

	order := mustPlace(t, e, PlaceRequest{Dish: "Pizza", Table: 2, Seat: 1, Server: "alice"})
	if order.Number != 1 {
		t.Errorf("order number = %d, want 1", order.Number)
	}
	if order.Status != models.StatusPlaced {
		t.Errorf("order status = %s, want placed", order.Status)
	}
	if math.Abs(order.Price-12) > 1e-9 {
		t.Errorf("order price = %v, want 12", order.Price)
	}

	second := mustPlace(t, e, PlaceRequest{Dish: "Bread", Table: 2, Seat: 2, Server: "alice"})
	if second.Number != 2 {
		t.Errorf("second order number = %d, want 2", second.Number)
	}

	if got := len(e.History()); got != 2 {
		t.Errorf("history length = %d, want 2", got)
	}
	if got := len(e.KitchenQueue()); got != 2 {
		t.Errorf("kitchen queue length = %d, want 2", got)
	}

	// placing checks sufficiency but deducts nothing
	if got := ingredientAmount(t, e, "flour"); got != 10 {
		t.Errorf("flour amount after place = %d, want 10", got)
	}

	table, err := e.Table(2)
	if err != nil {
		t.Fatalf("Table returned error: %v", err)
	}
	if table.Server() != "alice" {
		t.Errorf("table server = %q, want alice", table.Server())
	}
}

func TestEngine_PlaceWithAdditions(t *testing.T) {
	e := newTestEngine(t)

	order := mustPlace(t, e, PlaceRequest{
		Dish: "Pizza", Table: 2, Seat: 1, Server: "alice",
		Additions: map[string]int{"cheese": 2},
	})
	// base 12 plus two cheese add-ons at 1.50
	if math.Abs(order.Price-15) > 1e-9 {
		t.Errorf("order price = %v, want 15", order.Price)
	}
}

func TestEngine_PlaceRejections(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name    string
		req     PlaceRequest
		wantErr error
	}{
		{
			name:    "unknown dish",
			req:     PlaceRequest{Dish: "Sushi", Table: 1, Seat: 1, Server: "alice"},
			wantErr: models.ErrUnknownDish,
		},
		{
			name:    "unknown table",
			req:     PlaceRequest{Dish: "Pizza", Table: 9, Seat: 1, Server: "alice"},
			wantErr: models.ErrUnknownTable,
		},
		{
			name:    "seat beyond capacity",
			req:     PlaceRequest{Dish: "Pizza", Table: 1, Seat: 3, Server: "alice"},
			wantErr: models.ErrSeatOutOfRange,
		},
		{
			name:    "seat zero",
			req:     PlaceRequest{Dish: "Pizza", Table: 1, Seat: 0, Server: "alice"},
			wantErr: models.ErrSeatOutOfRange,
		},
		{
			name:    "unknown addition",
			req:     PlaceRequest{Dish: "Pizza", Table: 1, Seat: 1, Server: "alice", Additions: map[string]int{"truffle": 1}},
			wantErr: models.ErrUnknownIngredient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Place(tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Place() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := e.Place(PlaceRequest{Dish: "Pizza", Table: 1, Seat: 1}); err == nil {
		t.Errorf("expected error for missing server")
	}

	if got := len(e.History()); got != 0 {
		t.Errorf("rejected orders must not enter history, got %d", got)
	}
}

func TestEngine_PlaceInsufficientStock(t *testing.T) {
	e := newTestEngine(t)

	// Bread needs 8 flour; a second loaf would need 16 of 10
	mustPlace(t, e, PlaceRequest{Dish: "Bread", Table: 2, Seat: 1, Server: "alice"})
	cook := "bob"
	if err := e.Receive(1, cook); err != nil {
		t.Fatalf("Receive returned error: %v", err)
	}
	if err := e.Cook(1, cook); err != nil {
		t.Fatalf("Cook returned error: %v", err)
	}

	_, err := e.Place(PlaceRequest{Dish: "Bread", Table: 2, Seat: 2, Server: "alice"})
	if !errors.Is(err, models.ErrInsufficientStock) {
		t.Fatalf("Place() error = %v, want ErrInsufficientStock", err)
	}
	if got := len(e.History()); got != 1 {
		t.Errorf("history length = %d, want 1 (rejection never enters history)", got)
	}
}

func TestEngine_CookDeductsOnce(t *testing.T) {
	e := newTestEngine(t)

	// flour 10/threshold 5, Bread needs 8
	order := mustPlace(t, e, PlaceRequest{Dish: "Bread", Table: 2, Seat: 1, Server: "alice"})
	if got := ingredientAmount(t, e, "flour"); got != 10 {
		t.Fatalf("flour after place = %d, want 10", got)
	}

	if err := e.Receive(order.Number, "bob"); err != nil {
		t.Fatalf("Receive returned error: %v", err)
	}
	if err := e.Cook(order.Number, "bob"); err != nil {
		t.Fatalf("Cook returned error: %v", err)
	}

	if got := ingredientAmount(t, e, "flour"); got != 2 {
		t.Errorf("flour after cook = %d, want 2", got)
	}
	if !ingredientPending(t, e, "flour") {
		t.Errorf("flour must be pending reorder after dropping below threshold")
	}

	// repeat cook is a no-op and must not deduct again
	if err := e.Cook(order.Number, "bob"); err != nil {
		t.Fatalf("repeat Cook returned error: %v", err)
	}
	if got := ingredientAmount(t, e, "flour"); got != 2 {
		t.Errorf("flour after repeat cook = %d, want 2", got)
	}
}

func TestEngine_ReceiveGuards(t *testing.T) {
	e := newTestEngine(t)

	first := mustPlace(t, e, PlaceRequest{Dish: "Pizza", Table: 2, Seat: 1, Server: "alice"})
	second := mustPlace(t, e, PlaceRequest{Dish: "Pizza", Table: 2, Seat: 2, Server: "alice"})

	if err := e.Receive(first.Number, "bob"); err != nil {
		t.Fatalf("Receive returned error: %v", err)
	}
	if got := len(e.KitchenQueue()); got != 1 {
		t.Errorf("kitchen queue length = %d, want 1", got)
	}

	// same cook re-receiving their order is a quiet no-op
	if err := e.Receive(first.Number, "bob"); err != nil {
		t.Errorf("idempotent Receive returned error: %v", err)
	}

	// a different cook cannot take a held order
	if err := e.Receive(first.Number, "carol"); !errors.Is(err, models.ErrStaleCook) {
		t.Errorf("Receive by second cook error = %v, want ErrStaleCook", err)
	}

	// a busy cook cannot take a second order
	if err := e.Receive(second.Number, "bob"); !errors.Is(err, models.ErrCookBusy) {
		t.Errorf("Receive while busy error = %v, want ErrCookBusy", err)
	}

	if err := e.Receive(99, "bob"); !errors.Is(err, models.ErrUnknownOrder) {
		t.Errorf("Receive unknown order error = %v, want ErrUnknownOrder", err)
	}
}

func TestEngine_CookGuards(t *testing.T) {
	e := newTestEngine(t)

	order := mustPlace(t, e, PlaceRequest{Dish: "Pizza", Table: 2, Seat: 1, Server: "alice"})

	// cooking before receiving is invalid
	if err := e.Cook(order.Number, "bob"); !errors.Is(err, models.ErrInvalidTransition) {
		t.Errorf("Cook before receive error = %v, want ErrInvalidTransition", err)
	}

	if err := e.Receive(order.Number, "bob"); err != nil {
		t.Fatalf("Receive returned error: %v", err)
	}

	// only the holding cook may commit
	if err := e.Cook(order.Number, "carol"); !errors.Is(err, models.ErrStaleCook) {
		t.Errorf("Cook by wrong cook error = %v, want ErrStaleCook", err)
	}
	if got := ingredientAmount(t, e, "flour"); got != 10 {
		t.Errorf("flour must be untouched by refused cook, got %d", got)
	}
}

func TestEngine_CookAfterCancelAborts(t *testing.T) {
	e := newTestEngine(t)

	order := mustPlace(t, e, PlaceRequest{Dish: "Pizza", Table: 2, Seat: 1, Server: "alice"})
	if err := e.Receive(order.Number, "bob"); err != nil {
		t.Fatalf("Receive returned error: %v", err)
	}
	if err := e.Cancel(order.Number, models.ReasonCustomerCancelled); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}

	// the cook's commit arrives after the cancellation: quiet abort
	if err := e.Cook(order.Number, "bob"); err != nil {
		t.Fatalf("Cook after cancel returned error: %v", err)
	}
	if got := ingredientAmount(t, e, "flour"); got != 10 {
		t.Errorf("cancelled order must not consume stock, flour = %d", got)
	}

	// the cook was freed by the abort and can take new work
	next := mustPlace(t, e, PlaceRequest{Dish: "Pizza", Table: 2, Seat: 2, Server: "alice"})
	if err := e.Receive(next.Number, "bob"); err != nil {
		t.Errorf("cook must be free after abort, Receive error: %v", err)
	}
}

func TestEngine_CancelLeavesInventoryUnchanged(t *testing.T) {
	e := newTestEngine(t)

	order := mustPlace(t, e, PlaceRequest{Dish: "Bread", Table: 2, Seat: 1, Server: "alice"})
	if err := e.Cancel(order.Number, models.ReasonCustomerCancelled); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}

	if got := ingredientAmount(t, e, "flour"); got != 10 {
		t.Errorf("flour after place+cancel = %d, want 10", got)
	}
	if order.Status != models.StatusCancelled {
		t.Errorf("order status = %s, want cancelled", order.Status)
	}
	if order.Reason != models.ReasonCustomerCancelled {
		t.Errorf("order reason = %s, want customer-cancelled", order.Reason)
	}
	if got := len(e.KitchenQueue()); got != 0 {
		t.Errorf("cancelled order must leave the kitchen queue, got %d", got)
	}
	// history keeps the cancelled order
	if got := len(e.History()); got != 1 {
		t.Errorf("history length = %d, want 1", got)
	}
}

func TestEngine_CancelGuards(t *testing.T) {
	e := newTestEngine(t)

	order := mustPlace(t, e, PlaceRequest{Dish: "Pizza", Table: 2, Seat: 1, Server: "alice"})
	if err := e.Receive(order.Number, "bob"); err != nil {
		t.Fatalf("Receive returned error: %v", err)
	}
	if err := e.Cook(order.Number, "bob"); err != nil {
		t.Fatalf("Cook returned error: %v", err)
	}

	// a cooked order has consumed its ingredients and cannot be cancelled
	if err := e.Cancel(order.Number, models.ReasonCustomerCancelled); !errors.Is(err, models.ErrInvalidTransition) {
		t.Errorf("Cancel cooked order error = %v, want ErrInvalidTransition", err)
	}
	if err := e.Cancel(42, models.ReasonCustomerCancelled); !errors.Is(err, models.ErrUnknownOrder) {
		t.Errorf("Cancel unknown order error = %v, want ErrUnknownOrder", err)
	}
}

func TestEngine_DeliverGuards(t *testing.T) {
	e := newTestEngine(t)

	order := mustPlace(t, e, PlaceRequest{Dish: "Pizza", Table: 2, Seat: 1, Server: "alice"})

	if err := e.Deliver(order.Number, "alice"); !errors.Is(err, models.ErrInvalidTransition) {
		t.Errorf("Deliver before cook error = %v, want ErrInvalidTransition", err)
	}

	if err := e.Receive(order.Number, "bob"); err != nil {
		t.Fatalf("Receive returned error: %v", err)
	}
	if err := e.Cook(order.Number, "bob"); err != nil {
		t.Fatalf("Cook returned error: %v", err)
	}

	// only the order's own server can bus it
	if err := e.Deliver(order.Number, "mallory"); !errors.Is(err, models.ErrWrongServer) {
		t.Errorf("Deliver by wrong server error = %v, want ErrWrongServer", err)
	}

	if err := e.Deliver(order.Number, "alice"); err != nil {
		t.Fatalf("Deliver returned error: %v", err)
	}
	if order.Status != models.StatusDelivered {
		t.Errorf("order status = %s, want delivered", order.Status)
	}
}

func deliverOrder(t *testing.T, e *Engine, number int, cook, server string) {
	t.Helper()
	if err := e.Receive(number, cook); err != nil {
		t.Fatalf("Receive returned error: %v", err)
	}
	if err := e.Cook(number, cook); err != nil {
		t.Fatalf("Cook returned error: %v", err)
	}
	if err := e.Deliver(number, server); err != nil {
		t.Fatalf("Deliver returned error: %v", err)
	}
}

func TestEngine_Return(t *testing.T) {
	e := newTestEngine(t)

	order := mustPlace(t, e, PlaceRequest{
		Dish: "Pizza", Table: 2, Seat: 1, Server: "alice",
		Additions: map[string]int{"cheese": 1},
	})
	deliverOrder(t, e, order.Number, "bob", "alice")

	replacement, err := e.Return(order.Number)
	if err != nil {
		t.Fatalf("Return returned error: %v", err)
	}

	if order.Status != models.StatusCancelled {
		t.Errorf("original status = %s, want cancelled", order.Status)
	}
	if order.Reason != models.ReasonCustomerReturned {
		t.Errorf("original reason = %s, want customer-returned", order.Reason)
	}

	if replacement.Number == order.Number {
		t.Errorf("replacement must get a fresh order number")
	}
	if replacement.Status != models.StatusPlaced {
		t.Errorf("replacement status = %s, want placed", replacement.Status)
	}
	if replacement.Cook != "" {
		t.Errorf("replacement cook = %q, want empty", replacement.Cook)
	}
	if math.Abs(replacement.Price-order.Price) > 1e-9 {
		t.Errorf("replacement price = %v, want %v", replacement.Price, order.Price)
	}
	if replacement.Seat != order.Seat || replacement.TableNumber != order.TableNumber {
		t.Errorf("replacement must stay at the same seat and table")
	}

	// history grows by exactly one
	if got := len(e.History()); got != 2 {
		t.Errorf("history length = %d, want 2", got)
	}
	if got := len(e.KitchenQueue()); got != 1 {
		t.Errorf("kitchen queue length = %d, want 1", got)
	}
}

func TestEngine_ReturnGuards(t *testing.T) {
	e := newTestEngine(t)

	order := mustPlace(t, e, PlaceRequest{Dish: "Pizza", Table: 2, Seat: 1, Server: "alice"})
	if _, err := e.Return(order.Number); !errors.Is(err, models.ErrInvalidTransition) {
		t.Errorf("Return of undelivered order error = %v, want ErrInvalidTransition", err)
	}
	if _, err := e.Return(42); !errors.Is(err, models.ErrUnknownOrder) {
		t.Errorf("Return of unknown order error = %v, want ErrUnknownOrder", err)
	}
}

func TestEngine_ReturnRejectedWhenStockGone(t *testing.T) {
	e := newTestEngine(t)

	order := mustPlace(t, e, PlaceRequest{Dish: "Bread", Table: 2, Seat: 1, Server: "alice"})
	deliverOrder(t, e, order.Number, "bob", "alice")

	// 2 flour left; the replacement loaf needs 8
	if _, err := e.Return(order.Number); !errors.Is(err, models.ErrInsufficientStock) {
		t.Fatalf("Return error = %v, want ErrInsufficientStock", err)
	}

	// the original stays cancelled even though the replacement failed
	if order.Status != models.StatusCancelled {
		t.Errorf("original status = %s, want cancelled", order.Status)
	}
	if got := len(e.History()); got != 1 {
		t.Errorf("history length = %d, want 1", got)
	}
}

func TestEngine_Ship(t *testing.T) {
	e := newTestEngine(t)

	// cook Bread down to 2 flour so flour goes pending
	order := mustPlace(t, e, PlaceRequest{Dish: "Bread", Table: 2, Seat: 1, Server: "alice"})
	deliverOrder(t, e, order.Number, "bob", "alice")
	if !ingredientPending(t, e, "flour") {
		t.Fatalf("flour must be pending before the shipment")
	}

	if err := e.Ship("flour", 20); err != nil {
		t.Fatalf("Ship returned error: %v", err)
	}
	if got := ingredientAmount(t, e, "flour"); got != 22 {
		t.Errorf("flour after shipment = %d, want 22", got)
	}
	if ingredientPending(t, e, "flour") {
		t.Errorf("shipment must clear the pending mark")
	}

	if err := e.Ship("truffle", 5); !errors.Is(err, models.ErrUnknownIngredient) {
		t.Errorf("Ship unknown ingredient error = %v, want ErrUnknownIngredient", err)
	}
	if err := e.Ship("flour", -1); err == nil {
		t.Errorf("expected error for negative shipment")
	}
}

func TestEngine_ClearTable(t *testing.T) {
	e := newTestEngine(t)

	order := mustPlace(t, e, PlaceRequest{Dish: "Pizza", Table: 2, Seat: 1, Server: "alice"})

	// an undelivered order keeps the table open
	if _, err := e.ClearTable(2); !errors.Is(err, models.ErrTableActive) {
		t.Fatalf("ClearTable with active order error = %v, want ErrTableActive", err)
	}

	deliverOrder(t, e, order.Number, "bob", "alice")

	rec, err := e.ClearTable(2)
	if err != nil {
		t.Fatalf("ClearTable returned error: %v", err)
	}
	if rec.Server != "alice" || rec.TableNumber != 2 {
		t.Errorf("payment record = %+v", rec)
	}
	// small party: base 12 plus 13% tax, no tip
	if math.Abs(rec.Payment-12*1.13) > 1e-9 {
		t.Errorf("payment = %v, want %v", rec.Payment, 12*1.13)
	}

	// the payment is queryable by date
	records, total := e.Payments(rec.Date)
	if len(records) != 1 {
		t.Fatalf("ledger records for %s = %d, want 1", rec.Date, len(records))
	}
	if math.Abs(total-rec.Payment) > 1e-9 {
		t.Errorf("ledger total = %v, want %v", total, rec.Payment)
	}

	// the table is open again; history keeps the delivered order
	table, err := e.Table(2)
	if err != nil {
		t.Fatalf("Table returned error: %v", err)
	}
	if table.IsOccupied() {
		t.Errorf("cleared table must be unoccupied")
	}
	if got := len(e.History()); got != 1 {
		t.Errorf("history length = %d, want 1", got)
	}

	if _, err := e.ClearTable(9); !errors.Is(err, models.ErrUnknownTable) {
		t.Errorf("ClearTable unknown table error = %v, want ErrUnknownTable", err)
	}
}

func TestEngine_ClearTableBlockedByCancelled(t *testing.T) {
	e := newTestEngine(t)

	order := mustPlace(t, e, PlaceRequest{Dish: "Pizza", Table: 2, Seat: 1, Server: "alice"})
	if err := e.Cancel(order.Number, models.ReasonCustomerCancelled); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}

	// a cancelled order still sits at the table and blocks clearing
	if _, err := e.ClearTable(2); !errors.Is(err, models.ErrTableActive) {
		t.Errorf("ClearTable error = %v, want ErrTableActive", err)
	}
}

func TestEngine_Bills(t *testing.T) {
	e := newTestEngine(t)

	first := mustPlace(t, e, PlaceRequest{Dish: "Pizza", Table: 2, Seat: 1, Server: "alice"})
	deliverOrder(t, e, first.Number, "bob", "alice")
	second := mustPlace(t, e, PlaceRequest{Dish: "Pizza", Table: 2, Seat: 2, Server: "alice"})
	deliverOrder(t, e, second.Number, "bob", "alice")

	bill, err := e.TableBill(2)
	if err != nil {
		t.Fatalf("TableBill returned error: %v", err)
	}
	if math.Abs(bill.Subtotal-24) > 1e-9 {
		t.Errorf("table subtotal = %v, want 24", bill.Subtotal)
	}
	if math.Abs(bill.Total-24*1.13) > 1e-9 {
		t.Errorf("table total = %v, want %v", bill.Total, 24*1.13)
	}
	if bill.Text == "" {
		t.Errorf("bill text must not be empty")
	}

	seatBill, err := e.SeatBill(2, 1)
	if err != nil {
		t.Fatalf("SeatBill returned error: %v", err)
	}
	if math.Abs(seatBill.Subtotal-12) > 1e-9 {
		t.Errorf("seat subtotal = %v, want 12", seatBill.Subtotal)
	}

	// a seat beyond capacity bills zero
	emptyBill, err := e.SeatBill(2, 9)
	if err != nil {
		t.Fatalf("SeatBill(9) returned error: %v", err)
	}
	if emptyBill.Subtotal != 0 || emptyBill.Total != 0 {
		t.Errorf("out-of-range seat bill = %+v, want zero", emptyBill)
	}

	if _, err := e.TableBill(9); !errors.Is(err, models.ErrUnknownTable) {
		t.Errorf("TableBill unknown table error = %v, want ErrUnknownTable", err)
	}
}

func TestEngine_Events(t *testing.T) {
	e := newTestEngine(t)
	events := e.Subscribe()

	order := mustPlace(t, e, PlaceRequest{Dish: "Pizza", Table: 2, Seat: 1, Server: "alice"})
	if err := e.Receive(order.Number, "bob"); err != nil {
		t.Fatalf("Receive returned error: %v", err)
	}

	placed := <-events
	if placed.Type != models.EventOrderPlaced || placed.OrderNumber != order.Number {
		t.Errorf("first event = %+v, want order_placed for order %d", placed, order.Number)
	}

	received := <-events
	if received.Type != models.EventOrderStatusChanged {
		t.Fatalf("second event type = %s, want order_status_changed", received.Type)
	}
	if received.OldStatus != "placed" || received.NewStatus != "received" || received.ChangedBy != "bob" {
		t.Errorf("status event = %+v", received)
	}
}

func TestEngine_Layout(t *testing.T) {
	e := newTestEngine(t)

	if got := e.TableCount(); got != 2 {
		t.Fatalf("table count = %d, want 2", got)
	}

	one, err := e.Table(1)
	if err != nil {
		t.Fatalf("Table(1) returned error: %v", err)
	}
	if one.Capacity != 2 {
		t.Errorf("table 1 capacity = %d, want 2", one.Capacity)
	}
	two, err := e.Table(2)
	if err != nil {
		t.Fatalf("Table(2) returned error: %v", err)
	}
	if two.Capacity != 4 {
		t.Errorf("table 2 capacity = %d, want 4", two.Capacity)
	}
}

func TestEngine_StatsCountRejectionsNever(t *testing.T) {
	e := newTestEngine(t)

	mustPlace(t, e, PlaceRequest{Dish: "Pizza", Table: 2, Seat: 1, Server: "alice"})
	if _, err := e.Place(PlaceRequest{Dish: "Sushi", Table: 2, Seat: 2, Server: "alice"}); err == nil {
		t.Fatalf("expected rejection")
	}

	if got := e.Statistics().DishCount("Pizza"); got != 1 {
		t.Errorf("DishCount(Pizza) = %d, want 1", got)
	}
	if got := e.Statistics().DishCount("Sushi"); got != 0 {
		t.Errorf("DishCount(Sushi) = %d, want 0", got)
	}
}
