package engine

import (
	"fmt"
	"sync"

	"restaurant-pos/internal/catalog"
	"restaurant-pos/internal/inventory"
	"restaurant-pos/internal/ledger"
	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/models"
	"restaurant-pos/internal/stats"
)

// Engine executes the order lifecycle. Every state transition (place,
// receive, cook, deliver, cancel, return, ship, clear-table) runs to
// completion under one mutex: a single logical writer, which is plenty for
// a human-speed workload and is what lets check-then-deduct be safe without
// a second lock.
//
// Orders are retained in history forever; clearing a table only empties the
// table's live seat lists.
type Engine struct {
	mu sync.Mutex

	catalog   *catalog.Catalog
	inventory *inventory.Manager
	stats     *stats.Statistics
	ledger    *ledger.Ledger
	logger    *logger.Logger

	tables  map[int]*models.Table
	history []*models.Order
	byNum   map[int]*models.Order

	// placed orders waiting for a cook, oldest first
	kitchenQueue []*models.Order
	busyCooks    map[string]bool

	nextOrderNumber int

	subMu       sync.Mutex
	subscribers []chan models.Event
}

// New wires the engine over its collaborators and lays out the floor:
// layout[i] tables of capacity i+1, numbered from 1. The constructor runs
// an initial threshold sweep so the reorder manifest is authoritative from
// process start.
func New(cat *catalog.Catalog, inv *inventory.Manager, st *stats.Statistics, led *ledger.Ledger, layout []int, log *logger.Logger) *Engine {
	e := &Engine{
		catalog:         cat,
		inventory:       inv,
		stats:           st,
		ledger:          led,
		logger:          log,
		tables:          make(map[int]*models.Table),
		byNum:           make(map[int]*models.Order),
		busyCooks:       make(map[string]bool),
		nextOrderNumber: 1,
	}

	tableNumber := 1
	for size, count := range layout {
		for i := 0; i < count; i++ {
			e.tables[tableNumber] = models.NewTable(tableNumber, size+1)
			tableNumber++
		}
	}

	e.publish(e.inventory.EvaluateThresholds()...)
	return e
}

// Subscribe returns a channel of domain events. The channel is buffered; a
// subscriber that falls behind loses events rather than stalling a
// transition.
func (e *Engine) Subscribe() <-chan models.Event {
	ch := make(chan models.Event, 64)
	e.subMu.Lock()
	e.subscribers = append(e.subscribers, ch)
	e.subMu.Unlock()
	return ch
}

func (e *Engine) publish(events ...models.Event) {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	for _, ev := range events {
		for _, ch := range e.subscribers {
			select {
			case ch <- ev:
			default:
				e.logger.Debug("event_dropped", "Subscriber queue full, event dropped", "", map[string]interface{}{
					"event_type": string(ev.Type),
				})
			}
		}
	}
}

// Order returns the order with the given number.
func (e *Engine) Order(number int) (*models.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	o, ok := e.byNum[number]
	if !ok {
		return nil, fmt.Errorf("%w: %d", models.ErrUnknownOrder, number)
	}
	return o, nil
}

// Table returns the table with the given number.
func (e *Engine) Table(number int) (*models.Table, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tableLocked(number)
}

func (e *Engine) tableLocked(number int) (*models.Table, error) {
	t, ok := e.tables[number]
	if !ok {
		return nil, fmt.Errorf("%w: %d", models.ErrUnknownTable, number)
	}
	return t, nil
}

// TableCount returns the number of tables on the floor.
func (e *Engine) TableCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.tables)
}

// History returns a copy of the full order history, oldest first.
func (e *Engine) History() []*models.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*models.Order(nil), e.history...)
}

// KitchenQueue returns the placed orders no cook has picked up yet, oldest
// first.
func (e *Engine) KitchenQueue() []*models.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*models.Order(nil), e.kitchenQueue...)
}

// Menu returns the loaded menu.
func (e *Engine) Menu() models.Menu {
	return e.catalog.Menu
}

// Statistics returns the order statistics collector.
func (e *Engine) Statistics() *stats.Statistics {
	return e.stats
}

// Inventory returns a snapshot of all ingredients with their pending state.
func (e *Engine) Inventory() []InventoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]InventoryEntry, 0, len(e.inventory.Ingredients()))
	for _, ing := range e.inventory.Ingredients() {
		out = append(out, InventoryEntry{
			Name:        ing.Name,
			DisplayName: ing.DisplayName,
			Amount:      ing.Amount,
			Threshold:   ing.Threshold,
			Usage:       ing.Usage,
			Pending:     e.inventory.IsPending(ing.Name),
		})
	}
	return out
}

// InventoryEntry is one row of an inventory snapshot.
type InventoryEntry struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Amount      int    `json:"amount"`
	Threshold   int    `json:"threshold"`
	Usage       int    `json:"usage"`
	Pending     bool   `json:"pending"`
}

func (e *Engine) removeFromQueue(o *models.Order) {
	for i, queued := range e.kitchenQueue {
		if queued == o {
			e.kitchenQueue = append(e.kitchenQueue[:i], e.kitchenQueue[i+1:]...)
			return
		}
	}
}
