package engine

import (
	"fmt"
	"time"

	"restaurant-pos/internal/models"
)

// PlaceRequest is a candidate order before validation. Additions and
// removals map ingredient names to quantities.
type PlaceRequest struct {
	Dish      string         `json:"dish"`
	Table     int            `json:"table"`
	Seat      int            `json:"seat"`
	Server    string         `json:"server"`
	Additions map[string]int `json:"additions,omitempty"`
	Removals  map[string]int `json:"removals,omitempty"`
}

// Place validates the candidate against the menu, the floor and the
// inventory, then commits it: order number assigned, seated at its table,
// appended to history, statistics bumped, kitchen notified. A rejected
// candidate never enters history.
func (e *Engine) Place(req PlaceRequest) (*models.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	order, err := e.buildOrder(req)
	if err != nil {
		return nil, err
	}
	if err := e.placeLocked(order); err != nil {
		return nil, err
	}
	return order, nil
}

// buildOrder resolves a request into an unplaced order. Price is computed
// here and never again: base price plus the add-on price of every extra
// unit.
func (e *Engine) buildOrder(req PlaceRequest) (*models.Order, error) {
	item := e.catalog.Menu.Get(req.Dish)
	if item == nil {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownDish, req.Dish)
	}
	table, err := e.tableLocked(req.Table)
	if err != nil {
		return nil, err
	}
	if req.Seat < 1 || req.Seat > table.Capacity {
		return nil, fmt.Errorf("%w: seat %d, table %d seats %d",
			models.ErrSeatOutOfRange, req.Seat, table.Number, table.Capacity)
	}
	if req.Server == "" {
		return nil, fmt.Errorf("server is required to place an order")
	}

	additions, err := e.resolveDeltas(req.Additions)
	if err != nil {
		return nil, err
	}
	removals, err := e.resolveDeltas(req.Removals)
	if err != nil {
		return nil, err
	}

	price := item.Price
	for _, add := range additions {
		price += float64(add.Qty) * add.Ingredient.AddOnPrice
	}

	return &models.Order{
		Item:        item,
		TableNumber: table.Number,
		Seat:        req.Seat,
		Server:      req.Server,
		Status:      models.StatusPlaced,
		Additions:   additions,
		Removals:    removals,
		Price:       price,
	}, nil
}

func (e *Engine) resolveDeltas(deltas map[string]int) ([]models.IngredientQty, error) {
	if len(deltas) == 0 {
		return nil, nil
	}
	out := make([]models.IngredientQty, 0, len(deltas))
	for name, qty := range deltas {
		ing := e.inventory.Ingredient(name)
		if ing == nil {
			return nil, fmt.Errorf("%w: %s", models.ErrUnknownIngredient, name)
		}
		if qty <= 0 {
			return nil, fmt.Errorf("delta for %s must be positive, got %d", name, qty)
		}
		out = append(out, models.IngredientQty{Ingredient: ing, Qty: qty})
	}
	return out, nil
}

// placeLocked commits an unplaced order. Sufficiency is checked here but
// nothing is deducted: stock leaves the shelf when the order is cooked.
func (e *Engine) placeLocked(order *models.Order) error {
	if !e.inventory.CheckSufficient(order.AllIngredients()) {
		e.logger.Info("order_rejected", "Insufficient ingredients for order", "", map[string]interface{}{
			"dish":  order.Item.Name,
			"table": order.TableNumber,
		})
		return models.ErrInsufficientStock
	}

	table := e.tables[order.TableNumber]
	table.SetServer(order.Server)

	order.Number = e.nextOrderNumber
	e.nextOrderNumber++
	order.Status = models.StatusPlaced
	order.PlacedAt = time.Now().UTC()

	table.AddOrder(order)
	e.history = append(e.history, order)
	e.byNum[order.Number] = order
	e.stats.RecordOrder(order)
	e.kitchenQueue = append(e.kitchenQueue, order)

	e.logger.Info("order_placed", fmt.Sprintf("%s placed by %s", order, order.Server), "", map[string]interface{}{
		"order_number": order.Number,
		"dish":         order.Item.Name,
		"price":        order.Price,
	})

	ev := models.NewEvent(models.EventOrderPlaced)
	ev.OrderNumber = order.Number
	ev.Dish = order.Item.Name
	ev.TableNumber = order.TableNumber
	ev.Seat = order.Seat
	ev.Server = order.Server
	ev.Price = order.Price
	ev.NewStatus = string(order.Status)
	e.publish(ev)
	return nil
}

// Receive assigns the requesting cook to a placed order and takes it off
// the kitchen queue. An order already received by a different cook is a
// stale assignment and is rejected; a busy cook cannot take a second order.
func (e *Engine) Receive(orderNumber int, cook string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	order, ok := e.byNum[orderNumber]
	if !ok {
		return fmt.Errorf("%w: %d", models.ErrUnknownOrder, orderNumber)
	}

	switch order.Status {
	case models.StatusPlaced:
	case models.StatusReceived:
		if order.Cook == cook {
			return nil
		}
		return fmt.Errorf("%w: order %d held by %s", models.ErrStaleCook, orderNumber, order.Cook)
	default:
		return fmt.Errorf("%w: cannot receive order in state %s", models.ErrInvalidTransition, order.Status)
	}

	if e.busyCooks[cook] {
		return fmt.Errorf("%w: %s", models.ErrCookBusy, cook)
	}

	order.Cook = cook
	e.setStatus(order, models.StatusReceived, cook, "")
	e.busyCooks[cook] = true
	e.removeFromQueue(order)
	return nil
}

// Cook moves a received order to cooked and reconciles inventory: exactly
// one deduction of AllIngredients, followed by a threshold sweep. The
// committing cook must be the one who received the order. Cooking an order
// that was cancelled in the meantime is not an error: the attempt aborts,
// the cook is freed and thresholds are re-checked. Cooking an
// already-cooked order is a no-op.
func (e *Engine) Cook(orderNumber int, cook string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	order, ok := e.byNum[orderNumber]
	if !ok {
		return fmt.Errorf("%w: %d", models.ErrUnknownOrder, orderNumber)
	}

	if order.IsCancelled() {
		e.logger.Info("cook_aborted", fmt.Sprintf("%s was cancelled, cannot complete cooking", order), "", nil)
		delete(e.busyCooks, cook)
		e.publish(e.inventory.EvaluateThresholds()...)
		return nil
	}
	if order.Status == models.StatusCooked || order.Status == models.StatusDelivered {
		return nil
	}
	if !order.IsReceived() {
		return fmt.Errorf("%w: order must be received before cooking", models.ErrInvalidTransition)
	}
	if order.Cook != cook {
		return fmt.Errorf("%w: order %d held by %s", models.ErrStaleCook, orderNumber, order.Cook)
	}

	requirements := order.AllIngredients()
	if err := e.inventory.Deduct(requirements); err != nil {
		return err
	}

	e.setStatus(order, models.StatusCooked, cook, "")
	delete(e.busyCooks, cook)
	e.publish(e.inventory.EvaluateThresholds()...)

	e.logger.Info("order_cooked", fmt.Sprintf("%s cooked and ready to bus", order), "", map[string]interface{}{
		"order_number": order.Number,
		"cook":         cook,
	})
	return nil
}

// Deliver marks a cooked order delivered. Delivery is a server action and
// only the order's own server may commit it; delivered is terminal for
// billing.
func (e *Engine) Deliver(orderNumber int, server string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	order, ok := e.byNum[orderNumber]
	if !ok {
		return fmt.Errorf("%w: %d", models.ErrUnknownOrder, orderNumber)
	}
	if order.Status != models.StatusCooked {
		return fmt.Errorf("%w: cannot deliver order in state %s", models.ErrInvalidTransition, order.Status)
	}
	if order.Server != server {
		return fmt.Errorf("%w: order %d belongs to %s", models.ErrWrongServer, orderNumber, order.Server)
	}

	e.setStatus(order, models.StatusDelivered, server, "")
	return nil
}

// Cancel cancels a placed or received order. The order stays in history and
// at its table with state cancelled. Inventory is never restored: a cooked
// order has already consumed its ingredients and cannot be cancelled at
// all.
func (e *Engine) Cancel(orderNumber int, reason models.CancelReason) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancelLocked(orderNumber, reason)
}

func (e *Engine) cancelLocked(orderNumber int, reason models.CancelReason) error {
	order, ok := e.byNum[orderNumber]
	if !ok {
		return fmt.Errorf("%w: %d", models.ErrUnknownOrder, orderNumber)
	}
	if order.Status != models.StatusPlaced && order.Status != models.StatusReceived {
		return fmt.Errorf("%w: cannot cancel order in state %s", models.ErrInvalidTransition, order.Status)
	}

	if order.Status == models.StatusPlaced {
		e.removeFromQueue(order)
	} else if order.Cook != "" {
		delete(e.busyCooks, order.Cook)
	}

	order.Reason = reason
	e.setStatus(order, models.StatusCancelled, order.Server, string(reason))
	return nil
}

// Return handles a customer sending a delivered order back: the original is
// cancelled with reason customer-returned and a fresh clone re-enters the
// pipeline as a new placed order. History grows by exactly one. If the
// kitchen can no longer source the clone, the original stays cancelled and
// the rejection is reported.
func (e *Engine) Return(orderNumber int) (*models.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	order, ok := e.byNum[orderNumber]
	if !ok {
		return nil, fmt.Errorf("%w: %d", models.ErrUnknownOrder, orderNumber)
	}
	if !order.IsDelivered() {
		return nil, fmt.Errorf("%w: only delivered orders can be returned", models.ErrInvalidTransition)
	}

	// Delivered orders are not reachable by Cancel; the return path is the
	// one place a delivered order becomes cancelled.
	order.Reason = models.ReasonCustomerReturned
	e.setStatus(order, models.StatusCancelled, order.Server, string(models.ReasonCustomerReturned))

	clone := order.CloneNew()
	clone.Price = order.Price
	if err := e.placeLocked(clone); err != nil {
		e.logger.Error("return_replacement_failed", "Could not place replacement order", "", err, map[string]interface{}{
			"original_order": order.Number,
		})
		return nil, err
	}
	return clone, nil
}

// Ship books a received shipment of one ingredient and re-evaluates
// thresholds; a pending mark set earlier clears here if the shipment
// brought the ingredient back over its threshold.
func (e *Engine) Ship(ingredient string, amount int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.inventory.ReceiveShipment(ingredient, amount); err != nil {
		return err
	}

	ev := models.NewEvent(models.EventShipmentReceived)
	ev.Ingredient = ingredient
	ev.ShippedAmount = amount
	ev.Amount = e.inventory.Ingredient(ingredient).Amount
	e.publish(ev)

	e.publish(e.inventory.EvaluateThresholds()...)
	return nil
}

// ClearTable settles a table: the total bill is appended to the payment
// ledger (write-through) and the seat lists are emptied. A table with any
// undelivered order, cancelled ones included, cannot be cleared.
func (e *Engine) ClearTable(tableNumber int) (models.PaymentRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	table, err := e.tableLocked(tableNumber)
	if err != nil {
		return models.PaymentRecord{}, err
	}
	if table.HasActiveOrders() {
		return models.PaymentRecord{}, fmt.Errorf("%w: table %d", models.ErrTableActive, tableNumber)
	}

	rec := models.PaymentRecord{
		Date:        time.Now().Format(models.PaymentDateLayout),
		Server:      table.Server(),
		TableNumber: table.Number,
		Payment:     table.TotalBill(),
	}
	e.ledger.Append(rec)
	table.Clear()

	e.logger.Info("table_cleared", fmt.Sprintf("Cleared table %d and received payment", table.Number), "", map[string]interface{}{
		"table":   table.Number,
		"payment": rec.Payment,
	})

	cleared := models.NewEvent(models.EventTableCleared)
	cleared.TableNumber = table.Number
	cleared.Server = rec.Server

	paid := models.NewEvent(models.EventPaymentRecorded)
	paid.TableNumber = rec.TableNumber
	paid.Server = rec.Server
	paid.Payment = rec.Payment
	e.publish(cleared, paid)

	return rec, nil
}

// setStatus commits a status change and publishes it. Callers hold e.mu.
func (e *Engine) setStatus(order *models.Order, status models.OrderStatus, changedBy, reason string) {
	old := order.Status
	order.Status = status

	ev := models.NewEvent(models.EventOrderStatusChanged)
	ev.OrderNumber = order.Number
	ev.Dish = order.Item.Name
	ev.TableNumber = order.TableNumber
	ev.OldStatus = string(old)
	ev.NewStatus = string(status)
	ev.ChangedBy = changedBy
	ev.Reason = reason
	e.publish(ev)
}
