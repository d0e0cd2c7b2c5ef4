package inventory

import (
	"fmt"

	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/models"
)

// Manager owns every ingredient and is the only code allowed to mutate
// stock counters. It is not safe for concurrent use on its own: every call
// happens inside a serialized engine transition.
type Manager struct {
	ingredients []*models.Ingredient
	byName      map[string]*models.Ingredient
	pending     map[string]bool

	reorderAmount int
	requestsPath  string
	logger        *logger.Logger
}

// NewManager creates a manager over the catalog's ingredients. The reorder
// manifest at requestsPath is rewritten after every threshold evaluation;
// reorderAmount is the fixed quantity requested for each pending ingredient.
func NewManager(ingredients []*models.Ingredient, requestsPath string, reorderAmount int, log *logger.Logger) *Manager {
	byName := make(map[string]*models.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byName[ing.Name] = ing
	}
	return &Manager{
		ingredients:   ingredients,
		byName:        byName,
		pending:       make(map[string]bool),
		reorderAmount: reorderAmount,
		requestsPath:  requestsPath,
		logger:        log,
	}
}

// Ingredient returns the ingredient with the given name, or nil.
func (m *Manager) Ingredient(name string) *models.Ingredient {
	return m.byName[name]
}

// Ingredients returns all ingredients in catalog order.
func (m *Manager) Ingredients() []*models.Ingredient {
	return m.ingredients
}

// ReorderAmount returns the fixed per-ingredient reorder quantity.
func (m *Manager) ReorderAmount() int {
	return m.reorderAmount
}

// CheckSufficient reports whether every requirement can be met from current
// stock. Pure read; requirements with the same ingredient listed twice are
// checked entry by entry, exactly as they will be deducted.
func (m *Manager) CheckSufficient(requirements []models.IngredientQty) bool {
	needed := make(map[string]int, len(requirements))
	for _, req := range requirements {
		needed[req.Ingredient.Name] += req.Qty
	}
	for name, qty := range needed {
		if m.byName[name].Amount < qty {
			return false
		}
	}
	return true
}

// Deduct consumes stock and bumps usage counters. Callers must have passed
// CheckSufficient in the same transition; a requirement that would
// underflow is a programming error and is refused wholesale.
func (m *Manager) Deduct(requirements []models.IngredientQty) error {
	if !m.CheckSufficient(requirements) {
		return models.ErrInsufficientStock
	}
	for _, req := range requirements {
		req.Ingredient.Amount -= req.Qty
		req.Ingredient.Usage += req.Qty
	}
	return nil
}

// ReceiveShipment adds delivered stock to one ingredient. Pending state is
// not touched here; the next EvaluateThresholds call clears it.
func (m *Manager) ReceiveShipment(name string, amount int) error {
	ing, ok := m.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrUnknownIngredient, name)
	}
	if amount <= 0 {
		return fmt.Errorf("shipment amount must be positive, got %d", amount)
	}
	ing.Amount += amount
	return nil
}

// IsPending reports whether the ingredient is currently awaiting restock.
func (m *Manager) IsPending(name string) bool {
	return m.pending[name]
}

// EvaluateThresholds sweeps every ingredient: below threshold and not yet
// pending becomes pending (and is logged with the reorder quantity);
// restocked ingredients leave the pending set. The manifest file is
// rewritten afterwards whether or not anything changed, so the external
// file stays authoritative. Returns the threshold events of this sweep.
func (m *Manager) EvaluateThresholds() []models.Event {
	var events []models.Event

	for _, ing := range m.ingredients {
		if ing.Amount < ing.Threshold {
			if !m.pending[ing.Name] {
				m.pending[ing.Name] = true
				m.logger.Info("reorder_requested",
					fmt.Sprintf("Now requesting %d units of %s", m.reorderAmount, ing.DisplayName),
					"", map[string]interface{}{
						"ingredient": ing.Name,
						"amount":     ing.Amount,
						"threshold":  ing.Threshold,
					})

				ev := models.NewEvent(models.EventThresholdCrossed)
				ev.Ingredient = ing.Name
				ev.Amount = ing.Amount
				ev.Threshold = ing.Threshold
				ev.ReorderAmount = m.reorderAmount
				events = append(events, ev)
			}
		} else if m.pending[ing.Name] {
			delete(m.pending, ing.Name)

			ev := models.NewEvent(models.EventThresholdCleared)
			ev.Ingredient = ing.Name
			ev.Amount = ing.Amount
			ev.Threshold = ing.Threshold
			events = append(events, ev)
		}
	}

	m.writeManifest()
	return events
}
