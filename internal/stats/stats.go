package stats

import (
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"restaurant-pos/internal/models"
)

// Statistics tracks usage counters over dishes and ingredients. Counters
// only ever go up: they are bumped on every accepted order and survive
// table clearing. The same counts are exported as Prometheus metrics so an
// operator can scrape them without touching the engine.
type Statistics struct {
	mu          sync.RWMutex
	dishes      map[string]int
	ingredients map[string]int

	dishCounter       *prometheus.CounterVec
	ingredientCounter *prometheus.CounterVec
}

// New creates empty statistics and registers its metrics with reg. Pass
// prometheus.NewRegistry() in tests to keep registrations isolated.
func New(reg prometheus.Registerer) *Statistics {
	s := &Statistics{
		dishes:      make(map[string]int),
		ingredients: make(map[string]int),
		dishCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_dish_orders_total",
			Help: "Number of accepted orders per dish.",
		}, []string{"dish"}),
		ingredientCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_ingredient_usage_total",
			Help: "Units of each ingredient consumed by accepted orders.",
		}, []string{"ingredient"}),
	}
	reg.MustRegister(s.dishCounter, s.ingredientCounter)
	return s
}

// RecordOrder bumps the dish counter and every consumed ingredient's
// counter for one accepted order.
func (s *Statistics) RecordOrder(order *models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dishes[order.Item.Name]++
	s.dishCounter.WithLabelValues(order.Item.Name).Inc()

	for _, req := range order.AllIngredients() {
		s.ingredients[req.Ingredient.Name] += req.Qty
		s.ingredientCounter.WithLabelValues(req.Ingredient.Name).Add(float64(req.Qty))
	}
}

// DishCount returns the accepted-order count for one dish.
func (s *Statistics) DishCount(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dishes[name]
}

// IngredientCount returns the consumed units for one ingredient.
func (s *Statistics) IngredientCount(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ingredients[name]
}

// Usage is one row of a usage report.
type Usage struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PopularDishes returns dishes ranked by accepted orders, most popular
// first; ties break by name.
func (s *Statistics) PopularDishes() []Usage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ranked(s.dishes)
}

// IngredientUsage returns ingredients ranked by consumed units.
func (s *Statistics) IngredientUsage() []Usage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ranked(s.ingredients)
}

func ranked(counts map[string]int) []Usage {
	out := make([]Usage, 0, len(counts))
	for name, count := range counts {
		out = append(out, Usage{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
