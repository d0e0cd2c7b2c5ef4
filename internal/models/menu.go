package models

// MenuItem is one dish on the menu: a base price, an ordered recipe and a
// set of tags (vegetarian, spicy, ...). Menu items are built once at catalog
// load and never mutated afterwards.
type MenuItem struct {
	Name   string
	Price  float64
	Recipe []IngredientQty
	Tags   []string
}

// RecipeQty returns the recipe quantity for the named ingredient, or 0 if
// the recipe does not use it.
func (m *MenuItem) RecipeQty(name string) int {
	for _, rq := range m.Recipe {
		if rq.Ingredient.Name == name {
			return rq.Qty
		}
	}
	return 0
}

// HasTag reports whether the dish carries the given tag.
func (m *MenuItem) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Menu is the read-only list of dishes loaded at startup.
type Menu []*MenuItem

// Get returns the dish with the given name, or nil if the menu has no such
// dish.
func (m Menu) Get(name string) *MenuItem {
	for _, item := range m {
		if item.Name == name {
			return item
		}
	}
	return nil
}

// WithTag returns the dishes carrying the given tag, in menu order.
func (m Menu) WithTag(tag string) Menu {
	var out Menu
	for _, item := range m {
		if item.HasTag(tag) {
			out = append(out, item)
		}
	}
	return out
}
