package catalog

import (
	"fmt"

	"restaurant-pos/internal/models"
)

// IngredientSpec is one pre-parsed ingredient definition. How it was
// sourced (file, network, embedded) is the caller's business.
type IngredientSpec struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Amount      int     `json:"amount"`
	Threshold   int     `json:"threshold"`
	AddOnPrice  float64 `json:"add_on_price"`
}

// RecipeSpec is one ingredient requirement of a dish.
type RecipeSpec struct {
	Ingredient string `json:"ingredient"`
	Quantity   int    `json:"quantity"`
}

// DishSpec is one pre-parsed menu entry.
type DishSpec struct {
	Name        string       `json:"name"`
	Price       float64      `json:"price"`
	Tags        []string     `json:"tags"`
	Ingredients []RecipeSpec `json:"ingredients"`
}

// Catalog is the immutable menu and ingredient reference data the engine
// runs against. Built once at startup; a build error is fatal because the
// engine must not start with a partially-resolved catalog.
type Catalog struct {
	Ingredients []*models.Ingredient
	Menu        models.Menu

	byName map[string]*models.Ingredient
}

// Build resolves dish specs against ingredient specs. Every referenced
// ingredient must exist and names must be unique in both lists.
func Build(ingredients []IngredientSpec, dishes []DishSpec) (*Catalog, error) {
	cat := &Catalog{byName: make(map[string]*models.Ingredient, len(ingredients))}

	for _, spec := range ingredients {
		if spec.Name == "" {
			return nil, fmt.Errorf("ingredient with empty name")
		}
		if _, exists := cat.byName[spec.Name]; exists {
			return nil, fmt.Errorf("duplicate ingredient %q", spec.Name)
		}
		if spec.Amount < 0 {
			return nil, fmt.Errorf("ingredient %q has negative amount %d", spec.Name, spec.Amount)
		}

		display := spec.DisplayName
		if display == "" {
			display = spec.Name
		}
		ing := &models.Ingredient{
			Name:        spec.Name,
			DisplayName: display,
			AddOnPrice:  spec.AddOnPrice,
			Amount:      spec.Amount,
			Threshold:   spec.Threshold,
		}
		cat.Ingredients = append(cat.Ingredients, ing)
		cat.byName[spec.Name] = ing
	}

	seen := make(map[string]bool, len(dishes))
	for _, spec := range dishes {
		if spec.Name == "" {
			return nil, fmt.Errorf("dish with empty name")
		}
		if seen[spec.Name] {
			return nil, fmt.Errorf("duplicate dish %q", spec.Name)
		}
		seen[spec.Name] = true

		item := &models.MenuItem{
			Name:  spec.Name,
			Price: spec.Price,
			Tags:  append([]string(nil), spec.Tags...),
		}
		for _, req := range spec.Ingredients {
			ing, ok := cat.byName[req.Ingredient]
			if !ok {
				return nil, fmt.Errorf("dish %q references unknown ingredient %q: %w",
					spec.Name, req.Ingredient, models.ErrUnknownIngredient)
			}
			if req.Quantity <= 0 {
				return nil, fmt.Errorf("dish %q requires non-positive quantity of %q", spec.Name, req.Ingredient)
			}
			item.Recipe = append(item.Recipe, models.IngredientQty{Ingredient: ing, Qty: req.Quantity})
		}
		cat.Menu = append(cat.Menu, item)
	}

	return cat, nil
}

// Ingredient returns the catalog ingredient with the given name, or nil.
func (c *Catalog) Ingredient(name string) *models.Ingredient {
	return c.byName[name]
}
