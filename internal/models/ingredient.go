package models

// Ingredient is a single stocked ingredient. Identity is the Name field;
// DisplayName is what shows up on manifests and kitchen screens.
//
// Amount and Usage are only ever mutated by the inventory manager, and all
// inventory manager calls run inside a serialized engine transition.
type Ingredient struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	AddOnPrice  float64 `json:"add_on_price"`
	Amount      int     `json:"amount"`
	Threshold   int     `json:"threshold"`
	Usage       int     `json:"usage"`
}

// IngredientQty pairs an ingredient with a required quantity. Requirement
// lists keep recipe order, so they are slices rather than maps.
type IngredientQty struct {
	Ingredient *Ingredient
	Qty        int
}
