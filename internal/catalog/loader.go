package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFiles reads ingredient and menu JSON files and builds the catalog.
// Both files are plain JSON arrays; see resources/ingredients.json and
// resources/menu.json for the format.
func LoadFiles(ingredientsPath, menuPath string) (*Catalog, error) {
	var ingredients []IngredientSpec
	if err := readJSON(ingredientsPath, &ingredients); err != nil {
		return nil, fmt.Errorf("failed to load ingredients file: %w", err)
	}

	var dishes []DishSpec
	if err := readJSON(menuPath, &dishes); err != nil {
		return nil, fmt.Errorf("failed to load menu file: %w", err)
	}

	return Build(ingredients, dishes)
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return nil
}
