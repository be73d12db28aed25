// Package ingredient consolidates recipe ingredients into shopping items.
package ingredient

import "github.com/dukerupert/dishly/internal/model"

// KeySeparator joins name and unit in a merge key.
const KeySeparator = "_"

// MergeKey identifies ingredients that can be summed: same name and same unit.
// Matching is exact; "Flour" and "flour" produce different keys.
func MergeKey(name, unit string) string {
	return name + KeySeparator + unit
}

// Merge consolidates the ingredients of the given recipes, in order, into
// shopping items. Items appear in the order their key was first seen and
// quantities sharing a key are summed without unit conversion.
func Merge(recipes []*model.Recipe) []model.ShoppingItem {
	items := make([]model.ShoppingItem, 0)
	index := make(map[string]int)

	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			key := MergeKey(ing.Name, ing.Unit)
			if i, ok := index[key]; ok {
				items[i].Quantity += ing.Quantity
				continue
			}
			index[key] = len(items)
			items = append(items, model.ShoppingItem{
				IngredientName: ing.Name,
				Quantity:       ing.Quantity,
				Unit:           ing.Unit,
				Category:       Categorize(ing.Name),
			})
		}
	}
	return items
}
