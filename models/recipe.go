package models

import "github.com/shopspring/decimal"

// RecipeLine is one ingredient usage within one dish. (Dish, IngredientName)
// is the composite identity; duplicates are tolerated and the first match
// wins for mutation lookups.
type RecipeLine struct {
	Dish           string           `json:"dish"`
	IngredientName string           `json:"ingredientName"`
	Quantity       *decimal.Decimal `json:"quantity,omitempty"`
	Unit           RecipeUnit       `json:"unit,omitempty"`

	// SelectedInventory is an explicit per-line article choice. It outranks
	// the mapping correction, which outranks the mapping suggestion.
	SelectedInventory string `json:"selectedInventory,omitempty"`

	// Derived on every recompute.
	ResolvedInventoryName string           `json:"resolvedInventoryName,omitempty"`
	UnitCost              *decimal.Decimal `json:"unitCost,omitempty"`
	LineCost              *decimal.Decimal `json:"lineCost,omitempty"`
	Diagnostic            DiagnosticCode   `json:"diagnostic,omitempty"`
}

func (r RecipeLine) clone() RecipeLine {
	out := r
	out.Quantity = copyDecimal(r.Quantity)
	out.UnitCost = copyDecimal(r.UnitCost)
	out.LineCost = copyDecimal(r.LineCost)
	return out
}
