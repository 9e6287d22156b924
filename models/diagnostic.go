package models

import "fmt"

// DiagnosticKind identifies which collection a diagnostic belongs to.
type DiagnosticKind string

const (
	DiagnosticKindInventory DiagnosticKind = "inventory"
	DiagnosticKindMapping   DiagnosticKind = "mapping"
	DiagnosticKindRecipe    DiagnosticKind = "recipe"
	DiagnosticKindDish      DiagnosticKind = "dish"
)

// DiagnosticCode is a closed enumeration of engine failure modes. Display
// text is generated from the code, never stored as the code itself.
type DiagnosticCode string

const (
	CodeOK                    DiagnosticCode = "ok"
	CodeMissingPurchasePrice  DiagnosticCode = "missing_purchase_price"
	CodeMissingUnit           DiagnosticCode = "missing_unit"
	CodeMissingPackageContent DiagnosticCode = "missing_package_content"
	CodeMissingQuantity       DiagnosticCode = "missing_quantity"
	CodeMissingMapping        DiagnosticCode = "missing_mapping"
	CodeUnitMismatch          DiagnosticCode = "unit_mismatch"
	CodeMissingDishPrice      DiagnosticCode = "missing_price"
	CodeMissingRecipe         DiagnosticCode = "missing_recipe"
)

// Diagnostic is a structured, non-fatal record describing why a derived
// value is absent or suspect.
type Diagnostic struct {
	Kind       DiagnosticKind `json:"kind"`
	Code       DiagnosticCode `json:"code"`
	Dish       string         `json:"dish,omitempty"`
	Ingredient string         `json:"ingredient,omitempty"`
	Message    string         `json:"message"`
	ActionHint string         `json:"actionHint"`
}

// NewInventoryDiagnostic builds a diagnostic for an inventory article. The
// hint always points at the inventory screen since that is where purchase
// data is maintained.
func NewInventoryDiagnostic(code DiagnosticCode, article string) Diagnostic {
	d := Diagnostic{Kind: DiagnosticKindInventory, Code: code, Ingredient: article}
	switch code {
	case CodeMissingPurchasePrice:
		d.Message = fmt.Sprintf("purchase price missing: %s", article)
	case CodeMissingUnit:
		d.Message = fmt.Sprintf("purchase unit missing or unrecognized: %s", article)
	case CodeMissingPackageContent:
		d.Message = fmt.Sprintf("package content missing: %s", article)
	}
	d.ActionHint = "Maintain price, unit and package content on the inventory screen."
	return d
}

// NewRecipeDiagnostic builds a diagnostic for a recipe line.
func NewRecipeDiagnostic(code DiagnosticCode, dish, ingredient string) Diagnostic {
	d := Diagnostic{Kind: DiagnosticKindRecipe, Code: code, Dish: dish, Ingredient: ingredient}
	switch code {
	case CodeMissingQuantity:
		d.Message = fmt.Sprintf("quantity missing: %s", ingredient)
		d.ActionHint = "Enter the quantity on the dish recipe screen."
	case CodeMissingMapping:
		d.Message = fmt.Sprintf("mapping missing: %s", ingredient)
		d.ActionHint = "Assign the recipe ingredient on the mapping screen."
	case CodeMissingPurchasePrice:
		d.Message = fmt.Sprintf("purchase price missing: %s", ingredient)
		d.ActionHint = "Maintain price and unit on the inventory screen."
	case CodeUnitMismatch:
		d.Message = fmt.Sprintf("unit mismatch: %s", ingredient)
		d.ActionHint = "Align the recipe unit with the article's base unit on the mapping screen."
	}
	return d
}

// UnitMismatchDiagnostic carries the unit the line should use, mirroring the
// fix-it hint the mapping screen offers.
func UnitMismatchDiagnostic(dish, ingredient string, want RecipeUnit) Diagnostic {
	d := NewRecipeDiagnostic(CodeUnitMismatch, dish, ingredient)
	if want != "" {
		d.ActionHint = fmt.Sprintf("Set the recipe unit for %q to %s on the mapping screen.", ingredient, want)
	}
	return d
}

// NewDishDiagnostic builds a diagnostic for a dish row.
func NewDishDiagnostic(code DiagnosticCode, dish string) Diagnostic {
	d := Diagnostic{Kind: DiagnosticKindDish, Code: code, Dish: dish}
	switch code {
	case CodeMissingDishPrice:
		d.Message = fmt.Sprintf("price missing: %s", dish)
		d.ActionHint = "Enter a menu or test price on the dish screen."
	case CodeMissingRecipe:
		d.Message = fmt.Sprintf("cost of goods missing (recipe incomplete): %s", dish)
		d.ActionHint = "Complete quantities and mappings on the dish recipe screen."
	}
	return d
}
