package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TargetUnit is the coarse purchasing dimension a package size is expressed in.
type TargetUnit string

const (
	TargetUnitMass   TargetUnit = "mass"
	TargetUnitVolume TargetUnit = "volume"
	TargetUnitCount  TargetUnit = "count"
)

// RecipeUnit is the fine-grained unit recipe lines are expressed in.
type RecipeUnit string

const (
	RecipeUnitGram       RecipeUnit = "g"
	RecipeUnitMillilitre RecipeUnit = "ml"
	RecipeUnitPiece      RecipeUnit = "piece"
)

var thousand = decimal.NewFromInt(1000)

// ClassifyPurchaseUnit maps a free-text purchase unit as it appears on an
// invoice ("kg", "Liter", "Stk", ...) to its target dimension. Unknown
// spellings return ok=false; the caller records a diagnostic instead of
// guessing.
func ClassifyPurchaseUnit(raw string) (TargetUnit, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "kg", "kilo", "kilogramm", "kilogram", "g", "gramm", "gram", "gr":
		return TargetUnitMass, true
	case "l", "lt", "liter", "litre", "ml", "milliliter", "millilitre":
		return TargetUnitVolume, true
	case "stk", "stück", "stueck", "st", "stk.", "pc", "pcs", "piece", "pieces", "einheit":
		return TargetUnitCount, true
	default:
		return "", false
	}
}

// RecipeUnitFor returns the recipe unit matching a target dimension
// (mass→g, volume→ml, count→piece).
func RecipeUnitFor(t TargetUnit) (RecipeUnit, bool) {
	switch t {
	case TargetUnitMass:
		return RecipeUnitGram, true
	case TargetUnitVolume:
		return RecipeUnitMillilitre, true
	case TargetUnitCount:
		return RecipeUnitPiece, true
	default:
		return "", false
	}
}

// ParseTargetUnit accepts both the canonical dimension names and the raw
// purchase-unit spellings, so exported sheets re-import cleanly.
func ParseTargetUnit(raw string) (TargetUnit, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(TargetUnitMass):
		return TargetUnitMass, true
	case string(TargetUnitVolume):
		return TargetUnitVolume, true
	case string(TargetUnitCount):
		return TargetUnitCount, true
	}
	return ClassifyPurchaseUnit(raw)
}

// ParseRecipeUnit normalizes a cell value to a recipe unit.
func ParseRecipeUnit(raw string) (RecipeUnit, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "g", "gramm", "gram":
		return RecipeUnitGram, true
	case "ml", "milliliter", "millilitre":
		return RecipeUnitMillilitre, true
	case "stk", "stück", "stueck", "st", "pc", "pcs", "piece":
		return RecipeUnitPiece, true
	default:
		return "", false
	}
}

// PricePerBase converts an invoiced package price into the price per recipe
// base unit: price/content, scaled by 1/1000 for mass and volume because
// packages are priced per kg/l while recipes consume g/ml. Count packages
// stay unscaled. A zero or absent content yields nil, never a division error.
func PricePerBase(purchasePrice *decimal.Decimal, packageContent *decimal.Decimal, target TargetUnit) *decimal.Decimal {
	if purchasePrice == nil || packageContent == nil || packageContent.IsZero() {
		return nil
	}
	perPackageUnit := purchasePrice.Div(*packageContent)
	if target == TargetUnitMass || target == TargetUnitVolume {
		perPackageUnit = perPackageUnit.Div(thousand)
	}
	return &perPackageUnit
}
