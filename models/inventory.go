package models

import "github.com/shopspring/decimal"

// InventoryItem is one purchasable article. Name is the natural key.
// Articles are never deleted automatically; dangling references from recipe
// lines degrade to diagnostics instead of failing.
type InventoryItem struct {
	Name           string           `json:"name"`
	Group          string           `json:"group,omitempty"`
	PurchasePrice  *decimal.Decimal `json:"purchasePrice,omitempty"`
	PurchaseUnit   string           `json:"purchaseUnit,omitempty"`
	PackageContent *decimal.Decimal `json:"packageContentRaw,omitempty"` // legacy fallback, in purchase units
	TargetUnit     TargetUnit       `json:"targetUnit,omitempty"`

	// PackageContentTarget is the package content expressed in TargetUnit.
	PackageContentTarget *decimal.Decimal `json:"packageContentTarget,omitempty"`

	// Derived on every recompute.
	PricePerBaseUnit *decimal.Decimal `json:"pricePerBaseUnit,omitempty"`
	StatusFlags      []DiagnosticCode `json:"statusFlags,omitempty"`
}

// EffectivePackageContent prefers the target-unit content and falls back to
// the legacy raw column.
func (i *InventoryItem) EffectivePackageContent() *decimal.Decimal {
	if i.PackageContentTarget != nil {
		return i.PackageContentTarget
	}
	return i.PackageContent
}

func (i InventoryItem) clone() InventoryItem {
	out := i
	out.PurchasePrice = copyDecimal(i.PurchasePrice)
	out.PackageContent = copyDecimal(i.PackageContent)
	out.PackageContentTarget = copyDecimal(i.PackageContentTarget)
	out.PricePerBaseUnit = copyDecimal(i.PricePerBaseUnit)
	out.StatusFlags = append([]DiagnosticCode(nil), i.StatusFlags...)
	return out
}
