package models

import "github.com/shopspring/decimal"

// DishRow is one sellable menu item, keyed by dish name.
type DishRow struct {
	Dish        string           `json:"dish"`
	PriceMaster *decimal.Decimal `json:"priceMaster,omitempty"`
	PriceMenu   *decimal.Decimal `json:"priceMenu,omitempty"`
	PriceTest   *decimal.Decimal `json:"priceTest,omitempty"`

	// Derived on every recompute.
	CostOfGoods *decimal.Decimal `json:"costOfGoods,omitempty"`
	Margin      *decimal.Decimal `json:"margin,omitempty"`
	MarginPct   *decimal.Decimal `json:"marginPct,omitempty"`
	Diagnostic  DiagnosticCode   `json:"diagnostic,omitempty"`
}

// EffectivePrice evaluates the price fallback chain in its fixed priority
// order: test, then menu, then master. The explicit accessor list keeps the
// order auditable in one place.
func (d *DishRow) EffectivePrice() *decimal.Decimal {
	for _, price := range []*decimal.Decimal{d.PriceTest, d.PriceMenu, d.PriceMaster} {
		if price != nil {
			return price
		}
	}
	return nil
}

func (d DishRow) clone() DishRow {
	out := d
	out.PriceMaster = copyDecimal(d.PriceMaster)
	out.PriceMenu = copyDecimal(d.PriceMenu)
	out.PriceTest = copyDecimal(d.PriceTest)
	out.CostOfGoods = copyDecimal(d.CostOfGoods)
	out.Margin = copyDecimal(d.Margin)
	out.MarginPct = copyDecimal(d.MarginPct)
	return out
}
