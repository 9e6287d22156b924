package models

import "github.com/shopspring/decimal"

// DayState is the operator input for one trading day: how many of each dish
// were sold, optional per-day price overrides, and the two percentage knobs.
type DayState struct {
	QtyByDish   map[string]int              `json:"qtyByDish"`
	PriceByDish map[string]*decimal.Decimal `json:"priceByDish"`

	// Percentages are stored as 0..100, not fractions.
	SurchargePct    decimal.Decimal `json:"surchargePct"`
	FranchiseFeePct decimal.Decimal `json:"franchiseFeePct"`
}

// NewDayState returns an empty day with both percentages at zero.
func NewDayState() DayState {
	return DayState{
		QtyByDish:   map[string]int{},
		PriceByDish: map[string]*decimal.Decimal{},
	}
}

// Clone deep-copies the day input.
func (d *DayState) Clone() DayState {
	out := DayState{
		QtyByDish:       make(map[string]int, len(d.QtyByDish)),
		PriceByDish:     make(map[string]*decimal.Decimal, len(d.PriceByDish)),
		SurchargePct:    d.SurchargePct,
		FranchiseFeePct: d.FranchiseFeePct,
	}
	for dish, qty := range d.QtyByDish {
		out.QtyByDish[dish] = qty
	}
	for dish, price := range d.PriceByDish {
		out.PriceByDish[dish] = copyDecimal(price)
	}
	return out
}

// ConsumptionEntry aggregates ingredient usage over a day, keyed by article
// name and recipe unit.
type ConsumptionEntry struct {
	Name     string          `json:"name"`
	Unit     RecipeUnit      `json:"unit"`
	Quantity decimal.Decimal `json:"quantity"`
	Cost     decimal.Decimal `json:"cost"`
}

// DaySummary is the derived rollup for one day.
type DaySummary struct {
	Revenue         decimal.Decimal `json:"revenue"`
	RevenueAdjusted decimal.Decimal `json:"revenueAdjusted"`
	FranchiseFee    decimal.Decimal `json:"franchiseFee"`
	TotalCost       decimal.Decimal `json:"totalCost"`
	NetMargin       decimal.Decimal `json:"netMargin"`

	// NetMarginPct is nil when adjusted revenue is zero.
	NetMarginPct *decimal.Decimal `json:"netMarginPct,omitempty"`

	// MissingPriceDishes lists sold dishes whose revenue is unknown because
	// no price could be resolved for them.
	MissingPriceDishes []string `json:"missingPriceDishes,omitempty"`

	Consumption []ConsumptionEntry `json:"consumption"`
}
