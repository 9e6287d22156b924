package workflow

import (
	"sort"

	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/gastrocost_backend/models"
)

var oneHundred = decimal.NewFromInt(100)

// ClampPct limits a percentage knob to [0,100].
func ClampPct(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(oneHundred) {
		return oneHundred
	}
	return v
}

// Rollup aggregates one trading day over a recomputed dataset: revenue from
// sold quantities, cost of goods, the two percentage adjustments, and the
// projected ingredient consumption.
//
// A sold dish without any resolvable price contributes no revenue; it is
// recorded in MissingPriceDishes rather than counted as zero, so the caller
// can tell "free" from "unknown". The surcharge inflates revenue before the
// franchise fee is deducted from the adjusted figure.
func Rollup(data models.AppData, day models.DayState) models.DaySummary {
	surcharge := ClampPct(day.SurchargePct).Div(oneHundred)
	franchise := ClampPct(day.FranchiseFeePct).Div(oneHundred)

	invByName := data.InventoryByName()
	mapByName := data.MappingByRecipeName()

	linesByDish := make(map[string][]*models.RecipeLine)
	for i := range data.Recipes {
		line := &data.Recipes[i]
		linesByDish[line.Dish] = append(linesByDish[line.Dish], line)
	}

	summary := models.DaySummary{Consumption: []models.ConsumptionEntry{}}
	consumption := make(map[string]*models.ConsumptionEntry)

	for i := range data.Dishes {
		dish := &data.Dishes[i]
		qtySold := day.QtyByDish[dish.Dish]
		if qtySold <= 0 {
			continue
		}
		soldQty := decimal.NewFromInt(int64(qtySold))

		price := dish.EffectivePrice()
		if override, ok := day.PriceByDish[dish.Dish]; ok && override != nil {
			price = override
		}
		if price != nil {
			summary.Revenue = summary.Revenue.Add(price.Mul(soldQty))
		} else {
			summary.MissingPriceDishes = append(summary.MissingPriceDishes, dish.Dish)
		}

		if dish.CostOfGoods != nil {
			summary.TotalCost = summary.TotalCost.Add(dish.CostOfGoods.Mul(soldQty))
		}

		for _, line := range linesByDish[dish.Dish] {
			if line.Quantity == nil || line.Unit == "" {
				continue
			}
			chosen := line.SelectedInventory
			if chosen == "" {
				if m, ok := mapByName[line.IngredientName]; ok {
					chosen = m.Resolved()
				}
			}
			if chosen == "" {
				continue
			}

			consumedQty := line.Quantity.Mul(soldQty)
			key := chosen + "__" + string(line.Unit)
			entry, ok := consumption[key]
			if !ok {
				entry = &models.ConsumptionEntry{Name: chosen, Unit: line.Unit}
				consumption[key] = entry
			}
			entry.Quantity = entry.Quantity.Add(consumedQty)
			if item, ok := invByName[chosen]; ok && item.PricePerBaseUnit != nil {
				entry.Cost = entry.Cost.Add(consumedQty.Mul(*item.PricePerBaseUnit))
			}
		}
	}

	summary.RevenueAdjusted = summary.Revenue.Mul(decimal.NewFromInt(1).Add(surcharge))
	summary.FranchiseFee = summary.RevenueAdjusted.Mul(franchise)
	summary.NetMargin = summary.RevenueAdjusted.Sub(summary.FranchiseFee).Sub(summary.TotalCost)
	if summary.RevenueAdjusted.IsPositive() {
		pct := summary.NetMargin.Div(summary.RevenueAdjusted)
		summary.NetMarginPct = &pct
	}

	for _, entry := range consumption {
		summary.Consumption = append(summary.Consumption, *entry)
	}
	sort.Slice(summary.Consumption, func(i, j int) bool {
		a, b := summary.Consumption[i], summary.Consumption[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Unit < b.Unit
	})

	return summary
}
