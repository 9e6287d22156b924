package workflow

import (
	"testing"

	"bitbucket.org/mmdatafocus/gastrocost_backend/models"
)

func TestRollupCurrywurstDay(t *testing.T) {
	data := models.AppData{
		Dishes: []models.DishRow{
			{Dish: "Currywurst", PriceTest: decPtr(t, "8.50"), CostOfGoods: decPtr(t, "2.00")},
		},
	}
	day := models.NewDayState()
	day.QtyByDish["Currywurst"] = 10
	day.SurchargePct = dec(t, "5")
	day.FranchiseFeePct = dec(t, "8")

	sum := Rollup(data, day)

	if !sum.Revenue.Equal(dec(t, "85.00")) {
		t.Fatalf("revenue = %s, want 85.00", sum.Revenue)
	}
	if !sum.RevenueAdjusted.Equal(dec(t, "89.25")) {
		t.Fatalf("adjusted revenue = %s, want 89.25", sum.RevenueAdjusted)
	}
	if !sum.FranchiseFee.Equal(dec(t, "7.14")) {
		t.Fatalf("fee = %s, want 7.14", sum.FranchiseFee)
	}
	if !sum.TotalCost.Equal(dec(t, "20.00")) {
		t.Fatalf("total cost = %s, want 20.00", sum.TotalCost)
	}
	if !sum.NetMargin.Equal(dec(t, "62.11")) {
		t.Fatalf("net margin = %s, want 62.11", sum.NetMargin)
	}
	if sum.NetMarginPct == nil {
		t.Fatal("net margin pct missing")
	}
	if sum.NetMarginPct.Sub(dec(t, "0.6959")).Abs().GreaterThan(dec(t, "0.001")) {
		t.Fatalf("net margin pct = %s, want about 0.6959", sum.NetMarginPct)
	}
}

func TestRollupClampsPercentages(t *testing.T) {
	if !ClampPct(dec(t, "-5")).Equal(dec(t, "0")) {
		t.Fatal("negative percentage must clamp to 0")
	}
	if !ClampPct(dec(t, "150")).Equal(dec(t, "100")) {
		t.Fatal("oversized percentage must clamp to 100")
	}
	if !ClampPct(dec(t, "42.5")).Equal(dec(t, "42.5")) {
		t.Fatal("in-range percentage must pass through")
	}
}

// A sold dish without any price is unknown revenue, not zero revenue.
func TestRollupTracksUnknownRevenue(t *testing.T) {
	data := models.AppData{
		Dishes: []models.DishRow{
			{Dish: "Tagesgericht", CostOfGoods: decPtr(t, "1.50")},
			{Dish: "Currywurst", PriceMenu: decPtr(t, "8.50")},
		},
	}
	day := models.NewDayState()
	day.QtyByDish["Tagesgericht"] = 3
	day.QtyByDish["Currywurst"] = 2

	sum := Rollup(data, day)

	if !sum.Revenue.Equal(dec(t, "17.00")) {
		t.Fatalf("revenue = %s, want only the priced dish", sum.Revenue)
	}
	if len(sum.MissingPriceDishes) != 1 || sum.MissingPriceDishes[0] != "Tagesgericht" {
		t.Fatalf("missing-price dishes = %v", sum.MissingPriceDishes)
	}
	if !sum.TotalCost.Equal(dec(t, "4.50")) {
		t.Fatalf("cost still counts for unpriced dishes: %s", sum.TotalCost)
	}
}

func TestRollupPriceOverride(t *testing.T) {
	data := models.AppData{
		Dishes: []models.DishRow{{Dish: "Currywurst", PriceMenu: decPtr(t, "8.50")}},
	}
	day := models.NewDayState()
	day.QtyByDish["Currywurst"] = 4
	day.PriceByDish["Currywurst"] = decPtr(t, "7.00")

	sum := Rollup(data, day)
	if !sum.Revenue.Equal(dec(t, "28.00")) {
		t.Fatalf("override not applied: %s", sum.Revenue)
	}
}

func TestRollupConsumptionAggregation(t *testing.T) {
	data, _ := Recalc(models.AppData{
		Inventory: []models.InventoryItem{
			{Name: "Pommes frites TK", PurchasePrice: decPtr(t, "10"), PurchaseUnit: "kg", PackageContentTarget: decPtr(t, "10")},
			{Name: "Curry Ketchup", PurchasePrice: decPtr(t, "4"), PurchaseUnit: "l", PackageContentTarget: decPtr(t, "1")},
		},
		Mapping: []models.MappingRow{
			{RecipeName: "Pommes", Correction: "Pommes frites TK"},
			{RecipeName: "Ketchup", Correction: "Curry Ketchup"},
		},
		Recipes: []models.RecipeLine{
			{Dish: "Pommes rot-weiß", IngredientName: "Pommes", Quantity: decPtr(t, "150"), Unit: models.RecipeUnitGram},
			{Dish: "Pommes rot-weiß", IngredientName: "Ketchup", Quantity: decPtr(t, "30"), Unit: models.RecipeUnitMillilitre},
			{Dish: "Currywurst", IngredientName: "Ketchup", Quantity: decPtr(t, "50"), Unit: models.RecipeUnitMillilitre},
		},
		Dishes: []models.DishRow{
			{Dish: "Pommes rot-weiß", PriceMenu: decPtr(t, "4.50")},
			{Dish: "Currywurst", PriceMenu: decPtr(t, "8.50")},
		},
	})

	day := models.NewDayState()
	day.QtyByDish["Pommes rot-weiß"] = 10
	day.QtyByDish["Currywurst"] = 4

	sum := Rollup(data, day)

	if len(sum.Consumption) != 2 {
		t.Fatalf("consumption entries = %+v", sum.Consumption)
	}
	// sorted by article name
	ketchup, pommes := sum.Consumption[0], sum.Consumption[1]
	if ketchup.Name != "Curry Ketchup" || pommes.Name != "Pommes frites TK" {
		t.Fatalf("consumption not sorted by name: %+v", sum.Consumption)
	}

	// 10 * 30ml + 4 * 50ml
	if !ketchup.Quantity.Equal(dec(t, "500")) {
		t.Fatalf("ketchup consumption = %s, want 500", ketchup.Quantity)
	}
	// 500ml * 0.004/ml
	if !ketchup.Cost.Equal(dec(t, "2")) {
		t.Fatalf("ketchup cost = %s, want 2", ketchup.Cost)
	}
	if !pommes.Quantity.Equal(dec(t, "1500")) {
		t.Fatalf("pommes consumption = %s, want 1500", pommes.Quantity)
	}
	// 1500g * 0.001/g
	if !pommes.Cost.Equal(dec(t, "1.5")) {
		t.Fatalf("pommes cost = %s, want 1.5", pommes.Cost)
	}
}

func TestRollupEmptyDay(t *testing.T) {
	data, _ := Recalc(burgerFixture(t))
	sum := Rollup(data, models.NewDayState())

	if !sum.Revenue.IsZero() || !sum.TotalCost.IsZero() {
		t.Fatalf("empty day must be all zero: %+v", sum)
	}
	if sum.NetMarginPct != nil {
		t.Fatalf("zero revenue must leave pct absent: %s", sum.NetMarginPct)
	}
	if len(sum.Consumption) != 0 {
		t.Fatalf("no consumption expected: %+v", sum.Consumption)
	}
}
