package workflow

import (
	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/gastrocost_backend/models"
)

// Recalc is the single recompute pass: it derives per-article base prices,
// bootstraps the mapping table, resolves and costs every recipe line, and
// rolls recipe costs up into dish margins. The input is never mutated; the
// returned dataset is a fresh generation. Running it twice on the same input
// yields identical output, diagnostics included.
//
// The four steps run strictly in order because each consumes the previous
// step's output. Missing data never aborts the pass; every gap becomes a
// diagnostic and an absent derived value.
func Recalc(data models.AppData) (models.AppData, []models.Diagnostic) {
	next := data.Clone()
	var diags []models.Diagnostic

	diags = append(diags, recalcInventory(&next)...)
	bootstrapMapping(&next)
	diags = append(diags, recalcRecipes(&next)...)
	diags = append(diags, recalcDishes(&next)...)

	return next, diags
}

// recalcInventory classifies each article's target dimension and derives its
// price per base unit. An explicit target unit wins over inference from the
// purchase unit.
func recalcInventory(data *models.AppData) []models.Diagnostic {
	var diags []models.Diagnostic
	for i := range data.Inventory {
		item := &data.Inventory[i]
		item.StatusFlags = nil
		item.PricePerBaseUnit = nil

		if item.TargetUnit == "" {
			if target, ok := models.ClassifyPurchaseUnit(item.PurchaseUnit); ok {
				item.TargetUnit = target
			}
		}

		if item.PurchasePrice == nil {
			item.StatusFlags = append(item.StatusFlags, models.CodeMissingPurchasePrice)
			diags = append(diags, models.NewInventoryDiagnostic(models.CodeMissingPurchasePrice, item.Name))
		}
		if item.TargetUnit == "" {
			item.StatusFlags = append(item.StatusFlags, models.CodeMissingUnit)
			diags = append(diags, models.NewInventoryDiagnostic(models.CodeMissingUnit, item.Name))
		}
		content := item.EffectivePackageContent()
		if content == nil || content.IsZero() {
			item.StatusFlags = append(item.StatusFlags, models.CodeMissingPackageContent)
			diags = append(diags, models.NewInventoryDiagnostic(models.CodeMissingPackageContent, item.Name))
		}

		if len(item.StatusFlags) == 0 {
			item.PricePerBaseUnit = models.PricePerBase(item.PurchasePrice, content, item.TargetUnit)
		}
	}
	return diags
}

// bootstrapMapping guarantees exactly one mapping row per distinct recipe
// ingredient name, created in first-seen order. Existing rows keep their
// correction untouched; only the derived suggestion is refreshed, and only
// where no correction pins the resolution. Re-running is a no-op.
func bootstrapMapping(data *models.AppData) {
	candidates := make([]string, 0, len(data.Inventory))
	for _, item := range data.Inventory {
		candidates = append(candidates, item.Name)
	}

	existing := data.MappingByRecipeName()
	for _, line := range data.Recipes {
		if _, ok := existing[line.IngredientName]; ok {
			continue
		}
		row := models.MappingRow{
			RecipeName: line.IngredientName,
			Suggestion: Suggest(line.IngredientName, candidates),
			Status:     models.MappingStatusNeedsReview,
		}
		data.Mapping = append(data.Mapping, row)
		existing[line.IngredientName] = &data.Mapping[len(data.Mapping)-1]
	}

	for i := range data.Mapping {
		row := &data.Mapping[i]
		if row.Correction != "" {
			row.Status = models.MappingStatusResolved
			continue
		}
		row.Status = models.MappingStatusNeedsReview
		if row.Suggestion == "" {
			row.Suggestion = Suggest(row.RecipeName, candidates)
		}
	}
}

// recalcRecipes resolves each line to an inventory article and prices it.
// Checks run in a fixed order (quantity, mapping, article price, unit fit)
// and the first failure wins; cost fields are cleared, never left stale.
func recalcRecipes(data *models.AppData) []models.Diagnostic {
	var diags []models.Diagnostic
	invByName := data.InventoryByName()
	mapByName := data.MappingByRecipeName()

	for i := range data.Recipes {
		line := &data.Recipes[i]
		line.UnitCost = nil
		line.LineCost = nil
		line.Diagnostic = models.CodeOK

		line.ResolvedInventoryName = line.SelectedInventory
		if line.ResolvedInventoryName == "" {
			if m, ok := mapByName[line.IngredientName]; ok {
				line.ResolvedInventoryName = m.Resolved()
			}
		}

		if line.Quantity == nil || !line.Quantity.IsPositive() {
			line.Diagnostic = models.CodeMissingQuantity
			diags = append(diags, models.NewRecipeDiagnostic(models.CodeMissingQuantity, line.Dish, line.IngredientName))
			continue
		}

		if line.ResolvedInventoryName == "" {
			line.Diagnostic = models.CodeMissingMapping
			diags = append(diags, models.NewRecipeDiagnostic(models.CodeMissingMapping, line.Dish, line.IngredientName))
			continue
		}

		item, ok := invByName[line.ResolvedInventoryName]
		if !ok || item.PricePerBaseUnit == nil {
			line.Diagnostic = models.CodeMissingPurchasePrice
			diags = append(diags, models.NewRecipeDiagnostic(models.CodeMissingPurchasePrice, line.Dish, line.ResolvedInventoryName))
			continue
		}

		wantUnit, _ := models.RecipeUnitFor(item.TargetUnit)
		if line.Unit != wantUnit {
			line.Diagnostic = models.CodeUnitMismatch
			diags = append(diags, models.UnitMismatchDiagnostic(line.Dish, line.IngredientName, wantUnit))
			continue
		}

		unitCost := *item.PricePerBaseUnit
		lineCost := line.Quantity.Mul(unitCost)
		line.UnitCost = &unitCost
		line.LineCost = &lineCost
	}
	return diags
}

// recalcDishes sums resolvable line costs per dish and derives margins. A
// dish whose lines all failed to price keeps an absent cost of goods, never
// a silent zero.
func recalcDishes(data *models.AppData) []models.Diagnostic {
	var diags []models.Diagnostic

	linesByDish := make(map[string][]*models.RecipeLine, len(data.Dishes))
	for i := range data.Recipes {
		line := &data.Recipes[i]
		linesByDish[line.Dish] = append(linesByDish[line.Dish], line)
	}

	for i := range data.Dishes {
		dish := &data.Dishes[i]
		dish.CostOfGoods = nil
		dish.Margin = nil
		dish.MarginPct = nil
		dish.Diagnostic = models.CodeOK

		cogs := decimal.Zero
		priced := 0
		for _, line := range linesByDish[dish.Dish] {
			if line.LineCost == nil {
				continue
			}
			cogs = cogs.Add(*line.LineCost)
			priced++
		}
		if priced > 0 {
			dish.CostOfGoods = &cogs
		}

		price := dish.EffectivePrice()
		if price == nil || !price.IsPositive() {
			dish.Diagnostic = models.CodeMissingDishPrice
			diags = append(diags, models.NewDishDiagnostic(models.CodeMissingDishPrice, dish.Dish))
			continue
		}

		if dish.CostOfGoods == nil {
			dish.Diagnostic = models.CodeMissingRecipe
			diags = append(diags, models.NewDishDiagnostic(models.CodeMissingRecipe, dish.Dish))
			continue
		}

		margin := price.Sub(*dish.CostOfGoods)
		marginPct := margin.Div(*price)
		dish.Margin = &margin
		dish.MarginPct = &marginPct
	}
	return diags
}
