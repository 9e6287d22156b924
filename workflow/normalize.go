package workflow

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/gastrocost_backend/config"
	"bitbucket.org/mmdatafocus/gastrocost_backend/models"
	"bitbucket.org/mmdatafocus/gastrocost_backend/utils"
)

// RawRow is one spreadsheet row as the reader hands it over: column label to
// raw cell text. Cells arrive untrimmed and may use comma decimals.
type RawRow map[string]string

// Column synonyms, ordered by preference; the first present key wins. The
// lists cover both the legacy input sheets and this system's own exports.
var (
	inventoryNameKeys       = []string{"Zutat"}
	inventoryGroupKeys      = []string{"Warengruppe", "Gruppe"}
	inventoryPriceKeys      = []string{"EK (wie Inventur)", "EK", "EK (wie auf Rechnung)"}
	inventoryUnitKeys       = []string{"Einheit (Inventur)", "Einheit"}
	inventoryPackRawKeys    = []string{"Packung (roh)", "Packungsinhalt"}
	inventoryTargetUnitKeys = []string{"Zieleinheit"}
	inventoryPackTargetKeys = []string{"Packung (Ziel)", "Packinhalt (Ziel)"}

	mappingRecipeNameKeys = []string{"Zutat im Rezept", "Zutat (Rezept)", "Zutat"}
	mappingSuggestionKeys = []string{"Vorschlag Inventur-Zutat", "Vorschlag"}
	mappingCorrectionKeys = []string{"Inventur-Zutat (Korrektur)", "Inventur-Zutat (falls korrigieren)"}

	recipeDishKeys       = []string{"Gericht"}
	recipeIngredientKeys = []string{"Zutat (Rezept)", "Zutat"}
	recipeQuantityKeys   = []string{"Menge"}
	recipeUnitKeys       = []string{"Einheit (g/ml/stk)", "Einheit"}
	recipeSelectedKeys   = []string{"Inventur-Zutat (gewählt)"}

	dishNameKeys        = []string{"Gericht"}
	dishPriceMasterKeys = []string{"Preis (Master)"}
	dishPriceMenuKeys   = []string{"Preis (Speisekarte)"}
	dishPriceTestKeys   = []string{"Preis (Test)"}
)

func cellString(row RawRow, keys []string) string {
	for _, key := range keys {
		if v, ok := row[key]; ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

func cellDecimal(row RawRow, keys []string) *decimal.Decimal {
	for _, key := range keys {
		if v, ok := row[key]; ok {
			if dec := utils.ToDecimal(v); dec != nil {
				return dec
			}
		}
	}
	return nil
}

func logDroppedRow(logger *logrus.Logger, sheet string, rowIndex int) {
	logger.WithFields(logrus.Fields{
		"module": "normalize",
		"sheet":  sheet,
		"row":    rowIndex,
	}).Warn("dropping row without identity key")
}

// NormalizeInventory converts raw article rows into typed items. Rows with a
// blank name are dropped with a logged note, never a hard failure.
func NormalizeInventory(rows []RawRow) []models.InventoryItem {
	logger := config.GetLogger()
	items := make([]models.InventoryItem, 0, len(rows))
	for i, row := range rows {
		name := cellString(row, inventoryNameKeys)
		if name == "" {
			logDroppedRow(logger, "inventory", i)
			continue
		}
		item := models.InventoryItem{
			Name:                 name,
			Group:                cellString(row, inventoryGroupKeys),
			PurchasePrice:        cellDecimal(row, inventoryPriceKeys),
			PurchaseUnit:         cellString(row, inventoryUnitKeys),
			PackageContent:       cellDecimal(row, inventoryPackRawKeys),
			PackageContentTarget: cellDecimal(row, inventoryPackTargetKeys),
		}
		if target, ok := models.ParseTargetUnit(cellString(row, inventoryTargetUnitKeys)); ok {
			item.TargetUnit = target
		}
		items = append(items, item)
	}
	return items
}

// NormalizeMapping converts raw mapping rows. Derived suggestion columns are
// read back so an exported sheet re-imports without losing review context;
// recompute only fills suggestions in where the column came back empty.
func NormalizeMapping(rows []RawRow) []models.MappingRow {
	logger := config.GetLogger()
	mapping := make([]models.MappingRow, 0, len(rows))
	for i, row := range rows {
		recipeName := cellString(row, mappingRecipeNameKeys)
		if recipeName == "" {
			logDroppedRow(logger, "mapping", i)
			continue
		}
		m := models.MappingRow{
			RecipeName: recipeName,
			Suggestion: cellString(row, mappingSuggestionKeys),
			Correction: cellString(row, mappingCorrectionKeys),
			Status:     models.MappingStatusNeedsReview,
		}
		if m.Correction != "" {
			m.Status = models.MappingStatusResolved
		}
		mapping = append(mapping, m)
	}
	return mapping
}

// NormalizeRecipes converts raw recipe rows. Both identity parts must be
// present; anything derived (resolved article, costs) is ignored on import.
func NormalizeRecipes(rows []RawRow) []models.RecipeLine {
	logger := config.GetLogger()
	lines := make([]models.RecipeLine, 0, len(rows))
	for i, row := range rows {
		dish := cellString(row, recipeDishKeys)
		ingredient := cellString(row, recipeIngredientKeys)
		if dish == "" || ingredient == "" {
			logDroppedRow(logger, "recipes", i)
			continue
		}
		line := models.RecipeLine{
			Dish:              dish,
			IngredientName:    ingredient,
			Quantity:          cellDecimal(row, recipeQuantityKeys),
			SelectedInventory: cellString(row, recipeSelectedKeys),
		}
		if unit, ok := models.ParseRecipeUnit(cellString(row, recipeUnitKeys)); ok {
			line.Unit = unit
		}
		lines = append(lines, line)
	}
	return lines
}

// NormalizeDishes converts raw dish rows.
func NormalizeDishes(rows []RawRow) []models.DishRow {
	logger := config.GetLogger()
	dishes := make([]models.DishRow, 0, len(rows))
	for i, row := range rows {
		name := cellString(row, dishNameKeys)
		if name == "" {
			logDroppedRow(logger, "dishes", i)
			continue
		}
		dishes = append(dishes, models.DishRow{
			Dish:        name,
			PriceMaster: cellDecimal(row, dishPriceMasterKeys),
			PriceMenu:   cellDecimal(row, dishPriceMenuKeys),
			PriceTest:   cellDecimal(row, dishPriceTestKeys),
		})
	}
	return dishes
}

// Normalize builds the full dataset from the four raw sheets.
func Normalize(inventory, mapping, recipes, dishes []RawRow) models.AppData {
	return models.AppData{
		Inventory: NormalizeInventory(inventory),
		Mapping:   NormalizeMapping(mapping),
		Recipes:   NormalizeRecipes(recipes),
		Dishes:    NormalizeDishes(dishes),
	}
}
