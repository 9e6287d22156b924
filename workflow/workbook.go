package workflow

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"bitbucket.org/mmdatafocus/gastrocost_backend/models"
)

// Sheet names follow the operator's original data package.
const (
	SheetInventory = "INVENTUR_INPUT"
	SheetMapping   = "MAP_ZUTATEN"
	SheetRecipes   = "REZEPTE_BASIS"
	SheetDishes    = "GERICHTE"
)

// ReadWorkbook parses an xlsx stream into the normalized dataset. Missing
// sheets yield empty collections, not errors; only an unreadable file fails.
func ReadWorkbook(r io.Reader) (models.AppData, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return models.AppData{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	inventory, err := sheetRows(f, SheetInventory)
	if err != nil {
		return models.AppData{}, err
	}
	mapping, err := sheetRows(f, SheetMapping)
	if err != nil {
		return models.AppData{}, err
	}
	recipes, err := sheetRows(f, SheetRecipes)
	if err != nil {
		return models.AppData{}, err
	}
	dishes, err := sheetRows(f, SheetDishes)
	if err != nil {
		return models.AppData{}, err
	}

	return Normalize(inventory, mapping, recipes, dishes), nil
}

// sheetRows reads one sheet into labeled rows, using the first row as the
// header. A sheet that does not exist is treated as empty.
func sheetRows(f *excelize.File, sheet string) ([]RawRow, error) {
	exists := false
	for _, name := range f.GetSheetList() {
		if name == sheet {
			exists = true
			break
		}
	}
	if !exists {
		return nil, nil
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := rows[0]
	out := make([]RawRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(RawRow, len(header))
		for i, label := range header {
			if i < len(cells) {
				row[label] = cells[i]
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// WriteWorkbook serializes the dataset back into the import sheet layout,
// derived columns included, so re-importing an unmodified export reproduces
// the same diagnostics.
func WriteWorkbook(data models.AppData) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeSheet(f, SheetInventory,
		[]string{"Zutat", "Warengruppe", "EK (wie Inventur)", "Einheit (Inventur)", "Packung (roh)", "Zieleinheit", "Packung (Ziel)", "EK pro Basiseinheit", "STATUS"},
		len(data.Inventory), func(i int) []string {
			item := data.Inventory[i]
			status := ""
			for j, code := range item.StatusFlags {
				if j > 0 {
					status += ","
				}
				status += string(code)
			}
			return []string{
				item.Name,
				item.Group,
				decimalCell(item.PurchasePrice),
				item.PurchaseUnit,
				decimalCell(item.PackageContent),
				string(item.TargetUnit),
				decimalCell(item.PackageContentTarget),
				decimalCell(item.PricePerBaseUnit),
				status,
			}
		}); err != nil {
		return nil, err
	}

	if err := writeSheet(f, SheetMapping,
		[]string{"Zutat im Rezept", "Vorschlag Inventur-Zutat", "Inventur-Zutat (Korrektur)", "Status"},
		len(data.Mapping), func(i int) []string {
			m := data.Mapping[i]
			return []string{m.RecipeName, m.Suggestion, m.Correction, string(m.Status)}
		}); err != nil {
		return nil, err
	}

	if err := writeSheet(f, SheetRecipes,
		[]string{"Gericht", "Zutat (Rezept)", "Menge", "Einheit (g/ml/stk)", "Inventur-Zutat (gewählt)", "Inventur-Zutat (gemappt)", "EK aus Inventur (Base)", "Kosten", "STATUS"},
		len(data.Recipes), func(i int) []string {
			line := data.Recipes[i]
			return []string{
				line.Dish,
				line.IngredientName,
				decimalCell(line.Quantity),
				string(line.Unit),
				line.SelectedInventory,
				line.ResolvedInventoryName,
				decimalCell(line.UnitCost),
				decimalCell(line.LineCost),
				string(line.Diagnostic),
			}
		}); err != nil {
		return nil, err
	}

	if err := writeSheet(f, SheetDishes,
		[]string{"Gericht", "Preis (Master)", "Preis (Speisekarte)", "Preis (Test)", "Wareneinsatz (aus Rezept)", "DB € (Test)", "DB % (Test)", "STATUS"},
		len(data.Dishes), func(i int) []string {
			dish := data.Dishes[i]
			return []string{
				dish.Dish,
				decimalCell(dish.PriceMaster),
				decimalCell(dish.PriceMenu),
				decimalCell(dish.PriceTest),
				decimalCell(dish.CostOfGoods),
				decimalCell(dish.Margin),
				decimalCell(dish.MarginPct),
				string(dish.Diagnostic),
			}
		}); err != nil {
		return nil, err
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows int, cells func(i int) []string) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	for col, label := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, label); err != nil {
			return err
		}
	}
	for i := 0; i < rows; i++ {
		for col, value := range cells(i) {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func decimalCell(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
