package models

import "github.com/shopspring/decimal"

// AppData is the whole working dataset: the four collections the engine
// recomputes as a unit. Collection order is load order and is preserved by
// every operation.
type AppData struct {
	Inventory []InventoryItem `json:"inventory"`
	Mapping   []MappingRow    `json:"mapping"`
	Recipes   []RecipeLine    `json:"recipes"`
	Dishes    []DishRow       `json:"dishes"`
}

// Clone deep-copies the dataset so mutations on the copy never leak into the
// original. Recompute always works on a clone.
func (a *AppData) Clone() AppData {
	out := AppData{
		Inventory: make([]InventoryItem, len(a.Inventory)),
		Mapping:   make([]MappingRow, len(a.Mapping)),
		Recipes:   make([]RecipeLine, len(a.Recipes)),
		Dishes:    make([]DishRow, len(a.Dishes)),
	}
	for i, item := range a.Inventory {
		out.Inventory[i] = item.clone()
	}
	copy(out.Mapping, a.Mapping)
	for i, line := range a.Recipes {
		out.Recipes[i] = line.clone()
	}
	for i, dish := range a.Dishes {
		out.Dishes[i] = dish.clone()
	}
	return out
}

// InventoryByName indexes articles by exact name. First occurrence wins when
// an import carries duplicates.
func (a *AppData) InventoryByName() map[string]*InventoryItem {
	idx := make(map[string]*InventoryItem, len(a.Inventory))
	for i := range a.Inventory {
		item := &a.Inventory[i]
		if _, ok := idx[item.Name]; !ok {
			idx[item.Name] = item
		}
	}
	return idx
}

// MappingByRecipeName indexes mapping rows by recipe ingredient name.
func (a *AppData) MappingByRecipeName() map[string]*MappingRow {
	idx := make(map[string]*MappingRow, len(a.Mapping))
	for i := range a.Mapping {
		row := &a.Mapping[i]
		if _, ok := idx[row.RecipeName]; !ok {
			idx[row.RecipeName] = row
		}
	}
	return idx
}

// DishByName indexes dish rows by dish name.
func (a *AppData) DishByName() map[string]*DishRow {
	idx := make(map[string]*DishRow, len(a.Dishes))
	for i := range a.Dishes {
		row := &a.Dishes[i]
		if _, ok := idx[row.Dish]; !ok {
			idx[row.Dish] = row
		}
	}
	return idx
}

func copyDecimal(p *decimal.Decimal) *decimal.Decimal {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
