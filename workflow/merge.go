package workflow

import (
	"bitbucket.org/mmdatafocus/gastrocost_backend/models"
)

type recipeKey struct {
	dish       string
	ingredient string
}

// Merge folds a freshly imported dataset into the previously edited state.
// It runs before recompute; a first import or explicit reset replaces state
// wholesale and skips the merge.
//
// Per collection, keyed by natural identity: structural fields from the
// fresh import win, user-edited fields from the previous state are carried
// over, and entities present only in the previous state (manual additions,
// or rows dropped from the new source) are appended unchanged. Merging a
// state with itself changes nothing.
func Merge(previous, fresh models.AppData) models.AppData {
	merged := fresh.Clone()
	prev := previous.Clone()

	mergeInventory(&merged, &prev)
	mergeMapping(&merged, &prev)
	mergeRecipes(&merged, &prev)
	mergeDishes(&merged, &prev)

	return merged
}

// Inventory has no user-edited field that outranks the invoice, so fresh
// rows win wholesale; only manual additions survive from the previous state.
func mergeInventory(merged, prev *models.AppData) {
	seen := make(map[string]bool, len(merged.Inventory))
	for _, item := range merged.Inventory {
		seen[item.Name] = true
	}
	for _, item := range prev.Inventory {
		if !seen[item.Name] {
			merged.Inventory = append(merged.Inventory, item)
		}
	}
}

func mergeMapping(merged, prev *models.AppData) {
	prevByName := prev.MappingByRecipeName()
	seen := make(map[string]bool, len(merged.Mapping))
	for i := range merged.Mapping {
		row := &merged.Mapping[i]
		seen[row.RecipeName] = true
		if old, ok := prevByName[row.RecipeName]; ok && old.Correction != "" {
			row.Correction = old.Correction
		}
	}
	for _, row := range prev.Mapping {
		if !seen[row.RecipeName] {
			merged.Mapping = append(merged.Mapping, row)
		}
	}
}

func mergeRecipes(merged, prev *models.AppData) {
	prevByKey := make(map[recipeKey]*models.RecipeLine, len(prev.Recipes))
	for i := range prev.Recipes {
		line := &prev.Recipes[i]
		key := recipeKey{line.Dish, line.IngredientName}
		if _, ok := prevByKey[key]; !ok {
			prevByKey[key] = line
		}
	}

	seen := make(map[recipeKey]bool, len(merged.Recipes))
	for i := range merged.Recipes {
		line := &merged.Recipes[i]
		key := recipeKey{line.Dish, line.IngredientName}
		seen[key] = true
		old, ok := prevByKey[key]
		if !ok {
			continue
		}
		if old.Quantity != nil {
			line.Quantity = old.Quantity
		}
		if old.Unit != "" {
			line.Unit = old.Unit
		}
		if old.SelectedInventory != "" {
			line.SelectedInventory = old.SelectedInventory
		}
	}
	for _, line := range prev.Recipes {
		if !seen[recipeKey{line.Dish, line.IngredientName}] {
			merged.Recipes = append(merged.Recipes, line)
		}
	}
}

// Dish prices deliberately come from the fresh import; a new price list is
// exactly what a re-import is for.
func mergeDishes(merged, prev *models.AppData) {
	seen := make(map[string]bool, len(merged.Dishes))
	for _, dish := range merged.Dishes {
		seen[dish.Dish] = true
	}
	for _, dish := range prev.Dishes {
		if !seen[dish.Dish] {
			merged.Dishes = append(merged.Dishes, dish)
		}
	}
}
