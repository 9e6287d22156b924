package workflow

import (
	"bitbucket.org/mmdatafocus/gastrocost_backend/models"
)

// KPI is the headline counter set for the dashboard.
type KPI struct {
	InventoryCount  int `json:"inventoryCount"`
	RecipeLineCount int `json:"recipeLineCount"`
	DishCount       int `json:"dishCount"`
	InventoryIssues int `json:"inventoryIssues"`
	RecipeIssues    int `json:"recipeIssues"`
	DishIssues      int `json:"dishIssues"`
}

// ComputeKPI counts entities and open issues over a recomputed dataset.
func ComputeKPI(data models.AppData) KPI {
	kpi := KPI{
		InventoryCount:  len(data.Inventory),
		RecipeLineCount: len(data.Recipes),
		DishCount:       len(data.Dishes),
	}
	for _, item := range data.Inventory {
		if len(item.StatusFlags) > 0 {
			kpi.InventoryIssues++
		}
	}
	for _, line := range data.Recipes {
		if line.Diagnostic != models.CodeOK && line.Diagnostic != "" {
			kpi.RecipeIssues++
		}
	}
	for _, dish := range data.Dishes {
		if dish.Diagnostic != models.CodeOK && dish.Diagnostic != "" {
			kpi.DishIssues++
		}
	}
	return kpi
}
