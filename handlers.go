package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/gastrocost_backend/config"
	"bitbucket.org/mmdatafocus/gastrocost_backend/models"
	"bitbucket.org/mmdatafocus/gastrocost_backend/utils"
	"bitbucket.org/mmdatafocus/gastrocost_backend/workflow"
)

func registerRoutes(r *gin.Engine, a *app) {
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	api := r.Group("/api")
	api.POST("/import", a.handleImport)
	api.GET("/state", a.handleState)
	api.GET("/export", a.handleExport)
	api.POST("/inventory", a.handleAddInventory)
	api.POST("/recipes/line", a.handleAddRecipeLine)
	api.POST("/dishes/:dish/prices", a.handleSetDishPrices)
	api.POST("/mapping/:name/correction", a.handleMappingCorrection)
	api.GET("/day", a.handleDaySummary)
	api.POST("/day/rollup", a.handleDayRollup)
	api.POST("/day/reset", a.handleDayReset)
}

func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// handleImport parses an uploaded workbook. mode=replace discards the
// current dataset; mode=merge (the default over existing data) folds the
// import into it, keeping manual corrections.
func (a *app) handleImport(c *gin.Context) {
	logger := config.GetLogger()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		config.LogError(logger, "handlers.go", "handleImport", "FormFile.Open", fileHeader.Filename, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot open upload"})
		return
	}
	defer file.Close()

	fresh, err := workflow.ReadWorkbook(file)
	if err != nil {
		config.LogError(logger, "handlers.go", "handleImport", "ReadWorkbook", fileHeader.Filename, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	mode := strings.ToLower(strings.TrimSpace(c.Query("mode")))

	a.mu.Lock()
	defer a.mu.Unlock()

	if mode != "replace" && len(a.data.Inventory)+len(a.data.Recipes)+len(a.data.Dishes) > 0 {
		fresh = workflow.Merge(a.data, fresh)
	}
	a.replace(fresh)

	c.JSON(http.StatusOK, gin.H{
		"kpi":         workflow.ComputeKPI(a.data),
		"diagnostics": a.diagnostics,
	})
}

func (a *app) handleState(c *gin.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"data":        a.data,
		"diagnostics": a.diagnostics,
		"kpi":         workflow.ComputeKPI(a.data),
		"day":         a.day,
	})
}

func (a *app) handleExport(c *gin.Context) {
	a.mu.Lock()
	data := a.data.Clone()
	a.mu.Unlock()

	f, err := workflow.WriteWorkbook(data)
	if err != nil {
		config.LogError(config.GetLogger(), "handlers.go", "handleExport", "WriteWorkbook", nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	filename := "gastrocost-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := f.Write(c.Writer); err != nil {
		config.LogError(config.GetLogger(), "handlers.go", "handleExport", "Write", nil, err)
	}
}

type addInventoryPayload struct {
	Name                 string           `json:"name" binding:"required"`
	Group                string           `json:"group"`
	PurchasePrice        *decimal.Decimal `json:"purchasePrice"`
	PurchaseUnit         string           `json:"purchaseUnit"`
	TargetUnit           string           `json:"targetUnit"`
	PackageContentTarget *decimal.Decimal `json:"packageContentTarget"`
}

func (a *app) handleAddInventory(c *gin.Context) {
	var payload addInventoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	item := models.InventoryItem{
		Name:                 strings.TrimSpace(payload.Name),
		Group:                strings.TrimSpace(payload.Group),
		PurchasePrice:        payload.PurchasePrice,
		PurchaseUnit:         strings.TrimSpace(payload.PurchaseUnit),
		PackageContentTarget: payload.PackageContentTarget,
	}
	if item.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "article name must not be blank"})
		return
	}
	if target, ok := models.ParseTargetUnit(payload.TargetUnit); ok {
		item.TargetUnit = target
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	next := a.data.Clone()
	next.Inventory = append(next.Inventory, item)
	a.replace(next)

	c.JSON(http.StatusOK, gin.H{"data": a.data, "diagnostics": a.diagnostics})
}

type addRecipeLinePayload struct {
	Dish              string           `json:"dish" binding:"required"`
	Ingredient        string           `json:"ingredient" binding:"required"`
	Quantity          *decimal.Decimal `json:"quantity"`
	Unit              string           `json:"unit"`
	SelectedInventory string           `json:"selectedInventory"`
}

// handleAddRecipeLine appends a recipe line and, when the dish is new, a
// bare dish row alongside it. The mapping row for a new ingredient name is
// created by the recompute bootstrap.
func (a *app) handleAddRecipeLine(c *gin.Context) {
	var payload addRecipeLinePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	line := models.RecipeLine{
		Dish:              strings.TrimSpace(payload.Dish),
		IngredientName:    strings.TrimSpace(payload.Ingredient),
		Quantity:          payload.Quantity,
		SelectedInventory: strings.TrimSpace(payload.SelectedInventory),
	}
	if line.Dish == "" || line.IngredientName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dish and ingredient must not be blank"})
		return
	}
	if unit, ok := models.ParseRecipeUnit(payload.Unit); ok {
		line.Unit = unit
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	next := a.data.Clone()
	next.Recipes = append(next.Recipes, line)
	if _, ok := next.DishByName()[line.Dish]; !ok {
		next.Dishes = append(next.Dishes, models.DishRow{Dish: line.Dish})
	}
	a.replace(next)

	c.JSON(http.StatusOK, gin.H{"data": a.data, "diagnostics": a.diagnostics})
}

type dishPricesPayload struct {
	PriceMaster *decimal.Decimal `json:"priceMaster"`
	PriceMenu   *decimal.Decimal `json:"priceMenu"`
	PriceTest   *decimal.Decimal `json:"priceTest"`
}

// handleSetDishPrices overwrites all three price slots of one dish; a nil
// slot clears the price.
func (a *app) handleSetDishPrices(c *gin.Context) {
	dishName := strings.TrimSpace(c.Param("dish"))

	var payload dishPricesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	next := a.data.Clone()
	dish, ok := next.DishByName()[dishName]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown dish: " + dishName})
		return
	}
	dish.PriceMaster = payload.PriceMaster
	dish.PriceMenu = payload.PriceMenu
	dish.PriceTest = payload.PriceTest
	a.replace(next)

	c.JSON(http.StatusOK, gin.H{"data": a.data, "diagnostics": a.diagnostics})
}

type mappingCorrectionPayload struct {
	Correction string `json:"correction"`
}

// handleMappingCorrection pins the article for one recipe ingredient name.
// The per-line selection is stamped on every line using the name, matching
// what a reviewer sees on the mapping screen. An empty correction reopens
// the review.
func (a *app) handleMappingCorrection(c *gin.Context) {
	recipeName := strings.TrimSpace(c.Param("name"))

	var payload mappingCorrectionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	correction := strings.TrimSpace(payload.Correction)

	a.mu.Lock()
	defer a.mu.Unlock()

	next := a.data.Clone()
	row, ok := next.MappingByRecipeName()[recipeName]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown recipe ingredient: " + recipeName})
		return
	}
	row.Correction = correction
	for i := range next.Recipes {
		if next.Recipes[i].IngredientName == recipeName {
			next.Recipes[i].SelectedInventory = correction
		}
	}
	a.replace(next)

	c.JSON(http.StatusOK, gin.H{"data": a.data, "diagnostics": a.diagnostics})
}

func (a *app) handleDaySummary(c *gin.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"day":     a.day,
		"summary": workflow.Rollup(a.data, a.day),
	})
}

type dayRollupPayload struct {
	QtyByDish       map[string]int              `json:"qtyByDish"`
	PriceByDish     map[string]*decimal.Decimal `json:"priceByDish"`
	SurchargePct    *decimal.Decimal            `json:"surchargePct"`
	FranchiseFeePct *decimal.Decimal            `json:"franchiseFeePct"`
}

// handleDayRollup updates the day input and returns the recomputed summary.
// Negative quantities are floored at zero, percentages clamped to [0,100].
func (a *app) handleDayRollup(c *gin.Context) {
	var payload dayRollupPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	day := a.day.Clone()
	for dish, qty := range payload.QtyByDish {
		if qty < 0 {
			qty = 0
		}
		day.QtyByDish[dish] = qty
	}
	for dish, price := range payload.PriceByDish {
		if price == nil {
			delete(day.PriceByDish, dish)
			continue
		}
		day.PriceByDish[dish] = price
	}
	if payload.SurchargePct != nil {
		day.SurchargePct = workflow.ClampPct(*payload.SurchargePct)
	}
	if payload.FranchiseFeePct != nil {
		day.FranchiseFeePct = workflow.ClampPct(*payload.FranchiseFeePct)
	}
	a.day = day
	a.persist()

	c.JSON(http.StatusOK, gin.H{
		"day":     a.day,
		"summary": workflow.Rollup(a.data, a.day),
	})
}

func (a *app) handleDayReset(c *gin.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.day = models.NewDayState()
	a.persist()

	c.JSON(http.StatusOK, gin.H{"day": a.day})
}
