package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/domain/models"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/service/analytics"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/service/forecasting"
)

type inventoryItemView struct {
	models.InventoryItem
	StockValueJOD decimal.Decimal    `json:"stock_value_jod"`
	Status        models.StockStatus `json:"status"`
}

type inventoryResponse struct {
	Items           []inventoryItemView              `json:"items"`
	Summary         analytics.InventorySummary       `json:"summary"`
	Costs           analytics.InventoryCostBreakdown `json:"costs"`
	Heatmap         []analytics.HeatmapCell          `json:"heatmap"`
	HealthScore     float64                          `json:"health_score"`
	TurnoverRate    float64                          `json:"turnover_rate"`
	DaysOfInventory *float64                         `json:"days_of_inventory"`
	SlowMovingIDs   []int                            `json:"slow_moving_product_ids"`
}

// Inventory serves the ingredients page: item table, headline figures, the
// stock heatmap and the turnover diagnostics.
func (h *Handlers) Inventory(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	items := make([]inventoryItemView, 0, len(ds.Inventory))
	for _, item := range ds.Inventory {
		items = append(items, inventoryItemView{
			InventoryItem: item,
			StockValueJOD: item.StockValue(),
			Status:        item.HealthStatus(),
		})
	}

	turnover := h.forecasting.InventoryTurnover(ds.Inventory)

	c.JSON(http.StatusOK, inventoryResponse{
		Items:           items,
		Summary:         h.analytics.Inventory(ds.Inventory),
		Costs:           analytics.CostBreakdown(ds.Inventory, forecasting.AssumedDailyDemand),
		Heatmap:         h.analytics.Heatmap(ds.Inventory),
		HealthScore:     h.forecasting.InventoryHealth(ds.Inventory),
		TurnoverRate:    turnover,
		DaysOfInventory: finiteOrNil(h.forecasting.DaysOfInventory(turnover)),
		SlowMovingIDs:   h.forecasting.SlowMovingItems(ds.Inventory, ds.Demand, 0),
	})
}

// Reorder serves EOQ-based ordering advice for one item. The volatility
// query parameter tunes the safety-stock sizing.
func (h *Handlers) Reorder(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	item, err := ds.ItemByID(productID)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.logger.Error("failed resolving product", zap.Int("product_id", productID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve product"})
		return
	}

	advice := h.forecasting.ReorderAdvice(item)
	advice.OptimizedSafety = h.forecasting.OptimizeSafetyStock(item, models.ParseVolatility(c.Query("volatility")))

	c.JSON(http.StatusOK, advice)
}

// finiteOrNil hides unbounded ratios from the JSON encoding, which cannot
// represent infinities.
func finiteOrNil(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
