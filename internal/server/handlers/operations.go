package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/domain/models"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/service/analytics"
)

type operationsAreaView struct {
	models.OperationsArea
	Status          models.UtilizationStatus `json:"status"`
	LostOutputUnits float64                  `json:"lost_output_units"`
	DowntimeCostJOD decimal.Decimal          `json:"downtime_cost_jod"`
}

type operationsResponse struct {
	Areas               []operationsAreaView        `json:"areas"`
	Summary             analytics.OperationsSummary `json:"summary"`
	DowntimeCostPerUnit decimal.Decimal             `json:"downtime_cost_per_unit_jod"`
	OutputTrend         []models.ProductionSample   `json:"output_trend"`
}

// Operations serves the production lines page: per-line figures with load
// banding and downtime pricing, the totals row and a day of output trend.
func (h *Handlers) Operations(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	// Lost output is priced at the mean ingredient cost; a rough unit value
	// for the demo.
	unitValue := decimal.Zero
	if len(ds.Inventory) > 0 {
		costs := make([]decimal.Decimal, 0, len(ds.Inventory))
		for _, item := range ds.Inventory {
			costs = append(costs, item.UnitCost)
		}
		unitValue = decimal.Avg(costs[0], costs[1:]...)
	}

	areas := make([]operationsAreaView, 0, len(ds.Operations))
	totalDowntimeCost := decimal.Zero
	for _, area := range ds.Operations {
		cost := analytics.DowntimeCost(area.DowntimeHours, area.Throughput, unitValue)
		totalDowntimeCost = totalDowntimeCost.Add(cost)
		areas = append(areas, operationsAreaView{
			OperationsArea:  area,
			Status:          area.LoadStatus(),
			LostOutputUnits: area.DowntimeHours * float64(area.Throughput),
			DowntimeCostJOD: cost,
		})
	}

	summary := h.analytics.Operations(ds.Operations)
	c.JSON(http.StatusOK, operationsResponse{
		Areas:               areas,
		Summary:             summary,
		DowntimeCostPerUnit: analytics.CostPerUnit(totalDowntimeCost, summary.TotalThroughput),
		OutputTrend:         h.analytics.OutputTrend(sensorHistoryHours),
	})
}
