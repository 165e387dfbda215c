package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/domain/models"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/service/analytics"
)

// maxForecastDays bounds the requestable horizon.
const maxForecastDays = 365

type forecastResponse struct {
	models.DemandForecast
	ReorderAdvice models.ReorderAdvice     `json:"reorder_advice"`
	RollingWeekly []analytics.RollingPoint `json:"rolling_weekly"`
	OutlierDays   []int                    `json:"outlier_days"`
}

// Forecast serves the demand projection for one product, with ordering
// advice and history diagnostics alongside.
func (h *Handlers) Forecast(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	productID, err := strconv.Atoi(c.Param("productID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	days := h.horizonDays
	if raw := c.Query("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days < 1 || days > maxForecastDays {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer between 1 and 365"})
			return
		}
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

	forecast := h.forecasting.ForecastDemand(ds.Demand, productID, days)

	advice := h.forecasting.ReorderAdvice(item)
	advice.OptimizedSafety = h.forecasting.OptimizeSafetyStock(item, models.VolatilityMedium)

	history := make([]float64, len(forecast.History))
	for i, point := range forecast.History {
		history[i] = float64(point.Demand)
	}

	c.JSON(http.StatusOK, forecastResponse{
		DemandForecast: forecast,
		ReorderAdvice:  advice,
		RollingWeekly:  analytics.Rolling(history, 7),
		OutlierDays:    analytics.OutliersIQR(history, 1.5),
	})
}
