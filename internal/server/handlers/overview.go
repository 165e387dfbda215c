package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/domain/models"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/service/analytics"
)

type overviewResponse struct {
	KPIs             analytics.OverviewKPIs     `json:"kpis"`
	RiskStatus       models.RiskStatus          `json:"risk_status"`
	HealthBadge      models.HealthBadge         `json:"health_badge"`
	HealthScore      float64                    `json:"health_score"`
	RiskDistribution analytics.RiskDistribution `json:"risk_distribution"`
	Insights         analytics.InsightCounts    `json:"insights"`
}

// Overview serves the factory overview page: KPI row, health gauge, risk
// distribution and the insight panel counts.
func (h *Handlers) Overview(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	risk := h.decisions.RiskScore(ds.Machines, ds.Inventory)

	c.JSON(http.StatusOK, overviewResponse{
		KPIs:             h.analytics.KPIs(ds, risk),
		RiskStatus:       models.RiskStatusFor(risk),
		HealthBadge:      models.HealthBadgeFor(risk),
		HealthScore:      100 - risk,
		RiskDistribution: h.analytics.Distribution(ds.Machines),
		Insights:         h.analytics.Insights(ds),
	})
}
