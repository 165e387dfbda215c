// Package handlers adapts the dashboard services to Gin HTTP endpoints.
// Each dashboard page maps onto one read endpoint; the decision center adds
// the generate/export flow on top of the per-session results cache.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/domain/models"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/repository/csvstore"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/service/analytics"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/service/decision"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/service/forecasting"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/service/maintenance"
)

// sessionKey is the Gin context key the session middleware stores the
// request's session id under.
const sessionKey = "session_id"

// SessionID returns the request's session identifier.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

// SetSessionID attaches the session identifier to the request context.
func SetSessionID(c *gin.Context, id string) {
	c.Set(sessionKey, id)
}

// Handlers bundles the services the HTTP endpoints fan out to.
type Handlers struct {
	store       *csvstore.Store
	maintenance *maintenance.Service
	forecasting *forecasting.Service
	decisions   *decision.Service
	analytics   *analytics.Service
	sessions    *decision.SessionManager
	horizonDays int
	logger      *zap.Logger
}

// New constructs the HTTP handler adapter.
func New(
	store *csvstore.Store,
	maintenanceSvc *maintenance.Service,
	forecastingSvc *forecasting.Service,
	decisionSvc *decision.Service,
	analyticsSvc *analytics.Service,
	sessions *decision.SessionManager,
	horizonDays int,
	logger *zap.Logger,
) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	if horizonDays < 1 {
		horizonDays = forecasting.DefaultHorizonDays
	}
	return &Handlers{
		store:       store,
		maintenance: maintenanceSvc,
		forecasting: forecastingSvc,
		decisions:   decisionSvc,
		analytics:   analyticsSvc,
		sessions:    sessions,
		horizonDays: horizonDays,
		logger:      logger,
	}
}

// dataset resolves the active dataset snapshot, failing the request when the
// store has not been initialized.
func (h *Handlers) dataset(c *gin.Context) (*models.Dataset, bool) {
	ds := h.store.Dataset()
	if ds == nil {
		h.logger.Error("dataset not initialized")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dataset not initialized"})
		return nil, false
	}
	return ds, true
}
