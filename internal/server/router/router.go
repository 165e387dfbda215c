package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/server/handlers"
)

// SessionHeader carries the dashboard session identifier. The middleware
// mints one for requests that arrive without it and always echoes it back.
const SessionHeader = "X-Session-ID"

// New wires the Gin engine with required routes and middlewares.
func New(h *handlers.Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(sessionMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.GET("/overview", h.Overview)

		api.GET("/inventory", h.Inventory)
		api.GET("/inventory/:id/reorder", h.Reorder)

		api.GET("/machines", h.Machines)
		api.GET("/machines/:id/prediction", h.MachinePrediction)
		api.GET("/robots", h.Robots)
		api.GET("/operations", h.Operations)

		api.GET("/forecast/:productID", h.Forecast)

		api.GET("/decisions/summary", h.DecisionSummary)
		api.POST("/decisions/generate", h.GenerateDecisions)
		api.GET("/decisions", h.Decisions)
		api.GET("/decisions/export", h.ExportDecisions)

		api.GET("/session/theme", h.Theme)
		api.PUT("/session/theme", h.UpdateTheme)

		api.POST("/datasets/refresh", h.RefreshDataset)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id = uuid.NewString()
		}

		handlers.SetSessionID(c, id)
		c.Header(SessionHeader, id)
		c.Next()
	}
}
