package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/domain/models"
)

// Refresh sources.
const (
	sourceGenerate = "generate"
	sourceFiles    = "files"
)

type refreshRequest struct {
	Seed   int64  `json:"seed"`
	Source string `json:"source"`
}

type refreshResponse struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Seed        int64          `json:"seed"`
	Counts      map[string]int `json:"counts"`
}

// RefreshDataset regenerates the demo dataset (or reloads the CSV
// snapshots) and swaps it in atomically. The body is optional; an empty one
// regenerates with the configured seed.
func (h *Handlers) RefreshDataset(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var ds *models.Dataset
	switch req.Source {
	case "", sourceGenerate:
		ds = h.store.Refresh(req.Seed)
	case sourceFiles:
		ds = h.store.LoadOrGenerate()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "source must be generate or files"})
		return
	}

	h.logger.Info("dataset refreshed",
		zap.String("source", req.Source),
		zap.Int64("seed", ds.Seed),
		zap.Int("machines", len(ds.Machines)),
		zap.Int("inventory", len(ds.Inventory)))

	c.JSON(http.StatusOK, refreshResponse{
		GeneratedAt: ds.GeneratedAt,
		Seed:        ds.Seed,
		Counts: map[string]int{
			"inventory":  len(ds.Inventory),
			"machines":   len(ds.Machines),
			"operations": len(ds.Operations),
			"demand":     len(ds.Demand),
		},
	})
}
