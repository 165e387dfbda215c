package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/domain/models"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/service/decision"
)

// DecisionSummary serves the decision center headline: risk score and the
// problem counters behind it.
func (h *Handlers) DecisionSummary(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.decisions.Summarize(ds))
}

type recommendationAssessment struct {
	RecommendationID string             `json:"recommendation_id"`
	Difficulty       models.Difficulty  `json:"difficulty"`
	ROI              models.ROIEstimate `json:"roi"`
}

type generateResponse struct {
	models.DecisionResult
	Total       int                        `json:"total"`
	Assessments []recommendationAssessment `json:"assessments"`
}

// GenerateDecisions runs the engine over the current snapshot, caches the
// result for this session and returns it with per-recommendation
// assessments.
func (h *Handlers) GenerateDecisions(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	result := h.decisions.Generate(ds)
	h.sessions.StoreResult(SessionID(c), result)

	assessments := make([]recommendationAssessment, 0, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		assessments = append(assessments, recommendationAssessment{
			RecommendationID: rec.ID,
			Difficulty:       rec.ImplementationDifficulty(),
			ROI:              h.decisions.ROI(rec),
		})
	}

	h.logger.Info("recommendations generated",
		zap.String("session_id", SessionID(c)),
		zap.Int("count", len(result.Recommendations)))

	c.JSON(http.StatusOK, generateResponse{
		DecisionResult: result,
		Total:          len(result.Recommendations),
		Assessments:    assessments,
	})
}

// Decisions serves the session's cached engine result.
func (h *Handlers) Decisions(c *gin.Context) {
	result, err := h.sessions.Result(SessionID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportDecisions serves the session's cached result as a CSV download.
func (h *Handlers) ExportDecisions(c *gin.Context) {
	result, err := h.sessions.Result(SessionID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := decision.WriteCSV(&buf, result.Recommendations); err != nil {
		h.logger.Error("failed rendering decision export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render export"})
		return
	}

	filename := decision.ExportFilename(result.GeneratedAt)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
