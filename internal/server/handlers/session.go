package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/domain/models"
)

// Theme serves the session's dashboard theme flag.
func (h *Handlers) Theme(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"theme": h.sessions.Theme(SessionID(c))})
}

// UpdateTheme switches the session's theme between light and dark.
func (h *Handlers) UpdateTheme(c *gin.Context) {
	var req models.ThemeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	theme := models.Theme(strings.ToLower(strings.TrimSpace(req.Theme)))
	if theme != models.ThemeLight && theme != models.ThemeDark {
		c.JSON(http.StatusBadRequest, gin.H{"error": "theme must be light or dark"})
		return
	}

	h.sessions.SetTheme(SessionID(c), theme)
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}
