// File: questly/handlers/dashboard.go
package handlers

import (
	"net/http"

	"questly/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetDashboardHandler drives GET /api/dashboard/overview. It always answers
// 200: on backend trouble the body is the last cached aggregate or the
// zero-valued fallback with degraded set.
func (h *HandlerBundle) GetDashboardHandler(c *gin.Context) {
	userID := c.GetString("userID")
	role := models.Role(c.GetString("role"))

	overview, err := h.Dashboard.Overview(c.Request.Context(), userID, role)
	if err != nil {
		// The service is fail-open; an error here is a programming bug.
		getLogger(c).Error("Dashboard overview errored past fallback", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dashboard unavailable"})
		return
	}
	c.JSON(http.StatusOK, overview)
}

// RefreshDashboardHandler drives POST /api/dashboard/refresh.
func (h *HandlerBundle) RefreshDashboardHandler(c *gin.Context) {
	userID := c.GetString("userID")
	role := models.Role(c.GetString("role"))

	if err := h.Dashboard.Refresh(c.Request.Context(), userID, role); err != nil {
		getLogger(c).Error("Dashboard refresh failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dashboard will rebuild on next load"})
}
