// File: questly/handlers/tutor.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TutorHintHandler drives POST /api/tutor/hint.
func (h *HandlerBundle) TutorHintHandler(c *gin.Context) {
	logger := getLogger(c)
	learnerID := c.GetString("userID")

	var req struct {
		Subject  string `json:"subject" binding:"required"`
		Question string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	hint, err := h.Tutor.Hint(c.Request.Context(), learnerID, req.Subject, req.Question)
	if err != nil {
		logger.Error("Tutor hint failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "the tutor is unavailable right now"})
		return
	}
	c.JSON(http.StatusOK, hint)
}

// ClearTutorContextHandler drives DELETE /api/tutor/context.
func (h *HandlerBundle) ClearTutorContextHandler(c *gin.Context) {
	learnerID := c.GetString("userID")

	if err := h.Tutor.ClearContext(c.Request.Context(), learnerID); err != nil {
		getLogger(c).Error("Tutor context clear failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Context cleared"})
}
