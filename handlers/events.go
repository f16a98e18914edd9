// File: questly/handlers/events.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"questly/models"
	"questly/services/events"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateEventHandler drives POST /api/events (educator only).
func (h *HandlerBundle) CreateEventHandler(c *gin.Context) {
	logger := getLogger(c)
	educatorID := c.GetString("userID")

	var req models.Event
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	event, err := h.Events.Create(c.Request.Context(), educatorID, req)
	if err != nil {
		var notOwner events.NotOwnerError
		if errors.As(err, &notOwner) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Event creation failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, event)
}

// GetUpcomingEventsHandler drives GET /api/events/upcoming.
func (h *HandlerBundle) GetUpcomingEventsHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	windowDays := 7
	if raw := c.Query("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 31 {
			windowDays = n
		}
	}

	usr, err := h.UserService.GetUserByID(userID)
	if err != nil {
		logger.Error("User not found", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	evts, err := h.Events.Upcoming(c.Request.Context(), usr.ClassroomIDs, windowDays)
	if err != nil {
		logger.Error("Failed to list events", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": evts})
}

// DeleteEventHandler drives DELETE /api/events/:id (educator only).
func (h *HandlerBundle) DeleteEventHandler(c *gin.Context) {
	educatorID := c.GetString("userID")
	eventID := c.Param("id")

	if err := h.Events.Delete(c.Request.Context(), educatorID, eventID); err != nil {
		getLogger(c).Error("Event delete failed", zap.String("eventID", eventID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}
