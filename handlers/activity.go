// File: questly/handlers/activity.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetActivityHandler drives GET /api/activity: the persisted feed history a
// client replays before switching to the live socket.
func (h *HandlerBundle) GetActivityHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	limit := int64(20)
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	usr, err := h.UserService.GetUserByID(userID)
	if err != nil {
		logger.Error("User not found", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	entries, err := h.Activity.Recent(c.Request.Context(), userID, usr.ClassroomIDs, limit)
	if err != nil {
		logger.Error("Failed to load activity", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": entries})
}

// MarkActivityReadHandler drives POST /api/activity/:id/read.
func (h *HandlerBundle) MarkActivityReadHandler(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	if err := h.Activity.MarkRead(c.Request.Context(), id, userID); err != nil {
		getLogger(c).Error("Mark-read failed", zap.String("activityID", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Marked read"})
}

// MarkAllActivityReadHandler drives POST /api/activity/read-all.
func (h *HandlerBundle) MarkAllActivityReadHandler(c *gin.Context) {
	userID := c.GetString("userID")

	updated, err := h.Activity.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		getLogger(c).Error("Mark-all-read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// DeleteActivityHandler drives DELETE /api/activity/:id.
func (h *HandlerBundle) DeleteActivityHandler(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	if err := h.Activity.Delete(c.Request.Context(), id, userID); err != nil {
		getLogger(c).Error("Activity delete failed", zap.String("activityID", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// GetNotificationsHandler drives GET /api/notifications.
func (h *HandlerBundle) GetNotificationsHandler(c *gin.Context) {
	userID := c.GetString("userID")

	limit := int64(20)
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	notifications, err := h.Notification.ListForUser(c.Request.Context(), userID, limit)
	if err != nil {
		getLogger(c).Error("Failed to list notifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	unread, err := h.Notification.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		getLogger(c).Warn("Unread count failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "unread": unread})
}

// MarkNotificationReadHandler drives POST /api/notifications/:id/read.
func (h *HandlerBundle) MarkNotificationReadHandler(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	if err := h.Notification.MarkRead(c.Request.Context(), id, userID); err != nil {
		getLogger(c).Error("Notification mark-read failed", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Marked read"})
}

// DeleteNotificationHandler drives DELETE /api/notifications/:id.
func (h *HandlerBundle) DeleteNotificationHandler(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	if err := h.Notification.Delete(c.Request.Context(), id, userID); err != nil {
		getLogger(c).Error("Notification delete failed", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
