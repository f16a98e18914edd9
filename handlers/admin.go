// File: questly/handlers/admin.go
package handlers

import (
	"net/http"

	"questly/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminListUsersHandler drives GET /api/admin/users/:role.
func (h *HandlerBundle) AdminListUsersHandler(c *gin.Context) {
	role := models.Role(c.Param("role"))

	users, err := h.Admin.ListUsers(c.Request.Context(), role)
	if err != nil {
		getLogger(c).Error("Admin user listing failed", zap.String("role", string(role)), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// AdminGetUserHandler drives GET /api/admin/user/:id.
func (h *HandlerBundle) AdminGetUserHandler(c *gin.Context) {
	id := c.Param("id")

	usr, err := h.Admin.GetUser(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, usr)
}

// AdminUpsertMissionHandler drives PUT /api/admin/missions.
func (h *HandlerBundle) AdminUpsertMissionHandler(c *gin.Context) {
	var mission models.Mission
	if err := c.ShouldBindJSON(&mission); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	saved, err := h.Admin.UpsertMission(c.Request.Context(), mission)
	if err != nil {
		getLogger(c).Error("Mission upsert failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// AdminUpsertRewardHandler drives PUT /api/admin/rewards.
func (h *HandlerBundle) AdminUpsertRewardHandler(c *gin.Context) {
	var reward models.Reward
	if err := c.ShouldBindJSON(&reward); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	saved, err := h.Admin.UpsertReward(c.Request.Context(), reward)
	if err != nil {
		getLogger(c).Error("Reward upsert failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// AdminCreateChallengeHandler drives POST /api/admin/challenges.
func (h *HandlerBundle) AdminCreateChallengeHandler(c *gin.Context) {
	var challenge models.Challenge
	if err := c.ShouldBindJSON(&challenge); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	saved, err := h.Admin.CreateChallenge(c.Request.Context(), challenge)
	if err != nil {
		getLogger(c).Error("Challenge creation failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// AdminCreatePassageHandler drives POST /api/admin/passages.
func (h *HandlerBundle) AdminCreatePassageHandler(c *gin.Context) {
	var passage models.VoicePassage
	if err := c.ShouldBindJSON(&passage); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	saved, err := h.Admin.CreatePassage(c.Request.Context(), passage)
	if err != nil {
		getLogger(c).Error("Passage creation failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// AdminBroadcastHandler drives POST /api/admin/broadcast.
func (h *HandlerBundle) AdminBroadcastHandler(c *gin.Context) {
	var req struct {
		Role     models.Role     `json:"role" binding:"required"`
		Severity models.Severity `json:"severity"`
		Message  string          `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.Severity == "" {
		req.Severity = models.SeverityInfo
	}

	if err := h.Admin.BroadcastToast(c.Request.Context(), req.Role, req.Severity, req.Message); err != nil {
		getLogger(c).Error("Broadcast failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Broadcast sent"})
}

// AdminOpenFlagsHandler drives GET /api/admin/flags.
func (h *HandlerBundle) AdminOpenFlagsHandler(c *gin.Context) {
	flags, err := h.Admin.OpenFlags(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Flag listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"flags": flags})
}

// AdminResolveFlagHandler drives POST /api/admin/flags/:id/resolve.
func (h *HandlerBundle) AdminResolveFlagHandler(c *gin.Context) {
	id := c.Param("id")

	if err := h.Admin.ResolveFlag(c.Request.Context(), id); err != nil {
		getLogger(c).Error("Flag resolve failed", zap.String("flagID", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Flag resolved"})
}
