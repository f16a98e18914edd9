// File: questly/handlers/progression.go
package handlers

import (
	"errors"
	"net/http"

	"questly/services/progression"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetStateHandler drives GET /api/progress/state.
func (h *HandlerBundle) GetStateHandler(c *gin.Context) {
	learnerID := c.GetString("userID")

	state, err := h.Progression.State(c.Request.Context(), learnerID)
	if err != nil {
		getLogger(c).Error("Failed to load learner state", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

// GetMissionBoardHandler drives GET /api/progress/missions.
func (h *HandlerBundle) GetMissionBoardHandler(c *gin.Context) {
	learnerID := c.GetString("userID")

	board, err := h.Progression.MissionBoard(c.Request.Context(), learnerID)
	if err != nil {
		getLogger(c).Error("Failed to build mission board", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"missions": board})
}

// AdvanceMissionHandler drives POST /api/progress/missions/:id/advance.
func (h *HandlerBundle) AdvanceMissionHandler(c *gin.Context) {
	logger := getLogger(c)
	learnerID := c.GetString("userID")
	missionID := c.Param("id")

	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.Delta <= 0 {
		req.Delta = 1
	}

	entry, err := h.Progression.AdvanceMission(c.Request.Context(), learnerID, missionID, req.Delta)
	if err != nil {
		var unavailable progression.MissionUnavailableError
		if errors.As(err, &unavailable) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Mission advance failed", zap.String("missionID", missionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GetChallengeBoardHandler drives GET /api/progress/challenges.
func (h *HandlerBundle) GetChallengeBoardHandler(c *gin.Context) {
	learnerID := c.GetString("userID")

	board, err := h.Progression.ChallengeBoard(c.Request.Context(), learnerID)
	if err != nil {
		getLogger(c).Error("Failed to build challenge board", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"challenges": board})
}

// ClaimChallengeHandler drives POST /api/progress/challenges/:id/claim.
func (h *HandlerBundle) ClaimChallengeHandler(c *gin.Context) {
	learnerID := c.GetString("userID")
	challengeID := c.Param("id")

	run, err := h.Progression.ClaimChallenge(c.Request.Context(), learnerID, challengeID)
	if err != nil {
		if errors.Is(err, progression.ErrNotClaimable) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		getLogger(c).Error("Challenge claim failed", zap.String("challengeID", challengeID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, run)
}

// GetShopHandler drives GET /api/progress/shop.
func (h *HandlerBundle) GetShopHandler(c *gin.Context) {
	learnerID := c.GetString("userID")

	rewards, err := h.Progression.Shop(c.Request.Context(), learnerID)
	if err != nil {
		getLogger(c).Error("Failed to load shop", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rewards": rewards})
}

// RedeemRewardHandler drives POST /api/progress/shop/:id/redeem.
func (h *HandlerBundle) RedeemRewardHandler(c *gin.Context) {
	logger := getLogger(c)
	learnerID := c.GetString("userID")
	rewardID := c.Param("id")

	redemption, err := h.Progression.Redeem(c.Request.Context(), learnerID, rewardID)
	if err != nil {
		var pending progression.ApprovalPendingError
		var unavailable progression.RewardUnavailableError
		switch {
		case errors.As(err, &pending):
			c.JSON(http.StatusAccepted, gin.H{
				"status":       "pending_approval",
				"redemptionId": pending.RedemptionID,
				"message":      "We asked your guardian to approve this reward.",
			})
		case errors.Is(err, progression.ErrInsufficientCoins), errors.Is(err, progression.ErrOutOfStock):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.As(err, &unavailable):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Redemption failed", zap.String("rewardID", rewardID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, redemption)
}

// ApproveRedemptionHandler drives POST /api/progress/redemptions/:id/approve
// with the guardian's code.
func (h *HandlerBundle) ApproveRedemptionHandler(c *gin.Context) {
	learnerID := c.GetString("userID")
	redemptionID := c.Param("id")

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	redemption, err := h.Progression.ApproveRedemption(c.Request.Context(), learnerID, redemptionID, req.Code)
	if err != nil {
		getLogger(c).Error("Redemption approval failed", zap.String("redemptionID", redemptionID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, redemption)
}

// GetRedemptionsHandler drives GET /api/progress/redemptions.
func (h *HandlerBundle) GetRedemptionsHandler(c *gin.Context) {
	learnerID := c.GetString("userID")

	redemptions, err := h.Progression.Redemptions(c.Request.Context(), learnerID)
	if err != nil {
		getLogger(c).Error("Failed to list redemptions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"redemptions": redemptions})
}
