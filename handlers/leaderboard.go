// File: questly/handlers/leaderboard.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultBoardSize = 10

func boardSize(c *gin.Context) int64 {
	if raw := c.Query("n"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 && n <= 100 {
			return n
		}
	}
	return defaultBoardSize
}

// GetWeeklyLeaderboardHandler drives GET /api/leaderboard/weekly. An
// optional classroom query scopes the board.
func (h *HandlerBundle) GetWeeklyLeaderboardHandler(c *gin.Context) {
	standings, err := h.Leaderboard.TopWeekly(c.Request.Context(), c.Query("classroom"), boardSize(c))
	if err != nil {
		getLogger(c).Error("Failed to load weekly leaderboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"standings": standings})
}

// GetAllTimeLeaderboardHandler drives GET /api/leaderboard/all-time.
func (h *HandlerBundle) GetAllTimeLeaderboardHandler(c *gin.Context) {
	standings, err := h.Leaderboard.TopAllTime(c.Request.Context(), boardSize(c))
	if err != nil {
		getLogger(c).Error("Failed to load all-time leaderboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"standings": standings})
}

// GetMyRankHandler drives GET /api/leaderboard/me.
func (h *HandlerBundle) GetMyRankHandler(c *gin.Context) {
	learnerID := c.GetString("userID")

	rank, err := h.Leaderboard.WeeklyRank(c.Request.Context(), learnerID)
	if err != nil {
		getLogger(c).Error("Failed to load weekly rank", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rank": rank})
}
