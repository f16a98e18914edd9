// File: questly/handlers/classrooms.go
package handlers

import (
	"crypto/rand"
	"net/http"
	"time"

	"questly/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Join codes skip 0/O and 1/I so children can type them.
const joinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func newJoinCode() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the host is broken; a uuid slice
		// still gives a usable code.
		return uuid.New().String()[:6]
	}
	for i := range b {
		b[i] = joinCodeAlphabet[int(b[i])%len(joinCodeAlphabet)]
	}
	return string(b)
}

// CreateClassroomHandler drives POST /api/classrooms (educator only).
func (h *HandlerBundle) CreateClassroomHandler(c *gin.Context) {
	logger := getLogger(c)
	educatorID := c.GetString("userID")

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	room := models.Classroom{
		ID:         uuid.New().String(),
		Name:       req.Name,
		EducatorID: educatorID,
		JoinCode:   newJoinCode(),
		CreatedAt:  time.Now(),
	}
	if _, err := h.ClassroomRepo.Create(c.Request.Context(), room); err != nil {
		logger.Error("Classroom creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, room)
}

// GetMyClassroomsHandler drives GET /api/classrooms (educator only).
func (h *HandlerBundle) GetMyClassroomsHandler(c *gin.Context) {
	educatorID := c.GetString("userID")

	rooms, err := h.ClassroomRepo.GetByEducatorID(c.Request.Context(), educatorID)
	if err != nil {
		getLogger(c).Error("Classroom listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rooms == nil {
		rooms = []models.Classroom{}
	}
	c.JSON(http.StatusOK, gin.H{"classrooms": rooms})
}

// RemoveLearnerHandler drives DELETE /api/classrooms/:id/learners/:learnerId
// (educator only).
func (h *HandlerBundle) RemoveLearnerHandler(c *gin.Context) {
	logger := getLogger(c)
	educatorID := c.GetString("userID")
	classroomID := c.Param("id")
	learnerID := c.Param("learnerId")

	room, err := h.ClassroomRepo.GetByID(c.Request.Context(), classroomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if room.EducatorID != educatorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "classroom does not belong to this educator"})
		return
	}

	if err := h.ClassroomRepo.RemoveLearner(c.Request.Context(), classroomID, learnerID); err != nil {
		logger.Error("Learner removal failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Learner removed"})
}
