// File: questly/handlers/users.go
package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"questly/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetProfileHandler returns the authenticated user's own account.
func (h *HandlerBundle) GetProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	usr, err := h.UserService.GetUserByID(userID)
	if err != nil {
		logger.Error("User not found", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, usr.PublicView())
}

// UpdateProfileHandler updates display name, avatar and mail preferences.
func (h *HandlerBundle) UpdateProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	var req user.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid profile update", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.UserService.UpdateProfile(userID, req)
	if err != nil {
		logger.Error("Profile update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated.PublicView())
}

// UpdatePasswordHandler rotates the password and signs out every other
// device.
func (h *HandlerBundle) UpdatePasswordHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")
	deviceID, _, err := GetDeviceDetails(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid update password request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.UserService.UpdatePassword(userID, req.CurrentPassword, req.NewPassword, deviceID); err != nil {
		logger.Error("Failed to update password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// DeleteAccountHandler removes the authenticated account.
func (h *HandlerBundle) DeleteAccountHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	if err := h.UserService.DeleteUser(userID); err != nil {
		logger.Error("Delete error", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

// LinkLearnerHandler attaches a learner to the calling guardian.
func (h *HandlerBundle) LinkLearnerHandler(c *gin.Context) {
	logger := getLogger(c)
	guardianID := c.GetString("userID")

	var req struct {
		LearnerUsername string `json:"learnerUsername" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	learner, err := h.UserService.LinkLearner(c.Request.Context(), guardianID, req.LearnerUsername)
	if err != nil {
		logger.Error("Learner link failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, learner.PublicView())
}

// JoinClassroomHandler puts the calling learner into a classroom by join
// code.
func (h *HandlerBundle) JoinClassroomHandler(c *gin.Context) {
	logger := getLogger(c)
	learnerID := c.GetString("userID")

	var req struct {
		JoinCode string `json:"joinCode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	room, err := h.UserService.JoinClassroom(c.Request.Context(), learnerID, req.JoinCode)
	if err != nil {
		logger.Error("Classroom join failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, room)
}

// UploadAvatarHandler stores a new avatar image and saves its delivery URL
// on the profile.
func (h *HandlerBundle) UploadAvatarHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}

	tmpPath := filepath.Join(os.TempDir(), file.Filename)
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		logger.Error("Failed to buffer avatar upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer os.Remove(tmpPath)

	publicID, err := h.Storage.UploadFile(c.Request.Context(), tmpPath, "avatars")
	if err != nil {
		logger.Error("Avatar upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store avatar"})
		return
	}

	url, err := h.Storage.GetDownloadURL("image", publicID)
	if err != nil {
		logger.Error("Avatar URL build failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve avatar URL"})
		return
	}

	updated, err := h.UserService.UpdateProfile(userID, user.ProfileUpdate{AvatarID: publicID, AvatarURL: url})
	if err != nil {
		logger.Error("Avatar profile update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatarUrl": updated.AvatarURL})
}
