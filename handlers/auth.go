// File: questly/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"questly/models"
	"questly/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// deviceFromContext assembles the calling device from the headers captured
// by DeviceDetailsMiddleware.
func deviceFromContext(c *gin.Context) (models.Device, error) {
	deviceID, deviceName, err := GetDeviceDetails(c)
	if err != nil {
		return models.Device{}, err
	}
	platform := "web"
	if p, ok := c.Get("devicePlatform"); ok {
		if s, valid := p.(string); valid && s != "" {
			platform = s
		}
	}
	return models.Device{
		DeviceID:   deviceID,
		DeviceName: deviceName,
		Platform:   platform,
		LastSeen:   time.Now(),
	}, nil
}

// RegisterHandler drives POST /api/auth/register. Learner signups come back
// twice: once to start (answered with 202 and a session ID) and once with
// the guardian's approval code.
func (h *HandlerBundle) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)

	device, err := deviceFromContext(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req models.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.UserService.Register(req, device)
	if err != nil {
		var pending user.ApprovalPendingError
		var dup user.DuplicateAccountError
		switch {
		case errors.As(err, &pending):
			c.JSON(http.StatusAccepted, gin.H{
				"status":    "approval_pending",
				"sessionID": pending.SessionID,
				"message":   "We emailed the guardian a code. Finish signup with it.",
			})
		case errors.As(err, &dup):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Registration failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// LoginHandler drives POST /api/auth/login.
func (h *HandlerBundle) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	device, err := deviceFromContext(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Email        string `json:"email" binding:"required"`
		Password     string `json:"password" binding:"required"`
		ApprovalCode string `json:"approvalCode,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.UserService.Authenticate(req.Email, req.Password, req.ApprovalCode, device)
	if err != nil {
		var authErr user.AuthError
		var pending user.ApprovalPendingError
		var devLimit user.DeviceLimitError
		switch {
		case errors.As(err, &authErr):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.As(err, &pending):
			c.JSON(http.StatusAccepted, gin.H{
				"status":  "approval_pending",
				"message": "New device: ask your guardian for the code we sent them.",
			})
		case errors.As(err, &devLimit):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			logger.Error("Login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SignOutHandler drives POST /api/auth/signout: it revokes the calling
// device's token.
func (h *HandlerBundle) SignOutHandler(c *gin.Context) {
	userID := c.GetString("userID")
	deviceID, _, err := GetDeviceDetails(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.UserService.RevokeAuthToken(userID, deviceID); err != nil {
		getLogger(c).Error("Sign-out failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// SignOutOtherDevicesHandler drives POST /api/auth/signout-others.
func (h *HandlerBundle) SignOutOtherDevicesHandler(c *gin.Context) {
	userID := c.GetString("userID")
	deviceID, _, err := GetDeviceDetails(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.UserService.SignOutOtherDevices(userID, deviceID); err != nil {
		getLogger(c).Error("Sign-out-others failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Other devices signed out"})
}

// GetDevicesHandler drives GET /api/auth/devices.
func (h *HandlerBundle) GetDevicesHandler(c *gin.Context) {
	userID := c.GetString("userID")

	devices, err := h.UserService.GetUserDevices(userID)
	if err != nil {
		getLogger(c).Error("Failed to list devices", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"devices": devices})
}

// UpdateFCMTokenHandler drives PUT /api/auth/fcm-token for the calling
// device.
func (h *HandlerBundle) UpdateFCMTokenHandler(c *gin.Context) {
	userID := c.GetString("userID")
	deviceID, _, err := GetDeviceDetails(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		FCMToken string `json:"fcmToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.UserService.UpdateFCMToken(userID, deviceID, req.FCMToken); err != nil {
		getLogger(c).Error("FCM token update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token updated"})
}
