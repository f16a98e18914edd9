// File: questly/handlers/voice.go
package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	maxRecordingBytes = 5 * 1024 * 1024
	allowedExtension  = ".wav"
)

// GetPassagesHandler drives GET /api/voice/passages.
func (h *HandlerBundle) GetPassagesHandler(c *gin.Context) {
	maxLevel := 0
	if raw := c.Query("maxLevel"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			maxLevel = n
		}
	}

	passages, err := h.Voice.Passages(c.Request.Context(), maxLevel)
	if err != nil {
		getLogger(c).Error("Failed to list passages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"passages": passages})
}

// VoiceAttemptHandler drives POST /api/voice/attempt: a multipart form with
// the passage ID and a WAV recording of the learner reading it.
func (h *HandlerBundle) VoiceAttemptHandler(c *gin.Context) {
	logger := getLogger(c)
	learnerID := c.GetString("userID")

	passageID := c.PostForm("passageId")
	if passageID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passageId is required"})
		return
	}

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "audio file is required",
			"details": err.Error(),
		})
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != allowedExtension {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid file type",
			"details": fmt.Sprintf("expected %s, got %s", allowedExtension, ext),
		})
		return
	}

	audio, err := io.ReadAll(io.LimitReader(file, maxRecordingBytes+1))
	if err != nil {
		logger.Error("Failed to read recording", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read audio"})
		return
	}
	if len(audio) > maxRecordingBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recording too large"})
		return
	}

	result, err := h.Voice.Attempt(c.Request.Context(), learnerID, passageID, audio)
	if err != nil {
		logger.Error("Reading attempt failed", zap.String("passageID", passageID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
