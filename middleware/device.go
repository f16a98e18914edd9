package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DeviceDetailsMiddleware captures the calling device's identity headers.
// No IP geolocation happens here: learner locations are never looked up or
// stored.
func DeviceDetailsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader("X-Device-ID")
		deviceName := c.GetHeader("X-Device-Name")
		if deviceID == "" || deviceName == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Missing required device details: X-Device-ID and X-Device-Name",
			})
			return
		}

		platform := c.GetHeader("X-Platform")
		if platform == "" {
			platform = "web"
		}

		c.Set("deviceID", deviceID)
		c.Set("deviceName", deviceName)
		c.Set("devicePlatform", platform)
		c.Next()
	}
}
