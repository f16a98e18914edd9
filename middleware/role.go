package middleware

import (
	"net/http"
	"questly/models"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route group to the listed roles. Must run after
// AuthMiddleware, which puts the verified role into the context.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		role, _ := roleVal.(string)

		for _, allowed := range roles {
			if role == string(allowed) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "This account type cannot perform that action",
		})
	}
}
