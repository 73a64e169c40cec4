package middleware

import (
	"strings"

	"recipebook-backend/models"
	"recipebook-backend/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired gates routes behind a valid bearer token and stashes the
// session identity in the request context.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// RequirePermission gates a route on the session role's capability set.
// Runs after AuthRequired.
func RequirePermission(permission models.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists || !models.HasPermission(role.(models.UserRole), permission) {
			utils.Forbidden(c, "Not authorized")
			c.Abort()
			return
		}
		c.Next()
	}
}
