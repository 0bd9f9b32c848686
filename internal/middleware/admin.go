package middleware

import (
	"net/http" // HTTP status codes

	"kickboard_ledger/internal/domain" // Role names

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnlyMiddleware checks the role claim set by JWTAuthMiddleware
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role") // Get role from context
		// Check if role exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		// Check if the caller is the administrator
		if role != domain.RoleAdmin {
			// If not admin, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Admin access required"})
			return
		}
		// If admin, proceed to the next handler
		c.Next()
	}
}
