package authorization

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKeyUserRole is the gin context key set by the auth middleware.
const ContextKeyUserRole = "user_role"

// RequireAdmin rejects requests whose authenticated role is not admin.
// The fine-grained resource/action check happens in the use case layer;
// this gate exists so non-admin tokens never reach it.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(ContextKeyUserRole)
		if userRole != string(RoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "admin access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
