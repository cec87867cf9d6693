package middleware

import (
	"net/http"

	"hotel-marketplace/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through only when Auth stored one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if !allowed[role] {
			utils.JSONError(c, http.StatusForbidden, "insufficient role", nil)
			return
		}
		c.Next()
	}
}
