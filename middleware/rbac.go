package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RBACMiddleware allows the request through only when the principal's role is
// in allowedRoles. Routes name every permitted role explicitly, admin included.
func RBACMiddleware(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, role := range allowedRoles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			return
		}

		if _, ok := allowed[principal.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "insufficient role for this operation",
			})
			return
		}

		c.Next()
	}
}
