package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/farhanputra/event-management-backend/config"
)

// Principal is the authenticated caller, loaded once per request and stored in
// the gin context under "principal".
type Principal struct {
	UserID   uint
	Email    string
	Role     string
	FullName string
	IsActive bool
}

// UserLookup resolves a token's user_id claim into a live Principal. The auth
// package supplies the implementation so this package stays free of model
// imports.
type UserLookup func(ctx context.Context, userID uint) (*Principal, error)

// AuthMiddleware handles JWT authentication and sets up the request principal
func AuthMiddleware(cfg *config.Config, lookup UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTAccessSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		// Refresh tokens are signed with a different secret, but reject the
		// type claim explicitly in case the secrets are ever configured equal.
		if tokenType, _ := claims["type"].(string); tokenType != "access" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token type"})
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_id missing in token"})
			return
		}

		principal, err := lookup(c.Request.Context(), uint(userIDFloat))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		if !principal.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account is deactivated"})
			return
		}

		c.Set("principal", principal)
		c.Set("user_id", principal.UserID)
		c.Set("claims", claims)

		c.Next()
	}
}

// GetPrincipal retrieves the authenticated principal, aborting with 401 when
// the handler is reached without AuthMiddleware having run.
func GetPrincipal(c *gin.Context) (*Principal, bool) {
	v, exists := c.Get("principal")
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return nil, false
	}
	principal, ok := v.(*Principal)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return nil, false
	}
	return principal, true
}
