package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// ipHeaders are checked in order before falling back to RemoteAddr
var ipHeaders = []string{"X-Forwarded-For", "X-Real-Ip", "CF-Connecting-IP"}

// AuditMiddleware resolves the client IP once per request so audit entries for
// the same request agree on it even behind a proxy chain.
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("client_ip", clientIP(c))
		c.Next()
	}
}

func clientIP(c *gin.Context) string {
	for _, header := range ipHeaders {
		value := c.GetHeader(header)
		if value == "" {
			continue
		}
		// X-Forwarded-For may hold a chain; the first hop is the client
		candidate := strings.TrimSpace(strings.SplitN(value, ",", 2)[0])
		if net.ParseIP(candidate) != nil {
			return candidate
		}
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return ip
}

// GetIPFromContext retrieves the resolved client IP for audit logging
func GetIPFromContext(c *gin.Context) string {
	if ip, exists := c.Get("client_ip"); exists {
		if s, ok := ip.(string); ok {
			return s
		}
	}
	return clientIP(c)
}
