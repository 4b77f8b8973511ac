package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimiter limits each client IP to limit requests per minute using an
// in-memory store. One instance is shared across all API routes.
func RateLimiter(limit int64) gin.HandlerFunc {
	if limit <= 0 {
		limit = 120
	}

	store := memory.NewStore()
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  limit,
	}

	// 🚦 Gin-compatible middleware
	return ginlimiter.NewMiddleware(limiter.New(store, rate))
}
