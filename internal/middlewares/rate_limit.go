package middlewares

import (
	"net/http"
	"time"

	"eto-audiobook-api/internal/cache"

	"github.com/gin-gonic/gin"
)

// RateLimit enforces a fixed-window per-client request budget backed by the
// shared cache store. When the backing store is unavailable the limiter
// degrades to a no-op instead of blocking traffic.
func RateLimit(store cache.Store, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || !store.Enabled() || perMinute <= 0 {
			c.Next()
			return
		}

		key := "ratelimit:" + c.ClientIP()
		count := store.Incr(c.Request.Context(), key, time.Minute)
		if count > int64(perMinute) {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}

		c.Next()
	}
}
