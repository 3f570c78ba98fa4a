package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// SigninThrottle caps sign-in attempts per client IP with a fixed Redis
// window. Abuse control only; tokens and sessions are never cached here.
func SigninThrottle(client *redis.Client, maxAttempts int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("signin:%s", c.ClientIP())

		count, err := client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			// Redis being down should not lock everyone out of sign-in.
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(c.Request.Context(), key, window)
		}

		if count > int64(maxAttempts) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too_many_attempts"})
			return
		}

		c.Next()
	}
}
