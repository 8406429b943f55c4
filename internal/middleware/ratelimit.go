package middleware

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fieldcheck/internal/ratelimit"
)

// RequestLimiter admits or refuses one call for a key.
type RequestLimiter interface {
	Check(ctx context.Context, key string) error
}

// RateLimit refuses requests once the client has used up its window. The key
// combines the client address with whether an Authorization header was sent.
func RateLimit(limiter RequestLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ratelimit.RequestKey(c.ClientIP(), c.GetHeader("Authorization") != "")
		err := limiter.Check(c.Request.Context(), key)
		if err == nil {
			c.Next()
			return
		}

		var exceeded *ratelimit.ExceededError
		if errors.As(err, &exceeded) {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(exceeded.RetryAfter.Seconds()))))
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"success": false,
			"error":   gin.H{"code": "RATE_LIMIT_EXCEEDED", "message": "too many requests; retry later"},
		})
	}
}
