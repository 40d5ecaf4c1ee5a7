package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/lawfolio/lawfolio/backend/site-service/pkg/metrics"
	"golang.org/x/time/rate"
)

// clientKey prefers the authenticated subject and falls back to the client IP.
func clientKey(c *gin.Context) string {
	if sub := Subject(c); sub != "" {
		return "sub:" + sub
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

func rejected(c *gin.Context, limiter, scope, retryAfter string) {
	c.Header("Retry-After", retryAfter)
	metrics.RateLimitRejected.WithLabelValues(limiter, scope).Inc()
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
}

// RateLimitMiddleware returns a Gin middleware enforcing an in-memory token
// bucket per client. scope names the protected surface (e.g. "messages") and
// gets its own set of buckets.
// rps = allowed events per second, burst = maximum tokens in bucket.
func RateLimitMiddleware(scope string, rps float64, burst int) gin.HandlerFunc {
	var store sync.Map // key -> *rate.Limiter
	get := func(key string) *rate.Limiter {
		if v, ok := store.Load(key); ok {
			return v.(*rate.Limiter)
		}
		v, _ := store.LoadOrStore(key, rate.NewLimiter(rate.Limit(rps), burst))
		return v.(*rate.Limiter)
	}
	return func(c *gin.Context) {
		if !get(clientKey(c)).Allow() {
			rejected(c, "memory", scope, "1")
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory", scope).Inc()
		c.Next()
	}
}
