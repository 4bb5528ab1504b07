package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/jengzang/flightarcs-backend-go/pkg/response"
)

// maxTrackedClients bounds the number of per-IP buckets kept in memory.
const maxTrackedClients = 10000

// RateLimiter gives each client IP a token bucket that holds limit tokens
// and refills completely once per window. Idle buckets expire after a few
// windows, at which point the client starts again with a full bucket.
type RateLimiter struct {
	buckets *expirable.LRU[string, *rate.Limiter]
	every   rate.Limit
	burst   int
	now     func() time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets: expirable.NewLRU[string, *rate.Limiter](maxTrackedClients, nil, 2*window),
		every:   rate.Every(window / time.Duration(limit)),
		burst:   limit,
		now:     time.Now,
	}
}

func (rl *RateLimiter) bucket(ip string) *rate.Limiter {
	if l, ok := rl.buckets.Get(ip); ok {
		return l
	}
	l := rate.NewLimiter(rl.every, rl.burst)
	rl.buckets.Add(ip, l)
	return l
}

// Allow reports whether a request from ip may proceed and takes a token if so
func (rl *RateLimiter) Allow(ip string) bool {
	return rl.bucket(ip).AllowN(rl.now(), 1)
}

// RateLimit middleware limits requests per IP
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if limiter.Allow(ip) {
			c.Next()
			return
		}

		slog.Warn("[RateLimit] limit exceeded", "ip", ip, "path", c.FullPath())
		response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
	}
}
