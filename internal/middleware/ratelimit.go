package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// rateLimiter tracks request timestamps per client IP over a sliding window.
// Extraction requests are CPU-heavy, so the window is enforced strictly.
type rateLimiter struct {
	mu     sync.Mutex
	seen   map[string][]time.Time
	limit  int
	window time.Duration
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		seen:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
	}
	go rl.sweep()
	return rl
}

// allow records the request and reports whether the client is under the limit
func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	recent := rl.prune(rl.seen[ip], now)
	if len(recent) >= rl.limit {
		rl.seen[ip] = recent
		return false
	}
	rl.seen[ip] = append(recent, now)
	return true
}

// prune drops timestamps that have left the window
func (rl *rateLimiter) prune(times []time.Time, now time.Time) []time.Time {
	kept := times[:0]
	for _, t := range times {
		if now.Sub(t) < rl.window {
			kept = append(kept, t)
		}
	}
	return kept
}

// sweep periodically evicts idle clients so the map does not grow unbounded
func (rl *rateLimiter) sweep() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, times := range rl.seen {
			if kept := rl.prune(times, now); len(kept) == 0 {
				delete(rl.seen, ip)
			} else {
				rl.seen[ip] = kept
			}
		}
		rl.mu.Unlock()
	}
}

// RateLimit limits each client IP to limit requests per window
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	rl := newRateLimiter(limit, window)

	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
