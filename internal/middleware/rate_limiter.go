package middleware

import (
	"sync"
	"time"

	"transaction-analytics/internal/errors"
	"transaction-analytics/internal/handlers"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// visitor is one client IP's token bucket. lastSeen drives eviction of
// idle entries.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*visitor)
	mu       sync.RWMutex

	requestsPerSecond = 5
	burstSize         = 10
)

const staleVisitorAge = 3 * time.Minute

// RateLimiter enforces a per-IP token bucket. Rejected requests get
// the SYSTEM_004 envelope rather than a bare 429.
func RateLimiter() echo.MiddlewareFunc {
	go evictStaleVisitors()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiterFor(getIP(c)).Allow() {
				return handlers.SendError(c, errors.SystemRateLimitExceeded)
			}
			return next(c)
		}
	}
}

// RateLimiterWithConfig overrides the default rate and burst before
// building the middleware.
func RateLimiterWithConfig(rps int, burst int) echo.MiddlewareFunc {
	requestsPerSecond = rps
	burstSize = burst
	return RateLimiter()
}

func limiterFor(ip string) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	if v, ok := visitors[ip]; ok {
		v.lastSeen = time.Now()
		return v.limiter
	}

	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize)
	visitors[ip] = &visitor{limiter: limiter, lastSeen: time.Now()}
	return limiter
}

// getIP prefers proxy-forwarded addresses over the socket peer.
func getIP(c echo.Context) string {
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := c.Request().Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.RealIP()
}

func evictStaleVisitors() {
	for {
		time.Sleep(time.Minute)

		mu.Lock()
		for ip, v := range visitors {
			if time.Since(v.lastSeen) > staleVisitorAge {
				delete(visitors, ip)
			}
		}
		mu.Unlock()
	}
}
