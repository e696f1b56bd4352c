package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// ipWindow tracks request counts for one client IP in the current
// fixed window.
type ipWindow struct {
	count   int
	resetAt time.Time
}

// RateLimit returns middleware that caps requests per client IP at
// maxRequests within each window. It is the coarse abuse guard in
// front of the finer per-key limiter in the apikey plugin; health
// probes bypass it so orchestrators never see 429s.
//
// Counters live in process memory. A stale-entry sweep runs in the
// background; single-instance deployments need nothing more.
func RateLimit(maxRequests int, window time.Duration) echo.MiddlewareFunc {
	var mu sync.Mutex
	windows := make(map[string]*ipWindow)

	go func() {
		for {
			time.Sleep(time.Minute)
			mu.Lock()
			now := time.Now()
			for ip, w := range windows {
				if now.After(w.resetAt.Add(window)) {
					delete(windows, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().URL.Path == "/healthz" {
				return next(c)
			}

			ip := c.RealIP()
			now := time.Now()

			mu.Lock()
			w, ok := windows[ip]
			if !ok || now.After(w.resetAt) {
				w = &ipWindow{resetAt: now.Add(window)}
				windows[ip] = w
			}
			w.count++
			exceeded := w.count > maxRequests
			retryAfter := int(time.Until(w.resetAt).Seconds()) + 1
			mu.Unlock()

			if exceeded {
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
