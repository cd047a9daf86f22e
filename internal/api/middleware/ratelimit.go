package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitConfig returns an in-memory per-IP rate limiter allowing
// requestsPerMinute sustained requests
func RateLimitConfig(requestsPerMinute float64) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(requestsPerMinute / 60.0),
			Burst:     int(requestsPerMinute),
			ExpiresIn: 3 * time.Minute,
		}),
	})
}
