package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SelectiveTimeoutConfig applies a short timeout to ordinary endpoints and a
// long one to generation endpoints, which hold the connection open for the
// whole two-model run
func SelectiveTimeoutConfig(defaultTimeout, generationTimeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			timeout := defaultTimeout
			if strings.HasPrefix(c.Path(), "/api/v1/portfolio") {
				timeout = generationTimeout
			}
			return middleware.TimeoutWithConfig(middleware.TimeoutConfig{
				Timeout: timeout,
			})(next)(c)
		}
	}
}
