package routes

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"foliogen/internal/api/handlers"
	"foliogen/internal/api/middleware"
	"foliogen/internal/config"
	"foliogen/internal/llm"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, llmManager *llm.Manager, buildPipeline handlers.PipelineFactory) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RateLimitConfig(cfg.Server.RateLimit))
	// Short timeout for probes; a generation request spans two model calls,
	// each individually bounded, so its budget covers both plus a margin
	e.Use(middleware.SelectiveTimeoutConfig(cfg.Server.ReadTimeout, generationBudget(cfg)))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(llmManager))
		health.GET("/live", handlers.LivenessHandler)
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(llmManager))

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		portfolio := v1.Group("/portfolio")
		{
			portfolio.POST("/generate", handlers.GeneratePortfolioHandler(cfg, buildPipeline))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"service": "Foliogen Portfolio Generator",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}

// generationBudget bounds a whole generation request. Each model call is
// individually limited to cfg.LLM.Timeout by the provider's HTTP client, so
// two back-to-back calls at their limit must still fit, with the read
// timeout as margin for extraction and persistence.
func generationBudget(cfg *config.Config) time.Duration {
	return 2*cfg.LLM.Timeout + cfg.Server.ReadTimeout
}
