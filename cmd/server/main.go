package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"foliogen/internal/analyzer"
	"foliogen/internal/api/handlers"
	"foliogen/internal/api/routes"
	"foliogen/internal/config"
	"foliogen/internal/extractor"
	"foliogen/internal/generator"
	"foliogen/internal/llm"
	"foliogen/internal/logging"
	"foliogen/internal/notify"
	"foliogen/internal/pipeline"
	"foliogen/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting Foliogen portfolio generator", map[string]interface{}{
		"provider": cfg.LLM.Provider,
	})

	// Initialize inference manager
	llmManager := llm.NewManager(cfg)
	if err := llmManager.Start(); err != nil {
		logger.Error("Failed to start inference manager", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	// Pipeline factory: each request gets its own analyzer/generator so
	// per-request model overrides never leak between runs. The store and
	// the inference manager are shared.
	buildPipeline := func(effective *config.Config) (*pipeline.Pipeline, error) {
		store, err := storage.NewFileStore(effective.Output.Dir)
		if err != nil {
			return nil, err
		}
		return pipeline.New(
			extractor.NewPDFExtractor(),
			analyzer.NewAnalyzer(effective, llmManager),
			generator.NewGenerator(effective, llmManager),
			store,
			notify.NewLoggerNotifier(),
		), nil
	}

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Setup routes
	routes.SetupRoutes(e, cfg, llmManager, handlers.PipelineFactory(buildPipeline))

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		logger.Info("Stopping inference manager...")
		if err := llmManager.Stop(); err != nil {
			logger.Error("Error stopping inference manager", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Stopping HTTP server...")
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Error("Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
