package handlers

import (
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"foliogen/internal/config"
	"foliogen/internal/logging"
	"foliogen/internal/pipeline"
	"foliogen/pkg/models"
	"foliogen/pkg/utils"
)

var portfolioValidator = validator.New()

// PipelineFactory builds a ready-to-run pipeline for the given effective
// configuration. Per-request model overrides arrive as a modified copy of
// the server config.
type PipelineFactory func(cfg *config.Config) (*pipeline.Pipeline, error)

// GeneratePortfolioHandler handles POST /api/v1/portfolio/generate. The
// pipeline monopolizes the inference server's accelerator, so only one run
// may be in flight: concurrent requests get 409.
func GeneratePortfolioHandler(cfg *config.Config, buildPipeline PipelineFactory) echo.HandlerFunc {
	var running sync.Mutex

	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()

		c.Set("request_id", requestID)

		var req models.GeneratePortfolioRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to parse request body", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusBadRequest, models.NewErrorResponse(
				"invalid_request", "Invalid request body: "+err.Error(), requestID))
		}

		if err := portfolioValidator.Struct(&req); err != nil {
			logger.Error("Request validation failed", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusBadRequest, models.NewErrorResponse(
				"validation_failed", "Request validation failed: "+err.Error(), requestID))
		}

		if !running.TryLock() {
			logger.Warn("Rejecting concurrent generation request", map[string]interface{}{
				"request_id": requestID,
			})
			return c.JSON(http.StatusConflict, models.NewErrorResponse(
				"generation_in_progress",
				"A portfolio generation run is already in flight; retry when it completes",
				requestID))
		}
		defer running.Unlock()

		logger.Info("Processing portfolio generation request", map[string]interface{}{
			"request_id": requestID,
			"endpoint":   "/api/v1/portfolio/generate",
			"file_path":  req.FilePath,
		})

		effective := *cfg
		effective.LLM.BrainModel = utils.GetStringOrDefault(req.BrainModel, cfg.LLM.BrainModel)
		effective.LLM.CoderModel = utils.GetStringOrDefault(req.CoderModel, cfg.LLM.CoderModel)

		p, err := buildPipeline(&effective)
		if err != nil {
			logger.Error("Failed to assemble pipeline", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, models.NewErrorResponse(
				"pipeline_setup_failed", err.Error(), requestID))
		}

		result := p.Run(c.Request().Context(), req.FilePath)
		result.RequestID = requestID

		if !result.Success {
			return c.JSON(statusForKind(result.ErrorKind), result)
		}
		return c.JSON(http.StatusOK, result)
	}
}

// statusForKind maps a pipeline error kind to the HTTP status its
// constructor carries
func statusForKind(kind string) int {
	switch utils.ErrorKind(kind) {
	case utils.KindDocumentExtraction:
		return http.StatusUnprocessableEntity
	case utils.KindInferenceTimeout:
		return http.StatusGatewayTimeout
	case utils.KindServerUnavailable, utils.KindModelNotFound,
		utils.KindExtractionParse, utils.KindSchemaMismatch, utils.KindGenerationParse:
		return http.StatusBadGateway
	case utils.KindPersistence:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
