package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foliogen/internal/config"
	"foliogen/internal/llm/processors"
	"foliogen/internal/logging"
	"foliogen/pkg/models"
	"foliogen/pkg/utils"
)

// CompletionClient is the slice of the inference manager the analyzer needs
type CompletionClient interface {
	Complete(ctx context.Context, req models.CompletionRequest) (string, error)
	Unload(ctx context.Context, model string) error
}

// Analyzer is Phase 1 of the pipeline: it maps raw CV text onto a structured
// record using a reasoning-tier model under strict extraction-only prompting.
type Analyzer struct {
	client        CompletionClient
	model         string
	temperature   float32
	contextWindow int
	maxTokens     int
	logger        logging.Logger
}

// NewAnalyzer creates a new CV analyzer
func NewAnalyzer(cfg *config.Config, client CompletionClient) *Analyzer {
	return &Analyzer{
		client:        client,
		model:         cfg.LLM.BrainModel,
		temperature:   cfg.LLM.AnalysisTemperature,
		contextWindow: cfg.LLM.ContextWindow,
		maxTokens:     cfg.LLM.MaxTokens,
		logger:        logging.GetGlobalLogger(),
	}
}

// ModelName returns the model the analyzer invokes
func (a *Analyzer) ModelName() string {
	return a.model
}

// Analyze extracts a structured CV record from raw document text. Every
// non-empty field of the result is expected to be a literal substring of
// rawText; the prompt forbids invention and the low temperature favors
// determinism over creativity.
func (a *Analyzer) Analyze(ctx context.Context, rawText string) (*models.CV, error) {
	startTime := time.Now()

	a.logger.Info("Starting CV analysis", map[string]interface{}{
		"model":       a.model,
		"text_length": len(rawText),
		"phase":       "analysis",
	})

	// Release the model afterwards regardless of outcome so the next phase
	// has the accelerator to itself
	defer func() {
		unloadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := a.client.Unload(unloadCtx, a.model); err != nil {
			a.logger.Warn("Model unload failed (may not be loaded)", map[string]interface{}{
				"model": a.model,
				"error": err.Error(),
			})
		}
	}()

	completion, err := a.client.Complete(ctx, models.CompletionRequest{
		Model:    a.model,
		Messages: buildExtractionMessages(rawText),
		Options: models.CompletionOptions{
			Temperature:   a.temperature,
			ContextWindow: a.contextWindow,
			MaxTokens:     a.maxTokens,
			JSONOnly:      true,
		},
	})
	if err != nil {
		return nil, err
	}

	cv, err := a.parseCompletion(completion)
	if err != nil {
		return nil, err
	}

	a.logger.Info("CV analysis complete", map[string]interface{}{
		"model":           a.model,
		"experience":      len(cv.Experience),
		"projects":        len(cv.Projects),
		"processing_time": time.Since(startTime).String(),
		"phase":           "analysis",
	})

	return cv, nil
}

// parseCompletion turns the model's completion into a CV record. A missing
// or invalid JSON payload is fatal; missing top-level keys only cost the
// fields they would have filled.
func (a *Analyzer) parseCompletion(completion string) (*models.CV, error) {
	payload, err := processors.ExtractJSON(completion)
	if err != nil {
		return nil, utils.NewExtractionParseError(fmt.Sprintf("model %s: %v", a.model, err))
	}

	var cv models.CV
	if err := json.Unmarshal([]byte(payload), &cv); err != nil {
		// A valid JSON object with mismatched field types still yields the
		// fields that did decode; prefer the partial record over aborting
		if _, ok := err.(*json.UnmarshalTypeError); !ok {
			return nil, utils.NewExtractionParseError(fmt.Sprintf("model %s: %v", a.model, err))
		}
		a.logger.Warn("Analysis completion has mismatched field types, keeping partial record", map[string]interface{}{
			"model": a.model,
			"error": err.Error(),
		})
	}

	if err := checkRequiredKeys(payload); err != nil {
		// Recoverable: the affected fields stay at their zero values
		a.logger.Warn("Analysis completion missing required keys, defaulting", map[string]interface{}{
			"model": a.model,
			"error": err.Error(),
		})
	}

	pruneLinks(&cv)
	return &cv, nil
}

// checkRequiredKeys reports a SchemaMismatch when the completion lacks the
// top-level keys the extraction prompt mandates
func checkRequiredKeys(payload string) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return utils.NewSchemaMismatchError(err.Error())
	}

	var missing []string
	for _, key := range []string{"personal", "experience"} {
		if _, ok := raw[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return utils.NewSchemaMismatchError(fmt.Sprintf("missing keys: %v", missing))
	}
	return nil
}

// pruneLinks drops link entries the model filled with nothing. Models asked
// to emit null for absent profiles sometimes emit the string "null" instead.
func pruneLinks(cv *models.CV) {
	for platform, url := range cv.Links {
		if url == "" || url == "null" {
			delete(cv.Links, platform)
		}
	}
	if len(cv.Links) == 0 {
		cv.Links = nil
	}
}
