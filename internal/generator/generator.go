package generator

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

// CompletionClient is the slice of the inference manager the generator needs
type CompletionClient interface {
	Complete(ctx context.Context, req models.CompletionRequest) (string, error)
	Unload(ctx context.Context, model string) error
}

// Generator is Phase 2 of the pipeline: it maps a structured CV record onto
// a complete self-contained portfolio page using a code-tier model.
type Generator struct {
	client        CompletionClient
	model         string
	temperature   float32
	contextWindow int
	maxTokens     int
	logger        logging.Logger
}

// NewGenerator creates a new portfolio generator
func NewGenerator(cfg *config.Config, client CompletionClient) *Generator {
	return &Generator{
		client:        client,
		model:         cfg.LLM.CoderModel,
		temperature:   cfg.LLM.GenerationTemperature,
		contextWindow: cfg.LLM.ContextWindow,
		maxTokens:     cfg.LLM.MaxTokens,
		logger:        logging.GetGlobalLogger(),
	}
}

// ModelName returns the model the generator invokes
func (g *Generator) ModelName() string {
	return g.model
}

// Generate produces a complete HTML document from the structured record.
// The prompt restates the anti-hallucination contract: only facts present
// in cv may appear in the page. Output fidelity is bounded by the prompt,
// not mechanically enforced.
func (g *Generator) Generate(ctx context.Context, cv *models.CV) (string, error) {
	startTime := time.Now()

	g.logger.Info("Starting portfolio generation", map[string]interface{}{
		"model": g.model,
		"phase": "generation",
	})

	// Canonical JSON form of the record is what the model sees
	data, err := json.MarshalIndent(cv, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize CV record: %w", err)
	}

	defer func() {
		unloadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := g.client.Unload(unloadCtx, g.model); err != nil {
			g.logger.Warn("Model unload failed (may not be loaded)", map[string]interface{}{
				"model": g.model,
				"error": err.Error(),
			})
		}
	}()

	completion, err := g.client.Complete(ctx, models.CompletionRequest{
		Model:    g.model,
		Messages: buildGenerationMessages(string(data)),
		Options: models.CompletionOptions{
			Temperature:   g.temperature,
			ContextWindow: g.contextWindow,
			MaxTokens:     g.maxTokens,
		},
	})
	if err != nil {
		return "", err
	}

	html, err := processors.ExtractHTML(completion)
	if err != nil {
		return "", utils.NewGenerationParseError(fmt.Sprintf("model %s: %v", g.model, err))
	}

	html, injected := EnsureVisibilityFixes(html)
	if injected {
		g.logger.Warn("Generated page was missing the animation visibility fallback, injected it", map[string]interface{}{
			"model": g.model,
		})
	}

	g.logger.Info("Portfolio generation complete", map[string]interface{}{
		"model":           g.model,
		"html_length":     len(html),
		"processing_time": time.Since(startTime).String(),
		"phase":           "generation",
	})

	return html, nil
}
