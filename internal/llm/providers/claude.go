package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"foliogen/internal/config"
	"foliogen/internal/logging"
	"foliogen/pkg/models"
	"foliogen/pkg/utils"
)

// ClaudeProvider implements the inference provider interface using
// Anthropic's Claude. It is the hosted alternative to the local Ollama
// backend; both phases work against either.
type ClaudeProvider struct {
	client anthropic.Client
	config *config.Config
	logger logging.Logger
}

// NewClaudeProvider creates a new Claude provider instance
func NewClaudeProvider(cfg *config.Config) *ClaudeProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.LLM.APIKey),
	)

	return &ClaudeProvider{
		client: client,
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// Complete sends a conversation to the Anthropic API and returns the full
// text completion
func (cp *ClaudeProvider) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	startTime := time.Now()

	cp.logger.Info("Sending completion request to Claude", map[string]interface{}{
		"model":    req.Model,
		"messages": len(req.Messages),
		"provider": "claude",
	})

	// The Anthropic API takes system turns separately from the conversation
	var system []anthropic.TextBlockParam
	var conversation []anthropic.MessageParam
	for _, msg := range req.Messages {
		switch msg.Role {
		case models.RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: msg.Content})
		case models.RoleAssistant:
			conversation = append(conversation, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			conversation = append(conversation, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   int64(req.Options.MaxTokens),
		Temperature: anthropic.Float(float64(req.Options.Temperature)),
		System:      system,
		Messages:    conversation,
	})
	if err != nil {
		return "", cp.mapError(req.Model, err)
	}

	if len(response.Content) == 0 {
		return "", utils.NewServerUnavailableError("empty response from Claude")
	}

	var completion string
	for _, content := range response.Content {
		textContent := content.AsText()
		completion = textContent.Text
		break
	}

	if completion == "" {
		return "", utils.NewServerUnavailableError("no text content in Claude response")
	}

	cp.logger.Info("Claude completion finished", map[string]interface{}{
		"model":             req.Model,
		"completion_length": len(completion),
		"processing_time":   time.Since(startTime).String(),
		"provider":          "claude",
	})

	return completion, nil
}

// Unload is a no-op for a hosted backend; there is no local working set to
// release
func (cp *ClaudeProvider) Unload(ctx context.Context, model string) error {
	return nil
}

// IsHealthy checks if the Claude provider is configured and reachable
func (cp *ClaudeProvider) IsHealthy(ctx context.Context) error {
	if cp.config.LLM.APIKey == "" {
		return utils.NewServerUnavailableError("Claude API key not configured - set LLM_API_KEY environment variable")
	}

	_, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(cp.config.LLM.BrainModel),
		MaxTokens: 10,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("ping")),
		},
	})
	if err != nil {
		return cp.mapError(cp.config.LLM.BrainModel, err)
	}
	return nil
}

// GetProviderName returns the name of the provider
func (cp *ClaudeProvider) GetProviderName() string {
	return "claude"
}

// mapError classifies an Anthropic API error into the pipeline taxonomy
func (cp *ClaudeProvider) mapError(model string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return utils.NewInferenceTimeoutError(model, err.Error())
	}

	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		if apierr.StatusCode == http.StatusNotFound {
			return utils.NewModelNotFoundError(model, err.Error())
		}
		return utils.NewServerUnavailableError(fmt.Sprintf("Anthropic API error (status %d): %v", apierr.StatusCode, err))
	}

	return utils.NewServerUnavailableError(err.Error())
}
