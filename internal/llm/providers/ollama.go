package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"foliogen/internal/config"
	"foliogen/internal/logging"
	"foliogen/pkg/models"
	"foliogen/pkg/utils"
)

// OllamaProvider implements the inference provider interface against a local
// Ollama server's HTTP API
type OllamaProvider struct {
	baseURL    string
	httpClient *http.Client
	config     *config.Config
	logger     logging.Logger
}

// NewOllamaProvider creates a new Ollama provider instance
func NewOllamaProvider(cfg *config.Config) *OllamaProvider {
	return &OllamaProvider{
		baseURL: strings.TrimRight(cfg.LLM.Host, "/"),
		httpClient: &http.Client{
			Timeout: cfg.LLM.Timeout,
		},
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// chatRequest is the Ollama /api/chat request body
type chatRequest struct {
	Model    string           `json:"model"`
	Messages []models.Message `json:"messages"`
	Stream   bool             `json:"stream"`
	Format   string           `json:"format,omitempty"`
	Options  map[string]any   `json:"options,omitempty"`
}

// chatResponse is the Ollama /api/chat response body (non-streaming)
type chatResponse struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done  bool   `json:"done"`
	Error string `json:"error"`
}

// Complete sends a conversation to /api/chat and returns the full completion
func (op *OllamaProvider) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	startTime := time.Now()

	op.logger.Info("Sending completion request to Ollama", map[string]interface{}{
		"model":    req.Model,
		"messages": len(req.Messages),
		"provider": "ollama",
	})

	body := chatRequest{
		Model:    req.Model,
		Messages: req.Messages,
		Stream:   false,
		Options: map[string]any{
			"temperature": req.Options.Temperature,
			"num_ctx":     req.Options.ContextWindow,
			"num_predict": req.Options.MaxTokens,
		},
	}
	if req.Options.JSONOnly {
		body.Format = "json"
	}

	var out chatResponse
	if err := op.post(ctx, "/api/chat", body, &out, req.Model); err != nil {
		return "", err
	}

	if out.Error != "" {
		return "", mapServerError(req.Model, out.Error)
	}

	op.logger.Info("Ollama completion finished", map[string]interface{}{
		"model":             req.Model,
		"completion_length": len(out.Message.Content),
		"processing_time":   time.Since(startTime).String(),
		"provider":          "ollama",
	})

	return out.Message.Content, nil
}

// Unload asks the server to evict the model from memory. A generate call
// with keep_alive 0 releases the model immediately.
func (op *OllamaProvider) Unload(ctx context.Context, model string) error {
	op.logger.Debug("Unloading model from inference server", map[string]interface{}{
		"model":    model,
		"provider": "ollama",
	})

	body := map[string]any{
		"model":      model,
		"keep_alive": 0,
	}

	var out struct {
		Error string `json:"error"`
	}
	if err := op.post(ctx, "/api/generate", body, &out, model); err != nil {
		return err
	}
	if out.Error != "" {
		return mapServerError(model, out.Error)
	}
	return nil
}

// IsHealthy checks if the Ollama server is reachable
func (op *OllamaProvider) IsHealthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, op.baseURL+"/api/tags", nil)
	if err != nil {
		return err
	}

	resp, err := op.httpClient.Do(req)
	if err != nil {
		return utils.NewServerUnavailableError(fmt.Sprintf("cannot reach Ollama at %s: %v", op.baseURL, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return utils.NewServerUnavailableError(fmt.Sprintf("Ollama health check returned status %d", resp.StatusCode))
	}
	return nil
}

// GetProviderName returns the name of the provider
func (op *OllamaProvider) GetProviderName() string {
	return "ollama"
}

// post sends a JSON request and decodes the JSON response, mapping transport
// and server failures onto the pipeline error taxonomy.
func (op *OllamaProvider) post(ctx context.Context, path string, body any, out any, model string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, op.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := op.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return utils.NewInferenceTimeoutError(model, err.Error())
		}
		return utils.NewServerUnavailableError(fmt.Sprintf("cannot reach Ollama at %s: %v", op.baseURL, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return utils.NewServerUnavailableError(fmt.Sprintf("failed to read Ollama response: %v", err))
	}

	if resp.StatusCode != http.StatusOK {
		var serverErr struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &serverErr)
		detail := serverErr.Error
		if detail == "" {
			detail = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return mapServerError(model, detail)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return utils.NewServerUnavailableError(fmt.Sprintf("malformed Ollama response: %v", err))
	}
	return nil
}

// mapServerError classifies an Ollama error message into the taxonomy
func mapServerError(model, detail string) error {
	if strings.Contains(strings.ToLower(detail), "not found") {
		return utils.NewModelNotFoundError(model, detail)
	}
	return utils.NewServerUnavailableError(detail)
}

// isTimeout reports whether a client error is a bounded-wait expiry rather
// than an unreachable endpoint
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
