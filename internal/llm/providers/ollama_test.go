package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foliogen/internal/config"
	"foliogen/pkg/models"
	"foliogen/pkg/utils"
)

func providerFor(t *testing.T, serverURL string) *OllamaProvider {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.LLM.Host = serverURL
	return NewOllamaProvider(cfg)
}

func completionRequest() models.CompletionRequest {
	return models.CompletionRequest{
		Model: "deepseek-r1:7b",
		Messages: []models.Message{
			{Role: models.RoleSystem, Content: "extract"},
			{Role: models.RoleUser, Content: "cv text"},
		},
		Options: models.CompletionOptions{
			Temperature:   0.3,
			ContextWindow: 8192,
			MaxTokens:     4096,
			JSONOnly:      true,
		},
	}
}

func TestCompleteSuccess(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{"role": "assistant", "content": `{"personal": {}}`},
			"done":    true,
		})
	}))
	defer srv.Close()

	p := providerFor(t, srv.URL)
	out, err := p.Complete(context.Background(), completionRequest())
	require.NoError(t, err)
	assert.Equal(t, `{"personal": {}}`, out)

	// Request shape: non-streaming, JSON-constrained, options forwarded
	assert.Equal(t, "deepseek-r1:7b", got.Model)
	assert.False(t, got.Stream)
	assert.Equal(t, "json", got.Format)
	assert.Len(t, got.Messages, 2)
	assert.EqualValues(t, 8192, got.Options["num_ctx"])
	assert.EqualValues(t, 4096, got.Options["num_predict"])
}

func TestCompleteModelNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": `model "nope:1b" not found, try pulling it first`})
	}))
	defer srv.Close()

	p := providerFor(t, srv.URL)
	_, err := p.Complete(context.Background(), completionRequest())
	require.Error(t, err)
	assert.Equal(t, utils.KindModelNotFound, utils.KindOf(err))
}

func TestCompleteServerUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	p := providerFor(t, srv.URL)
	_, err := p.Complete(context.Background(), completionRequest())
	require.Error(t, err)
	assert.Equal(t, utils.KindServerUnavailable, utils.KindOf(err))
}

func TestCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	p := providerFor(t, srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Complete(ctx, completionRequest())
	require.Error(t, err)
	assert.Equal(t, utils.KindInferenceTimeout, utils.KindOf(err))
}

func TestCompleteErrorInBody(t *testing.T) {
	// Ollama sometimes reports failures in a 200 body
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"error": "something went wrong"})
	}))
	defer srv.Close()

	p := providerFor(t, srv.URL)
	_, err := p.Complete(context.Background(), completionRequest())
	require.Error(t, err)
	assert.Equal(t, utils.KindServerUnavailable, utils.KindOf(err))
}

func TestUnloadSendsZeroKeepAlive(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"done": true})
	}))
	defer srv.Close()

	p := providerFor(t, srv.URL)
	require.NoError(t, p.Unload(context.Background(), "deepseek-r1:7b"))
	assert.Equal(t, "deepseek-r1:7b", got["model"])
	assert.EqualValues(t, 0, got["keep_alive"])
}

func TestIsHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"models": []any{}})
	}))
	defer srv.Close()

	p := providerFor(t, srv.URL)
	assert.NoError(t, p.IsHealthy(context.Background()))

	srv.Close()
	err := p.IsHealthy(context.Background())
	require.Error(t, err)
	assert.Equal(t, utils.KindServerUnavailable, utils.KindOf(err))
}
