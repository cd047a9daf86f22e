package llm

import (
	"fmt"

	"foliogen/internal/config"
	"foliogen/internal/llm/providers"
)

// Factory creates inference provider instances
type Factory struct {
	config *config.Config
}

// NewFactory creates a new provider factory instance
func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		config: cfg,
	}
}

// CreateProvider creates an inference provider based on the configuration
func (f *Factory) CreateProvider() (Provider, error) {
	switch f.config.LLM.Provider {
	case "ollama":
		return providers.NewOllamaProvider(f.config), nil
	case "claude":
		return providers.NewClaudeProvider(f.config), nil
	default:
		return nil, fmt.Errorf("unsupported inference provider: %s", f.config.LLM.Provider)
	}
}

// GetSupportedProviders returns a list of supported inference providers
func (f *Factory) GetSupportedProviders() []string {
	return []string{"ollama", "claude"}
}
