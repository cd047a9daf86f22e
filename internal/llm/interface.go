package llm

import (
	"context"

	"foliogen/pkg/models"
)

// Provider defines the interface for inference backends
type Provider interface {
	// Complete sends a conversation to the backend and returns the raw
	// text completion
	Complete(ctx context.Context, req models.CompletionRequest) (string, error)

	// Unload asks the backend to release the model's working set. Best
	// effort: phases run sequentially so at most one model stays resident
	// on memory-constrained hardware.
	Unload(ctx context.Context, model string) error

	// IsHealthy checks if the backend is reachable and available
	IsHealthy(ctx context.Context) error

	// GetProviderName returns the name of the provider
	GetProviderName() string
}
