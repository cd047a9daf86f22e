package models

// Message roles understood by the inference backends
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in a conversation sent to an inference backend
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionOptions holds the sampling configuration for one completion call
type CompletionOptions struct {
	Temperature   float32 `json:"temperature"`
	ContextWindow int     `json:"context_window"`
	MaxTokens     int     `json:"max_tokens"`

	// JSONOnly asks the backend for schema-constrained decoding when it
	// supports it (Ollama's format=json). Used by the extraction phase.
	JSONOnly bool `json:"json_only"`
}

// CompletionRequest is a batch completion call: the full completion is
// returned once the server finishes generating, no streaming.
type CompletionRequest struct {
	Model    string            `json:"model"`
	Messages []Message         `json:"messages"`
	Options  CompletionOptions `json:"options"`
}
