package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies pipeline failures. Every kind except SchemaMismatch
// aborts the run at the stage where it occurred.
type ErrorKind string

const (
	KindDocumentExtraction ErrorKind = "document_extraction_error"
	KindServerUnavailable  ErrorKind = "server_unavailable"
	KindModelNotFound      ErrorKind = "model_not_found"
	KindInferenceTimeout   ErrorKind = "inference_timeout"
	KindExtractionParse    ErrorKind = "extraction_parse_error"
	KindSchemaMismatch     ErrorKind = "schema_mismatch"
	KindGenerationParse    ErrorKind = "generation_parse_error"
	KindPersistence        ErrorKind = "persistence_error"
)

// PipelineError represents a classified application error
type PipelineError struct {
	Kind    ErrorKind `json:"kind"`
	Code    int       `json:"code"`
	Message string    `json:"message"`
	Detail  string    `json:"detail,omitempty"`
}

func (e *PipelineError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// KindOf returns the error kind of err, or "" when err carries none
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// Common error constructors

func NewDocumentExtractionError(detail string) *PipelineError {
	return &PipelineError{
		Kind:    KindDocumentExtraction,
		Code:    http.StatusUnprocessableEntity,
		Message: "Document text extraction failed",
		Detail:  detail,
	}
}

func NewServerUnavailableError(detail string) *PipelineError {
	return &PipelineError{
		Kind:    KindServerUnavailable,
		Code:    http.StatusBadGateway,
		Message: "Inference server unavailable",
		Detail:  detail,
	}
}

func NewModelNotFoundError(model, detail string) *PipelineError {
	return &PipelineError{
		Kind:    KindModelNotFound,
		Code:    http.StatusBadGateway,
		Message: fmt.Sprintf("Model %q not available on inference server", model),
		Detail:  detail,
	}
}

func NewInferenceTimeoutError(model, detail string) *PipelineError {
	return &PipelineError{
		Kind:    KindInferenceTimeout,
		Code:    http.StatusGatewayTimeout,
		Message: fmt.Sprintf("Inference timed out waiting for model %q", model),
		Detail:  detail,
	}
}

func NewExtractionParseError(detail string) *PipelineError {
	return &PipelineError{
		Kind:    KindExtractionParse,
		Code:    http.StatusBadGateway,
		Message: "No parsable JSON object in analysis completion",
		Detail:  detail,
	}
}

// NewSchemaMismatchError is recoverable: callers default the missing fields
// and continue with a partial record.
func NewSchemaMismatchError(detail string) *PipelineError {
	return &PipelineError{
		Kind:    KindSchemaMismatch,
		Code:    http.StatusBadGateway,
		Message: "Analysis completion missing required top-level keys",
		Detail:  detail,
	}
}

func NewGenerationParseError(detail string) *PipelineError {
	return &PipelineError{
		Kind:    KindGenerationParse,
		Code:    http.StatusBadGateway,
		Message: "No complete HTML document in generation completion",
		Detail:  detail,
	}
}

func NewPersistenceError(detail string) *PipelineError {
	return &PipelineError{
		Kind:    KindPersistence,
		Code:    http.StatusInternalServerError,
		Message: "Failed to persist pipeline artifact",
		Detail:  detail,
	}
}
