package models

import "time"

// Artifacts lists the files persisted by one pipeline run. Paths are empty
// for stages the run never reached.
type Artifacts struct {
	RawTextPath string `json:"raw_text_path,omitempty"`
	DataPath    string `json:"data_path,omitempty"`
	IndexPath   string `json:"index_path,omitempty"`
	ArchivePath string `json:"archive_path,omitempty"`
}

// RunResult is the outcome of a single pipeline run
type RunResult struct {
	Success        bool          `json:"success"`
	Stage          string        `json:"stage"` // terminal stage: done or the stage that failed
	Error          string        `json:"error,omitempty"`
	ErrorKind      string        `json:"error_kind,omitempty"`
	Artifacts      Artifacts     `json:"artifacts"`
	ProcessingTime time.Duration `json:"processing_time"`
	RequestID      string        `json:"request_id,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewErrorResponse builds an API error response
func NewErrorResponse(errType, message, requestID string) ErrorResponse {
	return ErrorResponse{
		Error:     errType,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now(),
	}
}
