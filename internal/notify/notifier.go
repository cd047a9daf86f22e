package notify

import (
	"fmt"
	"os"

	"foliogen/internal/logging"
)

// Status classifies the outcome a notification reports
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Notifier delivers run-completion signals to the user. Delivery is
// best-effort: a notifier must never fail the run it reports on.
type Notifier interface {
	Notify(status Status, title, message string)
}

// ConsoleNotifier writes completion signals to stderr, keeping stdout clean
// for anything the caller pipes
type ConsoleNotifier struct{}

// NewConsoleNotifier creates a notifier that prints to the terminal
func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

// Notify prints a one-line completion banner
func (n *ConsoleNotifier) Notify(status Status, title, message string) {
	marker := "OK"
	if status == StatusFailure {
		marker = "FAILED"
	}
	fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", marker, title, message)
}

// LoggerNotifier routes completion signals through the structured logger,
// used by the HTTP surface where there is no terminal to print to
type LoggerNotifier struct {
	logger logging.Logger
}

// NewLoggerNotifier creates a notifier backed by the global logger
func NewLoggerNotifier() *LoggerNotifier {
	return &LoggerNotifier{
		logger: logging.GetGlobalLogger(),
	}
}

// Notify logs the completion signal at a level matching its status
func (n *LoggerNotifier) Notify(status Status, title, message string) {
	fields := map[string]interface{}{
		"title":  title,
		"status": string(status),
	}
	if status == StatusFailure {
		n.logger.Error(message, fields)
		return
	}
	n.logger.Info(message, fields)
}
