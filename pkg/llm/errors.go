package llm

import (
	"fmt"
	"strings"
)

// Error is a structured LLM error carrying retryability, so pkg/retry can
// decide whether another attempt is worth it without string matching.
type Error struct {
	Message    string
	Retryable  bool
	Cause      error
	StatusCode int // HTTP status code if applicable
	Model      string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var parts []string
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("HTTP %d", e.StatusCode))
	}
	if e.Model != "" {
		parts = append(parts, fmt.Sprintf("model=%s", e.Model))
	}
	parts = append(parts, e.Message)

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", strings.Join(parts, " "), e.Cause)
	}
	return strings.Join(parts, " ")
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsRetryable implements the retry.RetryableError interface.
func (e *Error) IsRetryable() bool {
	return e.Retryable
}

// retryableStatus reports whether an HTTP status from a provider is worth
// retrying: rate limits and server-side failures are, everything else is not.
func retryableStatus(code int) bool {
	return code == 429 || code >= 500
}
