package reply

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrNoAPIKey is returned when the API key is missing.
	ErrNoAPIKey = errors.New("reply: API key required")

	// ErrNoCandidates is returned when the model responds without any
	// candidates. A valid response shape, but unusable.
	ErrNoCandidates = errors.New("reply: response contained no candidates")
)

// APIError represents an error response from the model endpoint.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("reply: API error %d: %s", e.StatusCode, e.Message)
}

// wrap adds package context to an error.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("reply: %w", err)
}
