package synth

import (
	"errors"
	"fmt"

	"github.com/voxlane/voxlane/pkg/voices"
)

// ErrNotConfigured is returned when a backend is selected but its
// credentials are missing.
var ErrNotConfigured = errors.New("synth: provider not configured")

// APIError represents an error response from a synthesis backend.
type APIError struct {
	StatusCode int
	Message    string
	Provider   voices.Provider
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("synth [%s]: API error %d: %s", e.Provider, e.StatusCode, e.Message)
}

// ProviderError wraps an error with backend context.
type ProviderError struct {
	Provider voices.Provider
	Err      error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("synth [%s]: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with backend context.
func WrapError(provider voices.Provider, err error) error {
	if err == nil {
		return nil
	}
	return &ProviderError{Provider: provider, Err: err}
}

// UnknownProviderError reports a provider tag outside the closed set.
// Reaching this means the voice resolver produced an invalid profile.
type UnknownProviderError struct {
	Provider voices.Provider
}

// Error implements the error interface.
func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("synth: unknown provider %q", string(e.Provider))
}
