package genai

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrQuotaExceeded means the provider (or the local per-user guard)
	// refused the call for rate or quota reasons, or no key is configured.
	// Callers serve a canned reply.
	ErrQuotaExceeded = errors.New("ai quota exceeded")

	// ErrEmptyResponse means the provider answered without any text.
	ErrEmptyResponse = errors.New("ai returned empty response")
)

// APIError is a non-quota error response from the provider.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini status %d: %s", e.StatusCode, e.Message)
}

// Transient reports whether retrying could succeed.
func (e *APIError) Transient() bool {
	return e.StatusCode == 408 || e.StatusCode >= 500
}

type transportError struct{ err error }

func (e *transportError) Error() string { return "gemini request: " + e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

func isQuotaSignal(status int, message string) bool {
	if status == 429 {
		return true
	}
	m := strings.ToLower(message)
	return strings.Contains(m, "quota") || strings.Contains(m, "limit") || strings.Contains(m, "resource_exhausted")
}
