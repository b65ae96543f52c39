// internal/pkg/api/errors.go
package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingSessionID is returned when a 200 menu response carries no session
// id. Treated as a recovery failure by the session store.
var ErrMissingSessionID = errors.New("menu response missing session id")

// StatusError represents a non-2xx response from the backend. Message holds
// the server-provided "error" field when present.
type StatusError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the backend (invalid table or
// expired session)
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 from the backend
func IsUnauthorized(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized
}

// IsNetworkError reports whether err is a transport-level failure (no HTTP
// response was received at all)
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var statusErr *StatusError
	return !errors.As(err, &statusErr) && !errors.Is(err, ErrMissingSessionID)
}

// ServerMessage extracts the server-provided error message from err, falling
// back to the given default
func ServerMessage(err error, fallback string) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return statusErr.Message
	}
	return fallback
}
