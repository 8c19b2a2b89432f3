package backend

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors callers branch on with errors.Is. ErrNotFound is a normal
// outcome for lookups (a missing patient record is not a failure); everything
// else surfaces as an *APIError or a wrapped transport error.
var (
	ErrNotFound     = errors.New("backend: not found")
	ErrUnauthorized = errors.New("backend: not logged in")
)

// APIError is a rejection reported by the backend itself, carrying the
// server-provided message when one was present.
type APIError struct {
	StatusCode int
	Message    string
	Issues     []string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request rejected"
	}
	if len(e.Issues) > 0 {
		return fmt.Sprintf("backend: %s (%s)", msg, strings.Join(e.Issues, "; "))
	}
	return fmt.Sprintf("backend: %s", msg)
}

// UserMessage extracts a message suitable for direct display: the server's
// own wording when available, a generic fallback otherwise.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnauthorized) {
		return "You are not logged in."
	}
	return "Something went wrong. Please try again."
}
