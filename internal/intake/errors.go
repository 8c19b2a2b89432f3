package intake

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrSessionNotFound   = errors.New("intake: session not found")
	ErrInvalidTransition = errors.New("intake: invalid step transition")
)

// ValidationError reports field-level problems. It is raised before any
// network call and maps one message per offending field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("intake: invalid fields: %s", strings.Join(names, ", "))
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
