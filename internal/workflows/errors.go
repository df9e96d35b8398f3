package workflows

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned before any data is touched when the caller
// lacks the required role or does not own the order.
var ErrUnauthorized = errors.New("Unauthorized")

// NotFoundError marks a missing referenced entity.
type NotFoundError struct {
	Entity string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// ValidationError marks a missing or invalid request field. An empty
// Reason means the field was absent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s required", e.Field)
}
