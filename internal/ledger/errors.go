package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no transaction has the requested id.
	ErrNotFound = errors.New("transaction not found")
	// ErrValidation is matched by every draft validation failure.
	ErrValidation = errors.New("invalid transaction")
)

// ValidationError describes the draft field that could not be accepted.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap exposes both ErrValidation and the underlying parse error.
func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Err}
}
