package goals

import (
	"errors"
	"fmt"
)

// ErrInvalid matches every *ValidationError via errors.Is.
var ErrInvalid = errors.New("invalid input")

// ErrNotFound is returned by Resolve when no goal matches a reference.
// Store mutations never return it: unknown ids are a silent no-op.
var ErrNotFound = errors.New("goal not found")

// ErrAmbiguous is returned by Resolve when a reference matches several goals.
var ErrAmbiguous = errors.New("ambiguous goal reference")

// ValidationError reports an out-of-contract argument. The store is left
// unchanged when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalid) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
