package registry

import (
	"errors"
	"fmt"
)

// ErrInvalidRegistration is matched by every *InvalidRegistrationError.
var ErrInvalidRegistration = errors.New("invalid registration")

// InvalidRegistrationError is returned when a registration call is rejected.
// Nothing is recorded when this error is returned.
type InvalidRegistrationError struct {
	Field  string // "kinds", "priority", "handler" or "category"
	Reason string
}

func (e *InvalidRegistrationError) Error() string {
	return fmt.Sprintf("invalid registration: %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is match against ErrInvalidRegistration.
func (e *InvalidRegistrationError) Is(target error) bool {
	return target == ErrInvalidRegistration
}

func invalid(field, format string, a ...any) error {
	return &InvalidRegistrationError{Field: field, Reason: fmt.Sprintf(format, a...)}
}
