// Package domain defines the error taxonomy shared by the service and
// repository layers. Handlers branch on these to decide what the user sees.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound is returned when an operation references a user that
	// has never interacted with the bot.
	ErrUserNotFound = errors.New("user not found")

	// ErrIndexOutOfRange is returned when a 1-based list index does not
	// resolve to an item on the user's current list.
	ErrIndexOutOfRange = errors.New("item index out of range")
)

// ValidationError marks malformed user input. It is always recoverable: the
// handler replies with a usage message and nothing is written to the store.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validationf builds a *ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
