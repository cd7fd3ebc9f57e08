package service

import (
	"errors"
	"fmt"
)

// ValidationError marks a rejected user input. Handlers answer it with 400
// instead of the 500 fallback.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid builds a ValidationError with a formatted message.
func Invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a rejected user input.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
