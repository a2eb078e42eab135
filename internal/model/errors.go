package model

import (
	"errors"
	"fmt"
)

// Error definitions
var (
	ErrExportNotFound = errors.New("export not found")
)

// ValidationError marks a request the coordinator refuses to run: unknown
// filter field, unknown template or export type, bad chunk size.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validationf builds a ValidationError with a formatted message
func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
