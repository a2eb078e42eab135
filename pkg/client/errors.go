package client

import (
	"errors"
	"fmt"
)

// ValidationError means the coordinator refused the request parameters.
// Retrying without changing them cannot succeed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NotFoundError means the referenced export id is unknown
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Message)
}

// TransientError covers network failures, timeouts, and malformed 5xx
// responses. The client retries these automatically; callers seeing one
// exhausted the retry budget.
type TransientError struct {
	Message string
	Err     error
}

func (e *TransientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transient failure: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("transient failure: %s", e.Message)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// CoordinatorError means the export failed server-side. Not retryable
// without changing parameters.
type CoordinatorError struct {
	Message string
}

func (e *CoordinatorError) Error() string {
	return fmt.Sprintf("coordinator failure: %s", e.Message)
}

// IsRetryable reports whether err is a transient failure
func IsRetryable(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
