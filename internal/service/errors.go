package service

import "errors"

// ErrFetchFailed wraps storage failures so transport layers can map them to
// a 500 without leaking query details.
var ErrFetchFailed = errors.New("failed to fetch records")

// ValidationError marks bad request input. Transport layers map it to a 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
