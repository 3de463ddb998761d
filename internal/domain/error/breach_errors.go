package error

import "errors"

// Breach lookup domain errors.
var (
	// ErrBreachLookupFailed is returned when the breached-account service
	// could not be reached or returned an unexpected status. A "no records"
	// response is a valid empty result, not this error.
	ErrBreachLookupFailed = errors.New("breach lookup failed")
)

// BreachErrorCode defines error codes for breach lookup errors.
// Format: BREACH-XXYYYY where XX is category and YYYY is specific error.
type BreachErrorCode string

const (
	ErrCodeBreachLookupFailed BreachErrorCode = "BREACH-010001"
	ErrCodeBreachInvalidEmail BreachErrorCode = "BREACH-010002"
)

// BreachError represents a breach lookup error with code and message.
type BreachError struct {
	Code    BreachErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BreachError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BreachError) Unwrap() error {
	return e.Err
}

// NewBreachError creates a new BreachError with the given code and message.
func NewBreachError(code BreachErrorCode, message string, err error) *BreachError {
	return &BreachError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
