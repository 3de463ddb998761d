package error

import "errors"

// Password analysis and credential vault domain errors.
var (
	// ErrExposureLookupFailed is returned when the k-anonymity range lookup
	// could not be completed. It is distinct from a confirmed zero count.
	ErrExposureLookupFailed = errors.New("exposure lookup failed")

	// ErrCheckSuperseded is returned when a debounced exposure check was
	// replaced by a newer value for the same key before being dispatched.
	ErrCheckSuperseded = errors.New("exposure check superseded by newer input")

	// ErrEmptyPassword is returned when an empty password is submitted for
	// checking or suggestion generation.
	ErrEmptyPassword = errors.New("password must not be empty")

	// ErrCredentialNotFound is returned when a stored credential does not
	// exist, including repeated deletes of an already-deleted id.
	ErrCredentialNotFound = errors.New("credential not found")
)

// PasswordErrorCode defines error codes for password-related errors.
// Format: PWD-XXYYYY where XX is category and YYYY is specific error.
type PasswordErrorCode string

const (
	// Exposure check errors (01XXXX)
	ErrCodeExposureLookupFailed PasswordErrorCode = "PWD-010001"
	ErrCodeCheckSuperseded      PasswordErrorCode = "PWD-010002"
	ErrCodeEmptyPassword        PasswordErrorCode = "PWD-010003"

	// Credential vault errors (02XXXX)
	ErrCodeCredentialNotFound   PasswordErrorCode = "PWD-020001"
	ErrCodeCredentialSaveFailed PasswordErrorCode = "PWD-020002"
)

// PasswordError represents a password-domain error with code and message.
type PasswordError struct {
	Code    PasswordErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PasswordError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PasswordError) Unwrap() error {
	return e.Err
}

// NewPasswordError creates a new PasswordError with the given code and message.
func NewPasswordError(code PasswordErrorCode, message string, err error) *PasswordError {
	return &PasswordError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
