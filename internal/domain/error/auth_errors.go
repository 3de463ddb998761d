// Package error defines domain-specific errors for the Fortify application.
package error

import "errors"

// Authentication and verification domain errors.
var (
	// ErrUserNotFound is returned when a user is not found in the system.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to sign up with an existing email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountNotVerified is returned when an unverified account attempts to log in.
	ErrAccountNotVerified = errors.New("account email not verified")

	// ErrAlreadyVerified is returned when verifying or resending for an account
	// that has already completed verification.
	ErrAlreadyVerified = errors.New("account already verified")

	// ErrChallengeNotFound is returned when no live verification challenge
	// exists for an email. This also covers challenges evicted after expiry.
	ErrChallengeNotFound = errors.New("verification challenge not found")

	// ErrVerificationCodeMismatch is returned when the submitted code does not
	// match the stored challenge.
	ErrVerificationCodeMismatch = errors.New("verification code mismatch")

	// ErrVerificationCodeExpired is returned when the challenge is past its TTL.
	ErrVerificationCodeExpired = errors.New("verification code expired")

	// ErrMalformedVerificationCode is returned when the submitted code is not
	// exactly six ASCII digits.
	ErrMalformedVerificationCode = errors.New("verification code must be 6 digits")

	// ErrInvalidEmail is returned when the provided email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")
)

// AuthErrorCode defines error codes for authentication and verification errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Signup errors (01XXXX)
	ErrCodeEmailExists   AuthErrorCode = "AUTH-010001"
	ErrCodeInvalidEmail  AuthErrorCode = "AUTH-010002"
	ErrCodeMissingFields AuthErrorCode = "AUTH-010003"

	// Login errors (02XXXX)
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-020001"
	ErrCodeUserNotFound       AuthErrorCode = "AUTH-020002"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-020003"
	ErrCodeAccountNotVerified AuthErrorCode = "AUTH-020004"

	// Verification errors (03XXXX)
	ErrCodeChallengeNotFound AuthErrorCode = "AUTH-030001"
	ErrCodeCodeMismatch      AuthErrorCode = "AUTH-030002"
	ErrCodeCodeExpired       AuthErrorCode = "AUTH-030003"
	ErrCodeMalformedCode     AuthErrorCode = "AUTH-030004"
	ErrCodeAlreadyVerified   AuthErrorCode = "AUTH-030005"
	ErrCodeDispatchFailed    AuthErrorCode = "AUTH-030006"
)

// AuthError represents an authentication error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
