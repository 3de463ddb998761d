package adapter

import (
	"context"
	"time"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// CodeDispatchInput represents the input for dispatching a verification code.
type CodeDispatchInput struct {
	Email    string
	Username string
	Code     string
	Resend   bool
	TTL      time.Duration
}

// CodeDispatcher delivers a verification code to its email's out-of-band
// channel. Dispatch failures surface as errors but must never roll back the
// stored challenge.
type CodeDispatcher interface {
	DispatchVerificationCode(ctx context.Context, input CodeDispatchInput) error
}
