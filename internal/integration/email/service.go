// Package email provides email sending functionality.
package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/fortify/backend/internal/application/adapter"
	domainerror "github.com/fortify/backend/internal/domain/error"
	"github.com/fortify/backend/internal/integration/email/templates"
)

// Service dispatches verification code emails. Sends are bounded by a
// timeout so a slow provider cannot block code issuance; a failed send is
// reported to the caller, never retried here, and never rolls back the
// stored challenge.
type Service struct {
	sender      adapter.EmailSender
	renderer    *templates.Renderer
	sendTimeout time.Duration
}

// NewService creates a new email service.
func NewService(sender adapter.EmailSender, renderer *templates.Renderer, sendTimeout time.Duration) *Service {
	return &Service{
		sender:      sender,
		renderer:    renderer,
		sendTimeout: sendTimeout,
	}
}

// DispatchVerificationCode renders and sends the code email.
func (s *Service) DispatchVerificationCode(ctx context.Context, input adapter.CodeDispatchInput) error {
	subject := "Verify your email - Fortify"
	if input.Resend {
		subject = "Your new verification code - Fortify"
	}

	html, text, err := s.renderer.Render("verification_code", templates.VerificationCodeData{
		Username:  input.Username,
		Code:      input.Code,
		ExpiresIn: formatTTL(input.TTL),
	})
	if err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render verification email",
			err,
		)
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	result, err := s.sender.Send(sendCtx, adapter.SendEmailInput{
		To:      input.Email,
		Name:    input.Username,
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailSendFailed,
			"failed to send verification email",
			err,
		)
	}

	slog.Info("Verification code dispatched",
		"email", input.Email,
		"provider_id", result.ProviderID,
		"resend", input.Resend,
	)
	return nil
}

// formatTTL renders the code validity window for the email body.
func formatTTL(ttl time.Duration) string {
	if ttl <= 0 {
		return "a short time"
	}
	return ttl.Round(time.Second).String()
}

// Ensure implementation satisfies the interface.
var _ adapter.CodeDispatcher = (*Service)(nil)
