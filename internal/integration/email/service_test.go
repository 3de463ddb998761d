package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fortify/backend/internal/application/adapter"
	domainerror "github.com/fortify/backend/internal/domain/error"
	"github.com/fortify/backend/internal/integration/email/templates"
)

func newTestService(t *testing.T, sender adapter.EmailSender) *Service {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	return NewService(sender, renderer, 5*time.Second)
}

func TestDispatchVerificationCode(t *testing.T) {
	sender := NewMockEmailSender()
	service := newTestService(t, sender)

	err := service.DispatchVerificationCode(context.Background(), adapter.CodeDispatchInput{
		Email:    "alice@example.com",
		Username: "alice",
		Code:     "123456",
		TTL:      time.Minute,
	})
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	if len(sender.SentEmails) != 1 {
		t.Fatalf("expected 1 sent email, got %d", len(sender.SentEmails))
	}
	sent := sender.SentEmails[0]
	if sent.To != "alice@example.com" {
		t.Errorf("unexpected recipient: %s", sent.To)
	}
	if !strings.Contains(sent.HTML, "123456") || !strings.Contains(sent.Text, "123456") {
		t.Error("expected the code in both email bodies")
	}
	if !strings.Contains(sent.HTML, "alice") {
		t.Error("expected the username in the email body")
	}
	if strings.Contains(sent.Subject, "new verification code") {
		t.Errorf("initial dispatch should not use the resend subject, got %q", sent.Subject)
	}
}

func TestDispatchVerificationCode_ResendSubject(t *testing.T) {
	sender := NewMockEmailSender()
	service := newTestService(t, sender)

	err := service.DispatchVerificationCode(context.Background(), adapter.CodeDispatchInput{
		Email:    "alice@example.com",
		Username: "alice",
		Code:     "654321",
		Resend:   true,
		TTL:      time.Minute,
	})
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	if !strings.Contains(sender.SentEmails[0].Subject, "new verification code") {
		t.Errorf("expected resend subject, got %q", sender.SentEmails[0].Subject)
	}
}

func TestDispatchVerificationCode_SendFailure(t *testing.T) {
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("provider down"), false)
	service := newTestService(t, sender)

	err := service.DispatchVerificationCode(context.Background(), adapter.CodeDispatchInput{
		Email:    "alice@example.com",
		Username: "alice",
		Code:     "123456",
		TTL:      time.Minute,
	})

	var emailErr *domainerror.EmailError
	if !errors.As(err, &emailErr) || emailErr.Code != domainerror.ErrCodeEmailSendFailed {
		t.Fatalf("expected ErrCodeEmailSendFailed, got %v", err)
	}
}
