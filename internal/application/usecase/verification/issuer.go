package verification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fortify/backend/internal/application/adapter"
	"github.com/fortify/backend/internal/domain/entity"
	domainerror "github.com/fortify/backend/internal/domain/error"
)

// CodeIssuer creates and stores verification challenges and dispatches the
// code out of band. Shared by the signup and resend use cases.
type CodeIssuer struct {
	store      adapter.ChallengeStore
	codeGen    adapter.CodeGenerator
	dispatcher adapter.CodeDispatcher
	ttl        time.Duration
}

// NewCodeIssuer creates a new CodeIssuer with the given challenge TTL.
func NewCodeIssuer(
	store adapter.ChallengeStore,
	codeGen adapter.CodeGenerator,
	dispatcher adapter.CodeDispatcher,
	ttl time.Duration,
) *CodeIssuer {
	return &CodeIssuer{
		store:      store,
		codeGen:    codeGen,
		dispatcher: dispatcher,
		ttl:        ttl,
	}
}

// Issue generates a fresh code for the user, stores the challenge
// (replacing any prior one for that email) and dispatches it. The challenge
// is committed before dispatch: a failed dispatch surfaces as an error but
// the stored challenge stays usable for a resend.
func (i *CodeIssuer) Issue(ctx context.Context, user *entity.User, resend bool) (string, error) {
	code, err := i.codeGen.Generate()
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}

	challenge := entity.NewVerificationChallenge(user.Email, code, i.ttl)
	if err := i.store.Put(ctx, challenge, i.ttl); err != nil {
		return "", fmt.Errorf("failed to store verification challenge: %w", err)
	}

	if err := i.dispatcher.DispatchVerificationCode(ctx, adapter.CodeDispatchInput{
		Email:    user.Email,
		Username: user.Username,
		Code:     code,
		Resend:   resend,
		TTL:      i.ttl,
	}); err != nil {
		slog.Error("Verification code dispatch failed",
			"email", user.Email,
			"error", err,
		)
		return code, domainerror.NewAuthError(
			domainerror.ErrCodeDispatchFailed,
			"failed to dispatch verification code",
			err,
		)
	}

	return code, nil
}

// TTL returns the configured challenge time-to-live.
func (i *CodeIssuer) TTL() time.Duration {
	return i.ttl
}
