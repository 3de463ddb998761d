package verification

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/fortify/backend/internal/application/adapter"
	"github.com/fortify/backend/internal/domain/entity"
	domainerror "github.com/fortify/backend/internal/domain/error"
)

var codeFormat = regexp.MustCompile(`^[0-9]{6}$`)

// VerifyEmailInput represents the input for code verification.
type VerifyEmailInput struct {
	Email string
	Code  string
}

// VerifyEmailOutput represents the output of a successful verification.
type VerifyEmailOutput struct {
	User *entity.User
}

// VerifyEmailUseCase validates a submitted verification code and marks the
// account verified.
//
// Check order is deliberate and observable: malformed code, then missing
// user, then already-verified, then missing challenge, then code equality,
// then expiry. A wrong code submitted after expiry therefore reports
// CodeMismatch, not Expired, matching a client guessing after the TTL.
type VerifyEmailUseCase struct {
	userRepo adapter.UserRepository
	store    adapter.ChallengeStore
	locks    *EmailLocks
	now      func() time.Time
}

// NewVerifyEmailUseCase creates a new VerifyEmailUseCase instance.
func NewVerifyEmailUseCase(
	userRepo adapter.UserRepository,
	store adapter.ChallengeStore,
	locks *EmailLocks,
) *VerifyEmailUseCase {
	return &VerifyEmailUseCase{
		userRepo: userRepo,
		store:    store,
		locks:    locks,
		now:      time.Now,
	}
}

// Execute performs the verification. Consumption is exactly-once: the user
// is marked verified before the challenge is removed, so a racing second
// call observes AlreadyVerified rather than re-validating.
func (uc *VerifyEmailUseCase) Execute(ctx context.Context, input VerifyEmailInput) (*VerifyEmailOutput, error) {
	if !codeFormat.MatchString(input.Code) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMalformedCode,
			"verification code must be 6 digits",
			domainerror.ErrMalformedVerificationCode,
		)
	}

	unlock := uc.locks.Lock(input.Email)
	defer unlock()

	user, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUserNotFound,
			"user not found",
			domainerror.ErrUserNotFound,
		)
	}

	if user.Verified {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeAlreadyVerified,
			"account already verified",
			domainerror.ErrAlreadyVerified,
		)
	}

	challenge, err := uc.store.Get(ctx, input.Email)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeChallengeNotFound,
			"no verification challenge for this email",
			domainerror.ErrChallengeNotFound,
		)
	}

	if challenge.Consumed || !challenge.Matches(input.Code) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeCodeMismatch,
			"invalid verification code",
			domainerror.ErrVerificationCodeMismatch,
		)
	}

	if challenge.IsExpired(uc.now()) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeCodeExpired,
			"verification code expired, request a new code",
			domainerror.ErrVerificationCodeExpired,
		)
	}

	challenge.Consume()

	user.Verified = true
	user.UpdatedAt = uc.now().UTC()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		// Challenge untouched in the store: the prior state stays intact
		// and the code remains verifiable.
		return nil, fmt.Errorf("failed to mark user verified: %w", err)
	}

	if err := uc.store.Delete(ctx, input.Email); err != nil {
		// The account is already verified; a lingering challenge can never
		// validate again because verify reports AlreadyVerified first.
		slog.Warn("Failed to delete consumed challenge", "email", input.Email, "error", err)
	}

	return &VerifyEmailOutput{User: user}, nil
}
