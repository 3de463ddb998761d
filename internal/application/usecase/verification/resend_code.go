package verification

import (
	"context"

	"github.com/fortify/backend/internal/application/adapter"
	domainerror "github.com/fortify/backend/internal/domain/error"
)

// ResendCodeInput represents the input for resending a verification code.
type ResendCodeInput struct {
	Email string
}

// ResendCodeOutput represents the output of a resend request.
type ResendCodeOutput struct {
	Message string
}

// ResendCodeUseCase issues a fresh challenge for an unverified account.
// The new challenge replaces the previous one, invalidating its code even
// when it has not yet expired.
type ResendCodeUseCase struct {
	userRepo adapter.UserRepository
	issuer   *CodeIssuer
	locks    *EmailLocks
}

// NewResendCodeUseCase creates a new ResendCodeUseCase instance.
func NewResendCodeUseCase(
	userRepo adapter.UserRepository,
	issuer *CodeIssuer,
	locks *EmailLocks,
) *ResendCodeUseCase {
	return &ResendCodeUseCase{
		userRepo: userRepo,
		issuer:   issuer,
		locks:    locks,
	}
}

// Execute performs the resend.
func (uc *ResendCodeUseCase) Execute(ctx context.Context, input ResendCodeInput) (*ResendCodeOutput, error) {
	if !isValidEmail(input.Email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
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

	if _, err := uc.issuer.Issue(ctx, user, true); err != nil {
		return nil, err
	}

	return &ResendCodeOutput{
		Message: "A new verification code has been sent to your email",
	}, nil
}
