package verification

import (
	"context"

	"github.com/fortify/backend/internal/application/adapter"
	"github.com/fortify/backend/internal/domain/entity"
	domainerror "github.com/fortify/backend/internal/domain/error"
)

// LoginInput represents the input for login.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the output of a successful login.
type LoginOutput struct {
	User *entity.User
}

// LoginUseCase authenticates a verified account by email and password.
// Session or token issuance is the caller's concern; the core only reports
// the verification result.
type LoginUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
}

// NewLoginUseCase creates a new LoginUseCase instance.
func NewLoginUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}

// Execute performs the login.
func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	user, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		// Same error as a wrong password to avoid account enumeration.
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid credentials",
			domainerror.ErrInvalidCredentials,
		)
	}

	if !user.Verified {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeAccountNotVerified,
			"verify your email before logging in",
			domainerror.ErrAccountNotVerified,
		)
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid credentials",
			domainerror.ErrInvalidCredentials,
		)
	}

	return &LoginOutput{User: user}, nil
}
