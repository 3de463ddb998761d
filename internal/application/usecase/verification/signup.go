package verification

import (
	"context"
	"fmt"
	"regexp"

	"github.com/fortify/backend/internal/application/adapter"
	"github.com/fortify/backend/internal/domain/entity"
	domainerror "github.com/fortify/backend/internal/domain/error"
)

// SignupInput represents the input for account creation.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// SignupOutput represents the output of account creation.
type SignupOutput struct {
	User *entity.User
}

// SignupUseCase creates an unverified account and issues its first
// verification challenge.
type SignupUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	issuer          *CodeIssuer
	locks           *EmailLocks
}

// NewSignupUseCase creates a new SignupUseCase instance.
func NewSignupUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	issuer *CodeIssuer,
	locks *EmailLocks,
) *SignupUseCase {
	return &SignupUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		issuer:          issuer,
		locks:           locks,
	}
}

// Execute performs the signup. The user and challenge are committed before
// the code email is dispatched; a dispatch failure surfaces as an error but
// leaves both in place so the client can resend.
func (uc *SignupUseCase) Execute(ctx context.Context, input SignupInput) (*SignupOutput, error) {
	if !isValidEmail(input.Email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	unlock := uc.locks.Lock(input.Email)
	defer unlock()

	exists, err := uc.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeEmailExists,
			"email already exists",
			domainerror.ErrEmailAlreadyExists,
		)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(input.Username, input.Email, passwordHash)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if _, err := uc.issuer.Issue(ctx, user, false); err != nil {
		// Dispatch failures leave the user and challenge stored; the
		// client recovers via resend. The created user is returned
		// alongside the error so callers can report partial success.
		return &SignupOutput{User: user}, err
	}

	return &SignupOutput{User: user}, nil
}

// isValidEmail validates email format using a simple regex.
func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}
