// Package credential contains the credential vault use cases.
package credential

import (
	"context"
	"fmt"

	"github.com/fortify/backend/internal/application/adapter"
	"github.com/fortify/backend/internal/domain/entity"
	domainerror "github.com/fortify/backend/internal/domain/error"
)

// SaveCredentialInput represents the input for saving a generated password.
type SaveCredentialInput struct {
	Email    string
	Password string
}

// SaveCredentialOutput represents the saved credential.
type SaveCredentialOutput struct {
	Credential *entity.StoredCredential
}

// SaveCredentialUseCase persists a generated password for an account. The
// password is hashed before it reaches the repository; plaintext never
// reaches storage.
type SaveCredentialUseCase struct {
	userRepo        adapter.UserRepository
	credentialRepo  adapter.CredentialRepository
	passwordService adapter.PasswordService
}

// NewSaveCredentialUseCase creates a new SaveCredentialUseCase instance.
func NewSaveCredentialUseCase(
	userRepo adapter.UserRepository,
	credentialRepo adapter.CredentialRepository,
	passwordService adapter.PasswordService,
) *SaveCredentialUseCase {
	return &SaveCredentialUseCase{
		userRepo:        userRepo,
		credentialRepo:  credentialRepo,
		passwordService: passwordService,
	}
}

// Execute performs the save.
func (uc *SaveCredentialUseCase) Execute(ctx context.Context, input SaveCredentialInput) (*SaveCredentialOutput, error) {
	if input.Password == "" {
		return nil, domainerror.NewPasswordError(
			domainerror.ErrCodeEmptyPassword,
			"password must not be empty",
			domainerror.ErrEmptyPassword,
		)
	}

	if _, err := uc.userRepo.FindByEmail(ctx, input.Email); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUserNotFound,
			"user not found",
			domainerror.ErrUserNotFound,
		)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash credential: %w", err)
	}

	credential := entity.NewStoredCredential(input.Email, passwordHash)
	if err := uc.credentialRepo.Create(ctx, credential); err != nil {
		return nil, domainerror.NewPasswordError(
			domainerror.ErrCodeCredentialSaveFailed,
			"failed to save credential",
			err,
		)
	}

	return &SaveCredentialOutput{Credential: credential}, nil
}
