package credential

import (
	"context"
	"fmt"

	"github.com/fortify/backend/internal/application/adapter"
	"github.com/fortify/backend/internal/domain/entity"
)

// ListCredentialsInput represents the input for listing saved credentials.
type ListCredentialsInput struct {
	Email string
}

// ListCredentialsOutput holds the credentials, newest first.
type ListCredentialsOutput struct {
	Credentials []*entity.StoredCredential
}

// ListCredentialsUseCase lists an account's saved credentials.
type ListCredentialsUseCase struct {
	credentialRepo adapter.CredentialRepository
}

// NewListCredentialsUseCase creates a new ListCredentialsUseCase instance.
func NewListCredentialsUseCase(credentialRepo adapter.CredentialRepository) *ListCredentialsUseCase {
	return &ListCredentialsUseCase{
		credentialRepo: credentialRepo,
	}
}

// Execute performs the listing. Ordering (created_at descending) is the
// repository's contract.
func (uc *ListCredentialsUseCase) Execute(ctx context.Context, input ListCredentialsInput) (*ListCredentialsOutput, error) {
	credentials, err := uc.credentialRepo.ListByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}

	return &ListCredentialsOutput{Credentials: credentials}, nil
}
