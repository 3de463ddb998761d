package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fortify/backend/internal/application/adapter"
	domainerror "github.com/fortify/backend/internal/domain/error"
)

// DeleteCredentialInput represents the input for deleting a credential.
type DeleteCredentialInput struct {
	ID uuid.UUID
}

// DeleteCredentialOutput represents the result of a delete.
type DeleteCredentialOutput struct {
	Message string
}

// DeleteCredentialUseCase removes a stored credential by id. A repeated
// delete of an already-deleted id reports NotFound, not success.
type DeleteCredentialUseCase struct {
	credentialRepo adapter.CredentialRepository
}

// NewDeleteCredentialUseCase creates a new DeleteCredentialUseCase instance.
func NewDeleteCredentialUseCase(credentialRepo adapter.CredentialRepository) *DeleteCredentialUseCase {
	return &DeleteCredentialUseCase{
		credentialRepo: credentialRepo,
	}
}

// Execute performs the delete.
func (uc *DeleteCredentialUseCase) Execute(ctx context.Context, input DeleteCredentialInput) (*DeleteCredentialOutput, error) {
	if err := uc.credentialRepo.Delete(ctx, input.ID); err != nil {
		if errors.Is(err, domainerror.ErrCredentialNotFound) {
			return nil, domainerror.NewPasswordError(
				domainerror.ErrCodeCredentialNotFound,
				"credential not found",
				domainerror.ErrCredentialNotFound,
			)
		}
		return nil, fmt.Errorf("failed to delete credential: %w", err)
	}

	return &DeleteCredentialOutput{Message: "Credential deleted"}, nil
}
