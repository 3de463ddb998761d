package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/fortify/backend/internal/domain/entity"
)

// CredentialRepository defines persistence for saved generated passwords.
type CredentialRepository interface {
	// Create persists a new stored credential.
	Create(ctx context.Context, credential *entity.StoredCredential) error

	// ListByEmail returns all credentials for email ordered by creation
	// time, newest first.
	ListByEmail(ctx context.Context, email string) ([]*entity.StoredCredential, error)

	// Delete removes the credential with the given id. Returns domain
	// ErrCredentialNotFound when it does not exist, including repeated
	// deletes of the same id.
	Delete(ctx context.Context, id uuid.UUID) error
}
