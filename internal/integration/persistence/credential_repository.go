package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fortify/backend/internal/application/adapter"
	"github.com/fortify/backend/internal/domain/entity"
	domainerror "github.com/fortify/backend/internal/domain/error"
	"github.com/fortify/backend/internal/integration/persistence/model"
)

// credentialRepository implements the adapter.CredentialRepository interface.
type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository creates a new credential repository instance.
func NewCredentialRepository(db *gorm.DB) adapter.CredentialRepository {
	return &credentialRepository{
		db: db,
	}
}

// Create stores a new credential in the database.
func (r *credentialRepository) Create(ctx context.Context, credential *entity.StoredCredential) error {
	credentialModel := model.CredentialFromEntity(credential)
	result := r.db.WithContext(ctx).Create(credentialModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// ListByEmail retrieves all credentials stored for an email, newest first.
func (r *credentialRepository) ListByEmail(ctx context.Context, email string) ([]*entity.StoredCredential, error) {
	var models []model.CredentialModel
	result := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	credentials := make([]*entity.StoredCredential, 0, len(models))
	for i := range models {
		credentials = append(credentials, models[i].ToEntity())
	}
	return credentials, nil
}

// Delete removes a credential by its ID.
func (r *credentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.CredentialModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCredentialNotFound
	}
	return nil
}
