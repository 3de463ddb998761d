package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/fortify/backend/internal/domain/entity"
)

// CredentialModel represents the stored_credentials table in the database.
// Only the hash of a saved password is persisted.
type CredentialModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);index;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the CredentialModel.
func (CredentialModel) TableName() string {
	return "stored_credentials"
}

// ToEntity converts a CredentialModel to a domain StoredCredential entity.
func (m *CredentialModel) ToEntity() *entity.StoredCredential {
	return &entity.StoredCredential{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

// CredentialFromEntity creates a CredentialModel from a domain entity.
func CredentialFromEntity(credential *entity.StoredCredential) *CredentialModel {
	return &CredentialModel{
		ID:           credential.ID,
		Email:        credential.Email,
		PasswordHash: credential.PasswordHash,
		CreatedAt:    credential.CreatedAt,
	}
}
