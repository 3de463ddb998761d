package entity

import (
	"time"

	"github.com/google/uuid"
)

// StoredCredential is a saved generated password, kept only in hashed form.
// Plaintext never reaches storage.
type StoredCredential struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NewStoredCredential creates a StoredCredential for email from an already
// hashed password.
func NewStoredCredential(email, passwordHash string) *StoredCredential {
	return &StoredCredential{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}
