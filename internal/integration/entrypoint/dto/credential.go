package dto

import (
	"time"

	"github.com/fortify/backend/internal/domain/entity"
)

// SaveCredentialRequest represents the request body for saving a password.
type SaveCredentialRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CredentialResponse represents one stored credential. Only metadata is
// exposed; the hash never leaves the server.
type CredentialResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CredentialListResponse represents the stored credentials, newest first.
type CredentialListResponse struct {
	Credentials []CredentialResponse `json:"credentials"`
}

// ToCredentialResponse converts a domain credential to its response DTO.
func ToCredentialResponse(credential *entity.StoredCredential) CredentialResponse {
	return CredentialResponse{
		ID:        credential.ID.String(),
		Email:     credential.Email,
		CreatedAt: credential.CreatedAt,
	}
}

// ToCredentialListResponse converts a list of credentials to the list DTO.
func ToCredentialListResponse(credentials []*entity.StoredCredential) CredentialListResponse {
	out := make([]CredentialResponse, 0, len(credentials))
	for _, c := range credentials {
		out = append(out, ToCredentialResponse(c))
	}
	return CredentialListResponse{Credentials: out}
}
