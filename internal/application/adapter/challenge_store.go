package adapter

import (
	"context"
	"time"

	"github.com/fortify/backend/internal/domain/entity"
)

// ChallengeStore holds the live verification challenge per email. Backends
// may evict entries after ttl on their own (Redis does); callers still check
// expiry explicitly, so eager eviction only changes the reported error from
// Expired to NotFound for long-gone challenges.
type ChallengeStore interface {
	// Put stores the challenge for its email, replacing any existing one.
	Put(ctx context.Context, challenge *entity.VerificationChallenge, ttl time.Duration) error

	// Get retrieves the live challenge for email. Returns
	// domain ErrChallengeNotFound when none exists.
	Get(ctx context.Context, email string) (*entity.VerificationChallenge, error)

	// Delete removes the challenge for email. Deleting a missing challenge
	// is not an error.
	Delete(ctx context.Context, email string) error
}
