// Package cache implements Redis-backed stores for short-lived state: the
// per-email verification challenge and the breach lookup cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fortify/backend/internal/application/adapter"
	"github.com/fortify/backend/internal/domain/entity"
	domainerror "github.com/fortify/backend/internal/domain/error"
)

const challengeKeyPrefix = "fortify:challenge:"

// evictionGrace keeps a challenge retrievable past its TTL so verification
// of an expired code reports Expired rather than NotFound. Only long-gone
// challenges fall back to NotFound.
const evictionGrace = 10 * time.Minute

// RedisChallengeStore keeps the live verification challenge per email in
// Redis. SET replaces any prior challenge for the email, which is exactly
// the issue/resend semantics; Redis expiry handles eviction.
type RedisChallengeStore struct {
	client *redis.Client
}

// NewRedisChallengeStore creates a store backed by client.
func NewRedisChallengeStore(client *redis.Client) *RedisChallengeStore {
	return &RedisChallengeStore{client: client}
}

// Put stores the challenge under its email, replacing any existing one.
func (s *RedisChallengeStore) Put(ctx context.Context, challenge *entity.VerificationChallenge, ttl time.Duration) error {
	payload, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("marshal challenge: %w", err)
	}
	if err := s.client.Set(ctx, challengeKeyPrefix+challenge.Email, payload, ttl+evictionGrace).Err(); err != nil {
		return fmt.Errorf("store challenge: %w", err)
	}
	return nil
}

// Get retrieves the live challenge for email.
func (s *RedisChallengeStore) Get(ctx context.Context, email string) (*entity.VerificationChallenge, error) {
	payload, err := s.client.Get(ctx, challengeKeyPrefix+email).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainerror.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("load challenge: %w", err)
	}

	var challenge entity.VerificationChallenge
	if err := json.Unmarshal(payload, &challenge); err != nil {
		return nil, fmt.Errorf("unmarshal challenge: %w", err)
	}
	return &challenge, nil
}

// Delete removes the challenge for email.
func (s *RedisChallengeStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, challengeKeyPrefix+email).Err(); err != nil {
		return fmt.Errorf("delete challenge: %w", err)
	}
	return nil
}

// Ensure implementation satisfies the interface.
var _ adapter.ChallengeStore = (*RedisChallengeStore)(nil)
