package cache

import (
	"context"
	"sync"
	"time"

	"github.com/fortify/backend/internal/application/adapter"
	"github.com/fortify/backend/internal/domain/entity"
	domainerror "github.com/fortify/backend/internal/domain/error"
)

// memoryEntry pairs a stored challenge with its eviction deadline.
type memoryEntry struct {
	challenge entity.VerificationChallenge
	evictAt   time.Time
}

// MemoryChallengeStore is an in-memory ChallengeStore for tests and for
// running without Redis. Entries are evicted after the same grace window
// the Redis store uses.
type MemoryChallengeStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryChallengeStore creates an empty in-memory store.
func NewMemoryChallengeStore() *MemoryChallengeStore {
	return &MemoryChallengeStore{
		entries: make(map[string]memoryEntry),
	}
}

// Put stores the challenge under its email, replacing any existing one.
func (s *MemoryChallengeStore) Put(_ context.Context, challenge *entity.VerificationChallenge, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[challenge.Email] = memoryEntry{
		challenge: *challenge,
		evictAt:   time.Now().Add(ttl + evictionGrace),
	}
	return nil
}

// Get retrieves the live challenge for email.
func (s *MemoryChallengeStore) Get(_ context.Context, email string) (*entity.VerificationChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[email]
	if !ok {
		return nil, domainerror.ErrChallengeNotFound
	}
	if time.Now().After(entry.evictAt) {
		delete(s.entries, email)
		return nil, domainerror.ErrChallengeNotFound
	}

	challenge := entry.challenge
	return &challenge, nil
}

// Delete removes the challenge for email.
func (s *MemoryChallengeStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}

// Ensure implementation satisfies the interface.
var _ adapter.ChallengeStore = (*MemoryChallengeStore)(nil)
