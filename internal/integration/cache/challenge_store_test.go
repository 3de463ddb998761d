package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/fortify/backend/internal/application/adapter"
	"github.com/fortify/backend/internal/domain/entity"
	domainerror "github.com/fortify/backend/internal/domain/error"
)

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func testChallengeStoreRoundTrip(t *testing.T, store adapter.ChallengeStore) {
	t.Helper()
	ctx := context.Background()

	challenge := entity.NewVerificationChallenge("alice@example.com", "123456", time.Minute)
	if err := store.Put(ctx, challenge, time.Minute); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	loaded, err := store.Get(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded.Code != "123456" || loaded.Email != "alice@example.com" {
		t.Errorf("unexpected challenge: %+v", loaded)
	}
	if !loaded.ExpiresAt.Equal(challenge.ExpiresAt) {
		t.Errorf("expiry not preserved: stored %v, loaded %v", challenge.ExpiresAt, loaded.ExpiresAt)
	}

	// A second put for the same email replaces the first challenge.
	replacement := entity.NewVerificationChallenge("alice@example.com", "654321", time.Minute)
	if err := store.Put(ctx, replacement, time.Minute); err != nil {
		t.Fatalf("replacement put failed: %v", err)
	}
	loaded, err = store.Get(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("get after replacement failed: %v", err)
	}
	if loaded.Code != "654321" {
		t.Errorf("expected replacement code, got %s", loaded.Code)
	}

	if err := store.Delete(ctx, "alice@example.com"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "alice@example.com"); !errors.Is(err, domainerror.ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound after delete, got %v", err)
	}

	// Deleting a missing challenge is not an error.
	if err := store.Delete(ctx, "alice@example.com"); err != nil {
		t.Fatalf("repeated delete failed: %v", err)
	}
}

func TestRedisChallengeStore(t *testing.T) {
	client, _ := newTestRedis(t)
	testChallengeStoreRoundTrip(t, NewRedisChallengeStore(client))
}

func TestMemoryChallengeStore(t *testing.T) {
	testChallengeStoreRoundTrip(t, NewMemoryChallengeStore())
}

func TestRedisChallengeStore_SurvivesChallengeExpiry(t *testing.T) {
	client, mr := newTestRedis(t)
	store := NewRedisChallengeStore(client)
	ctx := context.Background()

	ttl := time.Minute
	challenge := entity.NewVerificationChallenge("alice@example.com", "123456", ttl)
	if err := store.Put(ctx, challenge, ttl); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	// Just past the code TTL the entry is still retrievable, so the
	// caller can report an expired rather than a missing code.
	mr.FastForward(ttl + time.Second)
	loaded, err := store.Get(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("get just past ttl failed: %v", err)
	}
	if !loaded.IsExpired(time.Now().Add(ttl + time.Second)) {
		t.Error("challenge should report itself expired")
	}

	// Long after the grace window the entry is gone.
	mr.FastForward(time.Hour)
	if _, err := store.Get(ctx, "alice@example.com"); !errors.Is(err, domainerror.ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound long after expiry, got %v", err)
	}
}

func TestRedisChallengeStore_MissingChallenge(t *testing.T) {
	client, _ := newTestRedis(t)
	store := NewRedisChallengeStore(client)

	if _, err := store.Get(context.Background(), "nobody@example.com"); !errors.Is(err, domainerror.ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound, got %v", err)
	}
}
