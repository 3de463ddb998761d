package breach

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fortify/backend/internal/domain/entity"
	domainerror "github.com/fortify/backend/internal/domain/error"
)

type fakeBreachClient struct {
	calls   int
	records []entity.BreachRecord
	err     error
}

func (c *fakeBreachClient) BreachesForAccount(_ context.Context, _ string) ([]entity.BreachRecord, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.records, nil
}

type fakeBreachCache struct {
	entries map[string][]entity.BreachRecord
	getErr  error
}

func newFakeBreachCache() *fakeBreachCache {
	return &fakeBreachCache{entries: make(map[string][]entity.BreachRecord)}
}

func (c *fakeBreachCache) Get(_ context.Context, email string) ([]entity.BreachRecord, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	records, ok := c.entries[email]
	return records, ok, nil
}

func (c *fakeBreachCache) Set(_ context.Context, email string, records []entity.BreachRecord, _ time.Duration) error {
	c.entries[email] = records
	return nil
}

func TestLookupBreaches_SecondLookupServedFromCache(t *testing.T) {
	client := &fakeBreachClient{records: []entity.BreachRecord{{Name: "Adobe"}}}
	cache := newFakeBreachCache()
	uc := NewLookupBreachesUseCase(client, cache, time.Hour)

	first, err := uc.Execute(context.Background(), LookupBreachesInput{Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("first lookup failed: %v", err)
	}
	if first.Cached {
		t.Error("first lookup must not be served from cache")
	}

	second, err := uc.Execute(context.Background(), LookupBreachesInput{Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("second lookup failed: %v", err)
	}
	if !second.Cached {
		t.Error("second lookup should be served from cache")
	}
	if client.calls != 1 {
		t.Errorf("expected one upstream call, got %d", client.calls)
	}
}

func TestLookupBreaches_EmptyResultIsCachedToo(t *testing.T) {
	client := &fakeBreachClient{records: []entity.BreachRecord{}}
	cache := newFakeBreachCache()
	uc := NewLookupBreachesUseCase(client, cache, time.Hour)

	if _, err := uc.Execute(context.Background(), LookupBreachesInput{Email: "clean@example.com"}); err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	output, err := uc.Execute(context.Background(), LookupBreachesInput{Email: "clean@example.com"})
	if err != nil {
		t.Fatalf("second lookup failed: %v", err)
	}
	if !output.Cached || len(output.Breaches) != 0 {
		t.Errorf("expected cached empty result, got cached=%v breaches=%v", output.Cached, output.Breaches)
	}
	if client.calls != 1 {
		t.Errorf("expected one upstream call, got %d", client.calls)
	}
}

func TestLookupBreaches_CacheReadFailureFallsThrough(t *testing.T) {
	client := &fakeBreachClient{records: []entity.BreachRecord{{Name: "Adobe"}}}
	cache := newFakeBreachCache()
	cache.getErr = errors.New("redis down")
	uc := NewLookupBreachesUseCase(client, cache, time.Hour)

	output, err := uc.Execute(context.Background(), LookupBreachesInput{Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("lookup should survive a cache read failure: %v", err)
	}
	if len(output.Breaches) != 1 {
		t.Errorf("unexpected breaches: %v", output.Breaches)
	}
}

func TestLookupBreaches_UpstreamFailure(t *testing.T) {
	client := &fakeBreachClient{err: errors.New("service unavailable")}
	uc := NewLookupBreachesUseCase(client, nil, time.Hour)

	_, err := uc.Execute(context.Background(), LookupBreachesInput{Email: "alice@example.com"})
	var breachErr *domainerror.BreachError
	if !errors.As(err, &breachErr) || breachErr.Code != domainerror.ErrCodeBreachLookupFailed {
		t.Fatalf("expected ErrCodeBreachLookupFailed, got %v", err)
	}
}

func TestLookupBreaches_InvalidEmail(t *testing.T) {
	uc := NewLookupBreachesUseCase(&fakeBreachClient{}, nil, time.Hour)

	_, err := uc.Execute(context.Background(), LookupBreachesInput{Email: "not-an-email"})
	var breachErr *domainerror.BreachError
	if !errors.As(err, &breachErr) || breachErr.Code != domainerror.ErrCodeBreachInvalidEmail {
		t.Fatalf("expected ErrCodeBreachInvalidEmail, got %v", err)
	}
}
