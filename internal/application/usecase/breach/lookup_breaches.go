// Package breach contains the breached-account lookup use case.
package breach

import (
	"context"
	"log/slog"
	"regexp"
	"time"

	"github.com/fortify/backend/internal/application/adapter"
	"github.com/fortify/backend/internal/domain/entity"
	domainerror "github.com/fortify/backend/internal/domain/error"
)

var emailFormat = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// LookupBreachesInput represents the input for a breach lookup.
type LookupBreachesInput struct {
	Email string
}

// LookupBreachesOutput holds the breach records for the account. An empty
// slice is a confirmed "zero breaches" result, never a failure.
type LookupBreachesOutput struct {
	Breaches []entity.BreachRecord
	Cached   bool
}

// LookupBreachesUseCase queries the breached-account service, with a local
// cache in front of it. Empty results are cached too, so confirmed-clean
// accounts do not re-query upstream until the cache entry lapses.
type LookupBreachesUseCase struct {
	client   adapter.BreachClient
	cache    adapter.BreachCache
	cacheTTL time.Duration
}

// NewLookupBreachesUseCase creates a new LookupBreachesUseCase instance.
// cache may be nil to disable caching.
func NewLookupBreachesUseCase(client adapter.BreachClient, cache adapter.BreachCache, cacheTTL time.Duration) *LookupBreachesUseCase {
	return &LookupBreachesUseCase{
		client:   client,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// Execute performs the lookup. Upstream failures surface as
// ErrBreachLookupFailed so callers can distinguish them from an empty result.
func (uc *LookupBreachesUseCase) Execute(ctx context.Context, input LookupBreachesInput) (*LookupBreachesOutput, error) {
	if !emailFormat.MatchString(input.Email) {
		return nil, domainerror.NewBreachError(
			domainerror.ErrCodeBreachInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	if uc.cache != nil {
		if records, ok, err := uc.cache.Get(ctx, input.Email); err != nil {
			slog.Warn("Breach cache read failed", "email", input.Email, "error", err)
		} else if ok {
			return &LookupBreachesOutput{Breaches: records, Cached: true}, nil
		}
	}

	records, err := uc.client.BreachesForAccount(ctx, input.Email)
	if err != nil {
		return nil, domainerror.NewBreachError(
			domainerror.ErrCodeBreachLookupFailed,
			"failed to check breaches",
			err,
		)
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, input.Email, records, uc.cacheTTL); err != nil {
			slog.Warn("Breach cache write failed", "email", input.Email, "error", err)
		}
	}

	return &LookupBreachesOutput{Breaches: records}, nil
}
