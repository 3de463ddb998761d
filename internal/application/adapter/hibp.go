package adapter

import (
	"context"
	"time"

	"github.com/fortify/backend/internal/domain/entity"
)

// RangeEntry is one line of a k-anonymity range response: the hash suffix
// and the number of times the full digest appears in the breach corpus.
type RangeEntry struct {
	Suffix string
	Count  int
}

// RangeClient queries the password range endpoint. The interface accepts
// only the 5-character digest prefix, so the suffix cannot cross the
// process boundary through this seam.
type RangeClient interface {
	// Lookup fetches every known suffix sharing prefix.
	Lookup(ctx context.Context, prefix string) ([]RangeEntry, error)
}

// BreachClient queries the breached-account service for an email.
type BreachClient interface {
	// BreachesForAccount returns the breach records for email. A
	// "no records" response is a valid empty slice, not an error.
	BreachesForAccount(ctx context.Context, email string) ([]entity.BreachRecord, error)
}

// BreachCache caches breach lookup results per email. Empty results are
// cached too, so a confirmed-clean account does not re-query upstream.
type BreachCache interface {
	// Get returns the cached records for email and whether a cached entry
	// exists. A hit with an empty slice means "confirmed zero breaches".
	Get(ctx context.Context, email string) ([]entity.BreachRecord, bool, error)

	// Set stores the records for email with the given TTL.
	Set(ctx context.Context, email string, records []entity.BreachRecord, ttl time.Duration) error
}
