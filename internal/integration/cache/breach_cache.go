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
)

const breachKeyPrefix = "fortify:breaches:"

// RedisBreachCache caches breached-account results per email. Empty results
// are cached like any other, so a confirmed-clean account does not re-query
// the upstream service until the entry lapses.
type RedisBreachCache struct {
	client *redis.Client
}

// NewRedisBreachCache creates a cache backed by client.
func NewRedisBreachCache(client *redis.Client) *RedisBreachCache {
	return &RedisBreachCache{client: client}
}

// Get returns the cached records for email and whether an entry exists.
func (c *RedisBreachCache) Get(ctx context.Context, email string) ([]entity.BreachRecord, bool, error) {
	payload, err := c.client.Get(ctx, breachKeyPrefix+email).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load breach cache entry: %w", err)
	}

	var records []entity.BreachRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, false, fmt.Errorf("unmarshal breach cache entry: %w", err)
	}
	if records == nil {
		records = []entity.BreachRecord{}
	}
	return records, true, nil
}

// Set stores the records for email with the given TTL.
func (c *RedisBreachCache) Set(ctx context.Context, email string, records []entity.BreachRecord, ttl time.Duration) error {
	if records == nil {
		records = []entity.BreachRecord{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal breach cache entry: %w", err)
	}
	if err := c.client.Set(ctx, breachKeyPrefix+email, payload, ttl).Err(); err != nil {
		return fmt.Errorf("store breach cache entry: %w", err)
	}
	return nil
}

// Ensure implementation satisfies the interface.
var _ adapter.BreachCache = (*RedisBreachCache)(nil)
