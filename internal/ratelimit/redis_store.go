package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pollbase/pkg/redis"
)

// RedisStore keeps rate-limit entries in Redis so multiple instances
// share one set of counters. Entries expire via TTL, which makes the
// periodic sweep a no-op for this store.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) key(key string) string {
	// Limiter keys are "class:identifier"; split back out for prefixing.
	class, id, ok := strings.Cut(key, ":")
	if !ok {
		return s.client.KeyBuilder.KeyRateLimit("api", key)
	}
	return s.client.KeyBuilder.KeyRateLimit(class, id)
}

// Get retrieves the entry for a key.
func (s *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	raw, err := s.client.Get(ctx, s.key(key))
	if err != nil {
		return Entry{}, false, fmt.Errorf("rate-limit get: %w", err)
	}
	if raw == "" {
		return Entry{}, false, nil
	}

	var entry Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return Entry{}, false, fmt.Errorf("rate-limit decode: %w", err)
	}
	return entry, true, nil
}

// Set stores the entry with the window as its TTL.
func (s *RedisStore) Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("rate-limit encode: %w", err)
	}
	if ttl <= 0 {
		ttl = time.Second
	}
	return s.client.Set(ctx, s.key(key), raw, ttl)
}

// Sweep is a no-op; Redis expires entries by TTL.
func (s *RedisStore) Sweep(context.Context, time.Time) error {
	return nil
}
