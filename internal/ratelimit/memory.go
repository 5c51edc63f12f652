package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the default in-process store. Entries accumulate between
// sweeps, so the map can grow without bound under a wide identifier churn
// until the next sweep pass.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

// Get retrieves the entry for a key.
func (s *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	return entry, ok, nil
}

// Set stores the entry for a key. The TTL is ignored here; expiry is
// handled by the reset-time check on read and by Sweep.
func (s *MemoryStore) Set(_ context.Context, key string, entry Entry, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry
	return nil
}

// Sweep removes entries whose window has passed. The key list is
// snapshotted first and each deletion re-checks under a short lock, so
// request processing is never blocked for the whole pass.
func (s *MemoryStore) Sweep(_ context.Context, now time.Time) error {
	s.mu.Lock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	s.mu.Unlock()

	for _, k := range keys {
		s.mu.Lock()
		if entry, ok := s.entries[k]; ok && now.After(entry.ResetTime) {
			delete(s.entries, k)
		}
		s.mu.Unlock()
	}
	return nil
}

// Len reports the number of stored entries, for tests and diagnostics.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
