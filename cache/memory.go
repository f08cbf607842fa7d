package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock sets the time source used for expiry.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*cacheEntry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves a value. Returns (nil, false, nil) on miss or expiry.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		s.mu.Lock()
		if cur, ok := s.entries[key]; ok && cur == entry {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}

	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, true, nil
}

// Set stores a value. TTL<=0 means no expiry.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := &cacheEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()
	return nil
}

// Delete removes a value. Idempotent - no error on miss.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.Evict(key)
	return nil
}

// Evict drops key immediately.
func (s *MemoryStore) Evict(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var _ Store = (*MemoryStore)(nil)
