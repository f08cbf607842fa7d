package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// Sentinel errors for cache operations.
var (
	ErrInvalidKey   = errors.New("cache: key is invalid")
	ErrKeyTooLong   = errors.New("cache: key exceeds max length")
	ErrCanonicalize = errors.New("cache: failed to canonicalize input")
)

// Store is the interface for a shared key/value cache backend.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Context: methods should honor cancellation/deadlines where applicable.
//   - Errors: Get returns (nil, false, nil) on miss; a non-nil error means the
//     backend could not answer.
type Store interface {
	// Get retrieves a cached value.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. TTL=0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a cached value. Idempotent - no error on miss.
	Delete(ctx context.Context, key string) error
}

// ValidateKey checks if a key is valid for caching.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}
