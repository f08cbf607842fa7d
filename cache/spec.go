package cache

import (
	"encoding/json"
	"time"
)

// HitInfo describes a cache hit to Spec.OnHit.
type HitInfo struct {
	Key       string
	StartedAt time.Time
}

// Spec configures caching for one operation.
type Spec[I, O any] struct {
	// Key returns the key suffix for an input. An empty suffix disables
	// caching for that call.
	Key func(I) string

	// Namespace prefixes the key. Default: "tool:<operation>".
	Namespace string

	// HashInput appends a content hash of the whole input to the suffix.
	HashInput bool

	// Serialize encodes a result. Returning false skips the write.
	// Default: JSON.
	Serialize func(O, I) ([]byte, bool, error)

	// Deserialize decodes a stored value. Default: JSON.
	Deserialize func([]byte) (O, error)

	// OnHit post-processes a cached value, e.g. to recompute fields that
	// depend on elapsed time.
	OnHit func(O, I, HitInfo) O

	// ShouldBypass skips the cache entirely for an input.
	ShouldBypass func(I) bool

	// TTL is the fixed expiry. TTLFunc, when set, takes precedence.
	TTL     time.Duration
	TTLFunc func(I, O) time.Duration
}

func (s *Spec[I, O]) serialize(result O, input I) ([]byte, bool, error) {
	if s.Serialize != nil {
		return s.Serialize(result, input)
	}
	data, err := json.Marshal(result)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *Spec[I, O]) deserialize(data []byte) (O, error) {
	if s.Deserialize != nil {
		return s.Deserialize(data)
	}
	var out O
	err := json.Unmarshal(data, &out)
	return out, err
}

func (s *Spec[I, O]) ttl(input I, result O) time.Duration {
	if s.TTLFunc != nil {
		return s.TTLFunc(input, result)
	}
	return s.TTL
}
