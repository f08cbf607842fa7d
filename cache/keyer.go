package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// ContentHash returns the first 16 hex characters of SHA-256 over the
// canonical JSON of input. Object keys are sorted at every depth and
// numbers are kept as written.
func ContentHash(input any) (string, error) {
	canonical, err := canonicalJSON(input)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCanonicalize, err)
	}
	hash := sha256.Sum256(canonical)
	return hex.EncodeToString(hash[:8]), nil
}

// ResolveKey builds the cache key for one call.
// Format: <namespace or tool:<operation>>:<suffix>[:<content hash>]
//
// ok is false when the call should not be cached: spec is nil, bypass
// was requested, or the suffix is empty. An error means the key could not be
// built safely; callers skip caching.
func ResolveKey[I, O any](spec *Spec[I, O], operation string, input I) (key string, ok bool, err error) {
	if spec == nil || spec.Key == nil {
		return "", false, nil
	}
	if spec.ShouldBypass != nil && spec.ShouldBypass(input) {
		return "", false, nil
	}

	suffix := spec.Key(input)
	if strings.TrimSpace(suffix) == "" {
		return "", false, nil
	}

	if spec.HashInput {
		hash, err := ContentHash(input)
		if err != nil {
			return "", false, err
		}
		suffix += ":" + hash
	}

	namespace := spec.Namespace
	if namespace == "" {
		namespace = "tool:" + operation
	}

	key = namespace + ":" + suffix
	if err := ValidateKey(key); err != nil {
		return "", false, err
	}
	return key, true, nil
}

// canonicalJSON re-encodes v as generic JSON. Maps are written with sorted
// keys and json.Number values are written as decoded.
func canonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}
