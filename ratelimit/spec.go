package ratelimit

import "github.com/jonwraymond/toolguard/auth"

// DefaultErrorCode is used when Spec.ErrorCode is empty.
const DefaultErrorCode = "RATE_LIMITED"

// Spec configures rate limiting for one operation.
type Spec[I any] struct {
	// ErrorCode is copied into QuotaExceededError.
	ErrorCode string

	// Identifier derives the quota identifier from the call. An empty result
	// disables limiting for that call. Nil means auth.ResolveIdentifier.
	Identifier func(I, auth.CallContext) string

	// Limit is the number of requests allowed per window.
	Limit int

	// Window is the trailing interval, e.g. "1 m" or "500 ms".
	Window string

	// Prefix overrides the namespace "ratelimit:tool:<operation>".
	Prefix string
}

func (s *Spec[I]) namespace(operation string) string {
	if s.Prefix != "" {
		return s.Prefix
	}
	return "ratelimit:tool:" + operation
}

func (s *Spec[I]) errorCode() string {
	if s.ErrorCode != "" {
		return s.ErrorCode
	}
	return DefaultErrorCode
}
