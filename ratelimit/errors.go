package ratelimit

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for rate limiting.
var (
	// ErrRateLimitExceeded matches every *QuotaExceededError.
	ErrRateLimitExceeded = errors.New("ratelimit: rate limit exceeded")

	// ErrMalformedResult is returned when a limiter answers with a result
	// that violates the Result contract.
	ErrMalformedResult = errors.New("ratelimit: malformed limiter result")

	ErrInvalidLimit  = errors.New("ratelimit: limit must be positive")
	ErrInvalidWindow = errors.New("ratelimit: invalid window")
	ErrNoBackend     = errors.New("ratelimit: no backend configured")
)

// QuotaExceededError reports a denied call. It carries what a caller needs
// to build a "too many requests" response.
type QuotaExceededError struct {
	ErrorCode  string
	Identifier string
	Limit      int
	Remaining  int
	// Reset is when the quota frees up, in epoch seconds. Zero if unknown.
	Reset int64
	// RetryAfter is the number of seconds to wait, at least 1 when Reset is
	// known.
	RetryAfter int64
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("ratelimit: quota exceeded for %s (%s): limit %d, retry after %ds",
		e.Identifier, e.ErrorCode, e.Limit, e.RetryAfter)
}

// Is reports whether target is ErrRateLimitExceeded.
func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrRateLimitExceeded
}

// retryAfter returns the whole seconds a denied caller should wait, clamped
// to [1, window]. Zero means reset is unknown.
func retryAfter(reset, nowUnix int64, window time.Duration) int64 {
	if reset <= 0 {
		return 0
	}
	upper := max(1, int64((window+time.Second-1)/time.Second))
	return min(max(1, reset-nowUnix), upper)
}
