package ratelimit

import "fmt"

// Result is the answer of one limiter check.
type Result struct {
	Success   bool
	Limit     int
	Remaining int
	// Reset is when the oldest counted request leaves the window, in epoch
	// seconds rounded up.
	Reset int64
}

// Validate checks the result invariants. Violations wrap ErrMalformedResult.
func (r *Result) Validate() error {
	switch {
	case r == nil:
		return fmt.Errorf("%w: nil result", ErrMalformedResult)
	case r.Limit <= 0:
		return fmt.Errorf("%w: limit %d", ErrMalformedResult, r.Limit)
	case r.Remaining < 0 || r.Remaining > r.Limit:
		return fmt.Errorf("%w: remaining %d outside [0, %d]", ErrMalformedResult, r.Remaining, r.Limit)
	case r.Reset < 0:
		return fmt.Errorf("%w: reset %d", ErrMalformedResult, r.Reset)
	}
	return nil
}

// resetSeconds converts the time the oldest entry expires to epoch seconds,
// rounded up so a caller waiting until Reset is never early.
func resetSeconds(oldestMs, windowMs int64) int64 {
	return ceilSeconds(oldestMs + windowMs)
}

func ceilSeconds(ms int64) int64 {
	return (ms + 999) / 1000
}
