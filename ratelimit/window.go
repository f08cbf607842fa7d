package ratelimit

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var windowUnits = map[string]time.Duration{
	"ms": time.Millisecond,
	"s":  time.Second,
	"m":  time.Minute,
	"h":  time.Hour,
	"d":  24 * time.Hour,
}

// ParseWindow parses a window such as "1 m", "60s" or "500 ms".
// The amount must be a positive integer; units are ms, s, m, h and d.
func ParseWindow(window string) (time.Duration, error) {
	s := strings.TrimSpace(window)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWindow, window)
	}

	amount, err := strconv.ParseInt(s[:i], 10, 64)
	if err != nil || amount <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWindow, window)
	}

	unit, ok := windowUnits[strings.TrimSpace(s[i:])]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit in %q", ErrInvalidWindow, window)
	}

	d := time.Duration(amount) * unit
	if d/unit != time.Duration(amount) {
		return 0, fmt.Errorf("%w: %q overflows", ErrInvalidWindow, window)
	}
	return d, nil
}
