package cache

import "time"

// EffectiveTTL returns the expiry to send to the store. Positive values are
// floored to whole seconds with a minimum of one second. Zero or negative
// means no expiry.
func EffectiveTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	floored := ttl.Truncate(time.Second)
	if floored < time.Second {
		return time.Second
	}
	return floored
}
