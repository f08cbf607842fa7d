// Package redisconn connects to the Redis server shared by the cache and
// rate limit backends.
//
// Connect parses a redis:// URL, pings the server and retries a bounded
// number of times before giving up. An empty URL yields
// ErrRedisNotConfigured, which callers treat as "run without backends".
//
//	client, err := redisconn.Connect(ctx, cfg)
//	if errors.Is(err, redisconn.ErrRedisNotConfigured) {
//	    // guardrails degrade
//	}
package redisconn
