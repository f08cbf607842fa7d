// Package guard runs operations behind their configured guardrails.
//
// For each call Run opens one span and then, in this order, validates the
// input, enforces the rate limit, reads the cache, executes the operation and
// writes the cache. An over-quota call never reaches the cache or the
// operation. Missing cache or limiter backends skip their guardrail instead
// of failing the call, and operation errors are returned unchanged.
//
// Guardrails are configured per operation with Config:
//
//	cfg := guard.NewConfig(
//		guard.WithRateLimit[Query, Result](&ratelimit.Spec[Query]{Limit: 10, Window: "1 m"}),
//		guard.WithCache(&cache.Spec[Query, Result]{Key: func(q Query) string { return q.ID }, TTL: 30 * time.Minute}),
//	)
package guard
