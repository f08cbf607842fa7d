// Package ratelimit enforces per-identifier sliding-window quotas on guarded
// operations.
//
// A Spec names the limit and window for one operation. Enforce resolves the
// caller identifier, fetches the limiter for the (namespace, limit, window)
// triple from a Registry and returns a *QuotaExceededError when the quota is
// spent. Limiters come from a Backend: Redis for shared quotas across
// replicas, or memory for tests and single-process use. A Gateway without a
// backend skips limiting instead of failing.
package ratelimit
