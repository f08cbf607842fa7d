// Package bootstrap assembles a ready Guard from a config.Config.
//
// New builds telemetry, connects Redis when REDIS_URL is set and wires the
// Redis-backed cache store and limiter backend into a guard.Guard. A
// missing or unreachable Redis is logged and the guardrails run degraded.
package bootstrap
