// Package observe provides observability primitives for guarded operations.
//
// It wraps OpenTelemetry tracing and metrics and a small structured logger.
// The Recorder attaches guardrail events (cache_hit, rate_limited, ...) to
// the span carried by the context without affecting control flow.
// Attribute values for sensitive keys are replaced with RedactedValue.
package observe
