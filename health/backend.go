package health

import "context"

// NewBackendChecker reports a guardrail backend reachable through ping.
// A nil ping or a failing ping yields StatusDegraded.
func NewBackendChecker(name string, ping func(context.Context) error) Checker {
	return NewCheckerFunc(name, func(ctx context.Context) Result {
		if ping == nil {
			return Degraded(name+" not configured, guardrails disabled", ErrBackendNotConfigured)
		}
		if err := ping(ctx); err != nil {
			return Degraded(name+" unreachable, guardrails degraded", err)
		}
		return Healthy(name + " reachable")
	})
}
