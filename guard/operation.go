package guard

import (
	"context"
	"fmt"

	"github.com/jonwraymond/toolguard/auth"
)

// Operation is a named, typed unit of work. It is treated as immutable once
// registered.
type Operation[I, O any] struct {
	// Name identifies the operation in spans, cache keys and limiter
	// namespaces.
	Name string

	// Validate checks the input before any guardrail runs. Optional.
	Validate func(I) error

	// Execute performs the work.
	Execute func(ctx context.Context, cc auth.CallContext, input I) (O, error)
}

func (op Operation[I, O]) check() error {
	if op.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidOperation)
	}
	if op.Execute == nil {
		return fmt.Errorf("%w: %s has no execute function", ErrInvalidOperation, op.Name)
	}
	return nil
}
