package guard

import "errors"

// Sentinel errors for guarded calls.
var (
	// ErrInvalidInput wraps input validation failures. The operation is not
	// executed and no guardrail runs.
	ErrInvalidInput = errors.New("guard: invalid input")

	// ErrInvalidOperation is returned for an operation without a name or an
	// execute function.
	ErrInvalidOperation = errors.New("guard: invalid operation")
)
