package auth

import (
	"context"
)

type contextKey int

const callContextKey contextKey = iota

// WithCallContext returns a new context with the given CallContext attached.
// Guarded operations receive their CallContext explicitly; this is for code
// further down the call chain.
func WithCallContext(ctx context.Context, cc CallContext) context.Context {
	return context.WithValue(ctx, callContextKey, cc)
}

// CallContextFromContext retrieves the CallContext from ctx.
func CallContextFromContext(ctx context.Context) (CallContext, bool) {
	cc, ok := ctx.Value(callContextKey).(CallContext)
	return cc, ok
}

// IdentityFromContext retrieves the verified identity from the context.
// Returns nil if no identity is present.
func IdentityFromContext(ctx context.Context) *Identity {
	cc, ok := CallContextFromContext(ctx)
	if !ok {
		return nil
	}
	return cc.Identity
}
