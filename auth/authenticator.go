package auth

import (
	"context"
	"errors"
)

// Authenticator validates credentials carried by a call and returns an identity.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Context: methods should honor cancellation/deadlines.
//   - Errors: Authenticate returns ErrMissingCredentials when the call carries
//     no credentials for this authenticator, and another auth error when the
//     credentials are present but invalid.
type Authenticator interface {
	// Name returns a unique identifier for this authenticator.
	Name() string

	// Authenticate validates the call's credentials.
	Authenticate(ctx context.Context, cc CallContext) (*Identity, error)
}

// AuthenticatorFunc is an adapter to allow use of ordinary functions as Authenticators.
type AuthenticatorFunc func(ctx context.Context, cc CallContext) (*Identity, error)

// Name returns "func".
func (f AuthenticatorFunc) Name() string {
	return "func"
}

// Authenticate calls f(ctx, cc).
func (f AuthenticatorFunc) Authenticate(ctx context.Context, cc CallContext) (*Identity, error) {
	return f(ctx, cc)
}

// Verify authenticates the call and returns it with the identity attached.
// A call without credentials is returned unchanged with a nil error; invalid
// credentials are reported.
func Verify(ctx context.Context, a Authenticator, cc CallContext) (CallContext, error) {
	if a == nil {
		return cc, nil
	}
	id, err := a.Authenticate(ctx, cc)
	if errors.Is(err, ErrMissingCredentials) {
		return cc, nil
	}
	if err != nil {
		return cc, err
	}
	return cc.WithIdentity(id), nil
}
