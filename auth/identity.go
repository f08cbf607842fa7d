package auth

import (
	"slices"
	"time"
)

// Identity is a verified caller, attached to a CallContext by Verify.
type Identity struct {
	// Principal names the caller; the identifier resolver uses it when no
	// caller-id header is present.
	Principal string
	Tenant    string
	Roles     []string

	// Claims holds every claim of the verified token.
	Claims map[string]any

	// ExpiresAt is zero when the token carries no expiry.
	ExpiresAt time.Time
}

// HasRole reports whether role was granted.
func (id *Identity) HasRole(role string) bool {
	return id != nil && slices.Contains(id.Roles, role)
}

// Expired reports whether the identity is past its expiry at now.
func (id *Identity) Expired(now time.Time) bool {
	return !id.ExpiresAt.IsZero() && now.After(id.ExpiresAt)
}
