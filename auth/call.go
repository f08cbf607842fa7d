package auth

import (
	"net/textproto"
	"strings"
)

// Header names read from a CallContext.
const (
	HeaderUserID       = "X-User-Id"
	HeaderForwardedFor = "X-Forwarded-For"
	HeaderCallID       = "X-Call-Id"
)

// CallContext is the per-call request context passed explicitly into every
// guarded operation. The zero value means "no request context".
type CallContext struct {
	// Headers are the inbound request headers. Lookup is case-insensitive.
	Headers map[string][]string

	// CallID correlates telemetry for one call.
	CallID string

	// Workflow is an optional workflow tag for telemetry.
	Workflow string

	// Identity is the verified caller identity, if any.
	Identity *Identity
}

// NewCallContext builds a CallContext from request headers, taking the
// correlation id from the X-Call-Id header.
func NewCallContext(headers map[string][]string) CallContext {
	cc := CallContext{Headers: headers}
	cc.CallID = strings.TrimSpace(cc.Header(HeaderCallID))
	return cc
}

// Header returns the first value of the named header, or "".
func (c CallContext) Header(name string) string {
	if c.Headers == nil {
		return ""
	}
	if values := c.Headers[textproto.CanonicalMIMEHeaderKey(name)]; len(values) > 0 {
		return values[0]
	}
	for k, values := range c.Headers {
		if strings.EqualFold(k, name) && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// WithIdentity returns a copy of the context carrying id.
func (c CallContext) WithIdentity(id *Identity) CallContext {
	c.Identity = id
	return c
}

// Principal returns the verified principal, or "" when none is attached.
func (c CallContext) Principal() string {
	if c.Identity == nil {
		return ""
	}
	return c.Identity.Principal
}
