// Package auth carries caller context into guarded operations.
//
// A CallContext holds the request headers, correlation id and optional
// verified identity of one call. ResolveIdentifier derives the rate-limit
// identifier from it, and JWTAuthenticator can attach a verified Identity
// from a bearer token.
package auth
