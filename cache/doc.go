// Package cache provides response caching for guarded operations.
//
// A Spec describes how one operation's results are keyed, encoded and
// expired. ResolveKey derives the key, and Read and Write go through a
// Gateway to a shared Store (Redis or in-memory). Store failures degrade to
// a cache miss and are never returned to the caller.
package cache
