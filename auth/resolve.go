package auth

import "strings"

// UnknownIdentifier is returned when no caller signal is present.
const UnknownIdentifier = "unknown"

// MaxCallerIDLength bounds the caller id used in "user:" identifiers.
const MaxCallerIDLength = 128

// ResolveIdentifier derives the rate-limit identifier for a call.
//
// Resolution order, first match wins:
//  1. X-User-Id header: "user:<id>"
//  2. verified identity principal: "user:<principal>"
//  3. first X-Forwarded-For entry: "ip:<addr>"
//  4. "unknown"
//
// The result is never empty.
func ResolveIdentifier(cc CallContext) string {
	if id := callerID(cc.Header(HeaderUserID)); id != "" {
		return "user:" + id
	}
	if id := callerID(cc.Principal()); id != "" {
		return "user:" + id
	}
	if ip := firstForwarded(cc.Header(HeaderForwardedFor)); ip != "" {
		return "ip:" + ip
	}
	return UnknownIdentifier
}

func callerID(raw string) string {
	id := strings.TrimSpace(raw)
	if len(id) > MaxCallerIDLength {
		id = truncate(id, MaxCallerIDLength)
	}
	return id
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func firstForwarded(xff string) string {
	first, _, _ := strings.Cut(xff, ",")
	return strings.TrimSpace(first)
}
