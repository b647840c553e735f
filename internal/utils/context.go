// Package utils provides small helpers shared by the client packages:
// session id generation and propagation through context, the resty client
// wrapper, and header and JSON helpers for HTTP.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// SessionIDCtxKey is the key under which the sync session id travels with
// outgoing requests.
var SessionIDCtxKey = contextKey("sessionID")

// WithSessionID returns a copy of ctx carrying the session id.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDCtxKey, sessionID)
}

// GetSessionIDFromContext retrieves the session id from the context.
//
// Returns the id and an ok flag:
//   - ok == true  - a non-empty string value is present
//   - ok == false - value is missing, empty or has an unexpected type
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDCtxKey).(string)
	return sessionID, ok && sessionID != ""
}
