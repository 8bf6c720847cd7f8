package session

import "context"

// ctxKey is the private context key type for session injection.
type ctxKey struct{}

// NewContext returns a context carrying the session. The dispatcher
// injects the current session before tool execution so that tool handlers
// can reach the conversation's canvas.
func NewContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromContext extracts the session from the context, or nil if absent
// (e.g., a tool invoked outside a conversation turn).
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(ctxKey{}).(*Session)
	return sess
}
