// Package ctxkeys holds context keys shared by the transport and domain
// layers. It is a leaf package so both can import it without cycles.
package ctxkeys

import "context"

// Key is the named type for all context keys set by this module.
// context.Value compares type and value, so string keys from other packages
// cannot collide.
type Key string

const (
	// RequestID carries the inbound HTTP request id into tool dispatch.
	RequestID Key = "request_id"
)

// WithValue adds a ctxkeys.Key value to the context.
func WithValue(ctx context.Context, key Key, value string) context.Context {
	return context.WithValue(ctx, key, value)
}

// String returns the value stored under key, or "" when absent.
func String(ctx context.Context, key Key) string {
	v, _ := ctx.Value(key).(string)
	return v
}
