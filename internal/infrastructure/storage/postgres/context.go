package postgres

import (
	"context"
)

// connKey is the context key for the request's connection adapter.
type connKey struct{}

// WithConn adds the request's Conn to context. The scope middleware installs
// it next to the tx.Scope that owns the same connection.
func WithConn(ctx context.Context, c *Conn) context.Context {
	return context.WithValue(ctx, connKey{}, c)
}

// GetConn returns the request's Conn from context, or nil if none.
func GetConn(ctx context.Context) *Conn {
	if c, ok := ctx.Value(connKey{}).(*Conn); ok {
		return c
	}
	return nil
}

// MustGetConn returns the request's Conn from context.
// Panics if absent - this indicates a programming error (missing scope middleware).
func MustGetConn(ctx context.Context) *Conn {
	c := GetConn(ctx)
	if c == nil {
		panic("postgres: no connection in context (scope middleware not installed?)")
	}
	return c
}
