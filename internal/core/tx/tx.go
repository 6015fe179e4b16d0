// Package tx implements ambient transaction semantics for a request scope.
//
// A Scope wraps one raw database connection and lazily opens at most one real
// transaction for its whole lifetime. Every transactional handler that runs
// inside the scope calls Begin, which returns the same Counter with its begin
// count incremented. The counter tallies begins against commit signals, and at
// scope close the real transaction commits only if every begin was matched by
// a commit signal. Handlers never need to know whether they are nested.
//
// The package depends only on the two capability interfaces below; the pgx
// adapter lives in infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Tx is the raw transaction capability the scope finalizes.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Conn is the raw connection capability a Scope owns exclusively.
// Begin must open a new real transaction; Close must release the session.
type Conn interface {
	Begin(ctx context.Context) (Tx, error)
	Close(ctx context.Context) error
}

// --- Context-based scope access ---

type scopeKey struct{}

// WithScope adds the request's Scope to context.
func WithScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// FromContext returns the Scope from context, or nil if none.
func FromContext(ctx context.Context) *Scope {
	if s, ok := ctx.Value(scopeKey{}).(*Scope); ok {
		return s
	}
	return nil
}

// MustFromContext returns the Scope from context.
// Panics if absent - this indicates a programming error (missing scope middleware).
func MustFromContext(ctx context.Context) *Scope {
	s := FromContext(ctx)
	if s == nil {
		panic("tx: no scope in context (scope middleware not installed?)")
	}
	return s
}
