package tx

import (
	"context"
	"fmt"
)

// Counter wraps one real transaction and tallies begin requests against
// commit signals. It is the mechanism by which an arbitrary depth of nested
// or sequential transactional calls collapses into a single all-or-nothing
// outcome: the real transaction commits iff every begin was matched by a
// commit signal at finalize time.
//
// A Counter is created by Scope on the first Begin and finalized exactly once
// at scope close. It never opens the real transaction itself - the transaction
// is already open when the counter is constructed.
type Counter struct {
	tx      Tx
	begins  int
	commits int
	done    bool
}

// NewCounter creates a Counter over an already-open transaction.
func NewCounter(tx Tx) *Counter {
	return &Counter{tx: tx}
}

// RequestBegin records one transaction request against this scope.
// It mutates internal state only; the real transaction is untouched.
func (c *Counter) RequestBegin() {
	c.begins++
}

// SignalCommit records one successfully completed unit of work.
// Must be called at most once per begin, and never for a failed invocation.
// Panics if it would make commits exceed begins - that is always a bug in
// the calling decorator.
func (c *Counter) SignalCommit() {
	if c.commits >= c.begins {
		panic(fmt.Sprintf("tx: commit signalled without matching begin (begins=%d commits=%d)", c.begins, c.commits))
	}
	c.commits++
}

// Finalize resolves the transaction: commit if every begin was matched by a
// commit signal, rollback otherwise.
//
// Finalize is a no-op after the first call and returns nil. Scope teardown
// runs under defer on every exit path, where a second call must be harmless
// rather than a panic; the commit-vs-rollback decision is still made exactly
// once.
func (c *Counter) Finalize(ctx context.Context) error {
	if c.done {
		return nil
	}
	c.done = true

	if c.commits == c.begins {
		if err := c.tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	}

	if err := c.tx.Rollback(ctx); err != nil {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}

// Begins returns how many times a transaction was requested in this scope.
func (c *Counter) Begins() int { return c.begins }

// Commits returns how many units of work completed successfully.
func (c *Counter) Commits() int { return c.commits }

// Resolved reports whether Finalize has already run.
func (c *Counter) Resolved() bool { return c.done }
