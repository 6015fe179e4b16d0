package cqs

import (
	"context"

	"tradebook/internal/core/tx"
)

// Transactional decorates a command handler with the request scope's shared
// transaction: Begin on the scope, run the inner handler, and signal commit
// only on success. A failing inner handler propagates its error unchanged and
// leaves the commit count short, which biases the scope's eventual outcome
// toward rollback. The decorator never opens or closes the real connection or
// transaction itself.
//
// The scope is taken from context, where the scope middleware (or a test
// harness) put it. Composition is explicit: wrap each concrete handler at
// construction time when building the object graph.
type Transactional[C any] struct {
	inner CommandHandler[C]
}

// NewTransactional wraps inner so it participates in the scope's transaction.
func NewTransactional[C any](inner CommandHandler[C]) *Transactional[C] {
	return &Transactional[C]{inner: inner}
}

func (h *Transactional[C]) Handle(ctx context.Context, cmd C) error {
	counter, err := tx.MustFromContext(ctx).Begin(ctx)
	if err != nil {
		return err
	}

	if err := h.inner.Handle(ctx, cmd); err != nil {
		return err
	}

	counter.SignalCommit()
	return nil
}

// Rollback has the same shape as Transactional but never signals commit, so
// the scope always rolls back no matter how many handlers ran successfully.
// Reads through the same scope still observe the uncommitted writes, which
// makes integration tests self-undoing: write, verify, roll back.
type Rollback[C any] struct {
	inner CommandHandler[C]
}

// NewRollback wraps inner so its writes are discarded at scope close.
func NewRollback[C any](inner CommandHandler[C]) *Rollback[C] {
	return &Rollback[C]{inner: inner}
}

func (h *Rollback[C]) Handle(ctx context.Context, cmd C) error {
	if _, err := tx.MustFromContext(ctx).Begin(ctx); err != nil {
		return err
	}
	return h.inner.Handle(ctx, cmd)
}
