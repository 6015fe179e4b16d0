package cqs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebook/internal/core/tx"
)

// fakeTx / fakeConn mirror the doubles in the tx package tests.
type fakeTx struct {
	commits   int
	rollbacks int
}

func (t *fakeTx) Commit(ctx context.Context) error   { t.commits++; return nil }
func (t *fakeTx) Rollback(ctx context.Context) error { t.rollbacks++; return nil }

type fakeConn struct {
	begins int
	tx     *fakeTx
}

func (c *fakeConn) Begin(ctx context.Context) (tx.Tx, error) {
	c.begins++
	c.tx = &fakeTx{}
	return c.tx, nil
}

func (c *fakeConn) Close(ctx context.Context) error { return nil }

type ping struct{ Msg string }

func scopedCtx(t *testing.T) (context.Context, *tx.Scope, *fakeConn) {
	t.Helper()
	conn := &fakeConn{}
	scope := tx.NewScope(conn)
	return tx.WithScope(context.Background(), scope), scope, conn
}

func TestTransactional_SuccessSignalsCommit(t *testing.T) {
	ctx, scope, conn := scopedCtx(t)

	handler := NewTransactional[*ping](CommandFunc[*ping](func(ctx context.Context, cmd *ping) error {
		return nil
	}))

	require.NoError(t, handler.Handle(ctx, &ping{}))
	require.NoError(t, scope.Close(ctx))
	assert.Equal(t, 1, conn.tx.commits)
}

func TestTransactional_FailurePropagatesWithoutCommitSignal(t *testing.T) {
	ctx, scope, conn := scopedCtx(t)
	boom := errors.New("boom")

	handler := NewTransactional[*ping](CommandFunc[*ping](func(ctx context.Context, cmd *ping) error {
		return boom
	}))

	assert.ErrorIs(t, handler.Handle(ctx, &ping{}), boom)
	require.NoError(t, scope.Close(ctx))
	assert.Equal(t, 1, conn.tx.rollbacks)
	assert.Equal(t, 0, conn.tx.commits)
}

func TestTransactional_TwoSequentialCallsShareOneTransaction(t *testing.T) {
	ctx, scope, conn := scopedCtx(t)

	handler := NewTransactional[*ping](CommandFunc[*ping](func(ctx context.Context, cmd *ping) error {
		return nil
	}))

	require.NoError(t, handler.Handle(ctx, &ping{Msg: "first"}))
	require.NoError(t, handler.Handle(ctx, &ping{Msg: "second"}))

	counter := scope.Counter()
	assert.Equal(t, 2, counter.Begins())
	assert.Equal(t, 2, counter.Commits())
	assert.Equal(t, 1, conn.begins, "single real transaction for both commands")

	require.NoError(t, scope.Close(ctx))
	assert.Equal(t, 1, conn.tx.commits)
}

func TestTransactional_NestedHandlerReusesCounter(t *testing.T) {
	ctx, scope, conn := scopedCtx(t)

	inner := NewTransactional[*ping](CommandFunc[*ping](func(ctx context.Context, cmd *ping) error {
		return nil
	}))
	outer := NewTransactional[*ping](CommandFunc[*ping](func(ctx context.Context, cmd *ping) error {
		return inner.Handle(ctx, &ping{Msg: "nested"})
	}))

	require.NoError(t, outer.Handle(ctx, &ping{}))

	counter := scope.Counter()
	assert.Equal(t, 2, counter.Begins())
	assert.Equal(t, 2, counter.Commits())
	assert.Equal(t, 1, conn.begins, "nesting must not open a second real transaction")

	require.NoError(t, scope.Close(ctx))
	assert.Equal(t, 1, conn.tx.commits)
}

func TestTransactional_NestedFailureRollsBackWholeScope(t *testing.T) {
	ctx, scope, conn := scopedCtx(t)
	boom := errors.New("inner failed")

	inner := NewTransactional[*ping](CommandFunc[*ping](func(ctx context.Context, cmd *ping) error {
		return boom
	}))
	outer := NewTransactional[*ping](CommandFunc[*ping](func(ctx context.Context, cmd *ping) error {
		return inner.Handle(ctx, &ping{})
	}))

	assert.ErrorIs(t, outer.Handle(ctx, &ping{}), boom)

	counter := scope.Counter()
	assert.Equal(t, 2, counter.Begins())
	assert.Equal(t, 0, counter.Commits())

	require.NoError(t, scope.Close(ctx))
	assert.Equal(t, 1, conn.tx.rollbacks)
}

func TestTransactional_CancelledHandlerCountsAsFailure(t *testing.T) {
	ctx, scope, conn := scopedCtx(t)

	handler := NewTransactional[*ping](CommandFunc[*ping](func(ctx context.Context, cmd *ping) error {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		return cancelled.Err()
	}))

	assert.ErrorIs(t, handler.Handle(ctx, &ping{}), context.Canceled)
	require.NoError(t, scope.Close(context.Background()))
	assert.Equal(t, 1, conn.tx.rollbacks)
}

func TestRollback_SuccessNeverSignalsCommit(t *testing.T) {
	ctx, scope, conn := scopedCtx(t)

	handler := NewRollback[*ping](CommandFunc[*ping](func(ctx context.Context, cmd *ping) error {
		return nil
	}))

	for i := 0; i < 3; i++ {
		require.NoError(t, handler.Handle(ctx, &ping{}))
	}

	counter := scope.Counter()
	assert.Equal(t, 3, counter.Begins())
	assert.Equal(t, 0, counter.Commits())

	require.NoError(t, scope.Close(ctx))
	assert.Equal(t, 1, conn.tx.rollbacks)
	assert.Equal(t, 0, conn.tx.commits)
}

func TestTransactional_MissingScopePanics(t *testing.T) {
	handler := NewTransactional[*ping](CommandFunc[*ping](func(ctx context.Context, cmd *ping) error {
		return nil
	}))

	assert.Panics(t, func() {
		_ = handler.Handle(context.Background(), &ping{})
	})
}
