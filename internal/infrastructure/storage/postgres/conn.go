package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"tradebook/internal/core/tx"
)

// Compile-time check that Conn implements the raw connection capability.
var _ tx.Conn = (*Conn)(nil)

// Querier is the statement surface shared by *pgxpool.Conn and pgx.Tx,
// so repositories work identically inside and outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Conn adapts one pooled pgx connection to tx.Conn. The underlying session is
// acquired lazily, so a request that never touches the database never takes a
// connection from the pool.
//
// Once Begin has opened the scope's single transaction, Querier routes every
// statement through it; after the transaction resolves, statements fall back
// to the plain session. A Conn is owned by exactly one request scope and is
// not safe for concurrent use.
type Conn struct {
	pool *Pool
	conn *pgxpool.Conn
	tx   pgx.Tx
}

// NewConn creates a lazily-acquired connection adapter over the pool.
func NewConn(pool *Pool) *Conn {
	return &Conn{pool: pool}
}

func (c *Conn) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	if c.conn == nil {
		conn, err := c.pool.Acquire(ctx)
		if err != nil {
			return nil, fmt.Errorf("acquire connection: %w", err)
		}
		c.conn = conn
	}
	return c.conn, nil
}

// Begin opens the real transaction on the session. The tx package guarantees
// it is called at most once per scope.
func (c *Conn) Begin(ctx context.Context) (tx.Tx, error) {
	raw, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}

	t, err := raw.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	c.tx = t
	return &connTx{owner: c, tx: t}, nil
}

// Querier returns the statement target for the current state of the scope:
// the open transaction when there is one, the plain session otherwise.
func (c *Conn) Querier(ctx context.Context) (Querier, error) {
	if c.tx != nil {
		return c.tx, nil
	}
	return c.acquire(ctx)
}

// Close releases the session back to the pool. No-op if it was never acquired.
func (c *Conn) Close(ctx context.Context) error {
	if c.conn != nil {
		c.conn.Release()
		c.conn = nil
	}
	return nil
}

// connTx resolves the real transaction and detaches it from the owning Conn,
// so statements issued after finalize route to the plain session again.
type connTx struct {
	owner *Conn
	tx    pgx.Tx
}

func (t *connTx) Commit(ctx context.Context) error {
	t.owner.tx = nil
	return t.tx.Commit(ctx)
}

func (t *connTx) Rollback(ctx context.Context) error {
	t.owner.tx = nil
	return t.tx.Rollback(ctx)
}
