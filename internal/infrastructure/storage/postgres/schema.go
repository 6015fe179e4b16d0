package postgres

import (
	"context"
	"fmt"
)

// schemaSQL creates the customer table. The sample keeps its schema inline
// rather than carrying a migration tool.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS customers (
    id           UUID PRIMARY KEY,
    name         TEXT NOT NULL,
    email        TEXT NOT NULL,
    country      TEXT NOT NULL,
    city         TEXT NOT NULL DEFAULT '',
    street       TEXT NOT NULL DEFAULT '',
    credit_limit NUMERIC(15,2) NOT NULL DEFAULT 0,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_customers_country ON customers (country);
CREATE INDEX IF NOT EXISTS idx_customers_email ON customers (email);
`

// EnsureSchema creates the tables the service needs if they do not exist.
func EnsureSchema(ctx context.Context, pool *Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
