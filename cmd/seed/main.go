// Package main provides a CLI tool for creating the schema and seeding
// sample customers. The seed runs through the same scope/decorator path the
// server uses, so every run is one all-or-nothing transaction.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"tradebook/internal/core/cqs"
	"tradebook/internal/core/tx"
	"tradebook/internal/domain/customers"
	"tradebook/internal/infrastructure/storage/postgres"
	"tradebook/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatalw("failed to create schema", "error", err)
	}
	log.Info("schema ready")

	if err := seedCustomers(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed customers", "error", err)
	}

	log.Info("seed completed")
}

func seedCustomers(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	repo := postgres.NewCustomerRepo()
	add := cqs.NewTransactional[*customers.AddCustomer](customers.NewAddCustomerHandler(repo))

	// One scope for the whole seed: either every customer lands or none do.
	conn := postgres.NewConn(pool)
	scope := tx.NewScope(conn)
	ctx = tx.WithScope(ctx, scope)
	ctx = postgres.WithConn(ctx, conn)

	seeds := []*customers.AddCustomer{
		{Name: "Acme GmbH", Email: "kontakt@acme.example", Country: "Germany", City: "Berlin", Street: "Unter den Linden 5", CreditLimit: decimal.NewFromInt(10000)},
		{Name: "Beta Handels AG", Email: "info@beta.example", Country: "Germany", City: "Hamburg", Street: "Hafenstr. 12", CreditLimit: decimal.NewFromInt(7500)},
		{Name: "Gamma SARL", Email: "bonjour@gamma.example", Country: "France", City: "Lyon", Street: "Rue de la Paix 3", CreditLimit: decimal.NewFromInt(5000)},
		{Name: "Delta BV", Email: "hallo@delta.example", Country: "Netherlands", City: "Utrecht", Street: "Kanaalweg 8", CreditLimit: decimal.NewFromInt(2500)},
	}

	var seedErr error
	for _, cmd := range seeds {
		if err := add.Handle(ctx, cmd); err != nil {
			seedErr = fmt.Errorf("seed customer %q: %w", cmd.Name, err)
			break
		}
		log.Infow("seeded customer", "id", cmd.ID, "name", cmd.Name, "country", cmd.Country)
	}

	if closeErr := scope.Close(ctx); closeErr != nil {
		return fmt.Errorf("close seed scope: %w", closeErr)
	}
	return seedErr
}
