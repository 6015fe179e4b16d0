package customers

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for customer persistence.
// The PostgreSQL implementation lives in infrastructure/storage/postgres and
// picks up the request scope's connection (and therefore its transaction)
// from context.
type Repository interface {
	// Create inserts a new customer.
	Create(ctx context.Context, c *Customer) error

	// GetByID retrieves a customer by ID. Returns apperror.NotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// ListByCountry retrieves all customers registered in the given country.
	// Zero matches yield an empty slice, not an error.
	ListByCountry(ctx context.Context, country string) ([]*Customer, error)

	// UpdateAddress changes a customer's address. Returns apperror.NotFound
	// if the customer does not exist.
	UpdateAddress(ctx context.Context, id uuid.UUID, country, city, street string) error

	// CountByEmail returns how many customers use the given email.
	CountByEmail(ctx context.Context, email string) (int64, error)
}
