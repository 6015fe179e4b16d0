// Package customers provides the customer aggregate: the entity, its
// repository contract, and the command and query handlers built on it.
package customers

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Customer represents a business customer.
type Customer struct {
	ID uuid.UUID `db:"id" json:"id"`

	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`

	// Address
	Country string `db:"country" json:"country"`
	City    string `db:"city" json:"city"`
	Street  string `db:"street" json:"street"`

	// CreditLimit is the maximum open order value allowed for this customer.
	CreditLimit decimal.Decimal `db:"credit_limit" json:"creditLimit"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Columns lists the customer table columns in db-tag order.
// Kept next to the struct so the two cannot drift silently.
func Columns() []string {
	return []string{"id", "name", "email", "country", "city", "street", "credit_limit", "created_at"}
}
