// Package dto defines request and response shapes for API v1.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"tradebook/internal/domain/customers"
)

// CreateCustomerRequest is the payload for POST /customers.
type CreateCustomerRequest struct {
	Name        string          `json:"name" binding:"required"`
	Email       string          `json:"email" binding:"required,email"`
	Country     string          `json:"country" binding:"required"`
	City        string          `json:"city"`
	Street      string          `json:"street"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
}

// ToCommand maps the request to an AddCustomer command.
func (r CreateCustomerRequest) ToCommand() *customers.AddCustomer {
	return &customers.AddCustomer{
		Name:        r.Name,
		Email:       r.Email,
		Country:     r.Country,
		City:        r.City,
		Street:      r.Street,
		CreditLimit: r.CreditLimit,
	}
}

// MoveCustomerRequest is the payload for PUT /customers/:id/address.
type MoveCustomerRequest struct {
	Country string `json:"country" binding:"required"`
	City    string `json:"city"`
	Street  string `json:"street"`
}

// CustomerResponse is the API representation of a customer.
type CustomerResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Country     string          `json:"country"`
	City        string          `json:"city"`
	Street      string          `json:"street"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// FromCustomer maps an entity to its response DTO.
func FromCustomer(c *customers.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Email:       c.Email,
		Country:     c.Country,
		City:        c.City,
		Street:      c.Street,
		CreditLimit: c.CreditLimit,
		CreatedAt:   c.CreatedAt,
	}
}

// FromCustomers maps a slice of entities.
func FromCustomers(list []*customers.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, FromCustomer(c))
	}
	return out
}
