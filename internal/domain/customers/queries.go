package customers

import (
	"context"

	"github.com/google/uuid"

	"tradebook/internal/core/apperror"
)

// CustomersByCountry asks for all customers registered in a country.
type CustomersByCountry struct {
	Country string
}

// CustomersByCountryHandler resolves CustomersByCountry against the repository.
// An empty result is legitimate and comes back as an empty slice.
type CustomersByCountryHandler struct {
	repo Repository
}

func NewCustomersByCountryHandler(repo Repository) *CustomersByCountryHandler {
	return &CustomersByCountryHandler{repo: repo}
}

func (h *CustomersByCountryHandler) Handle(ctx context.Context, q CustomersByCountry) ([]*Customer, error) {
	if q.Country == "" {
		return nil, apperror.NewValidation("country is required")
	}
	return h.repo.ListByCountry(ctx, q.Country)
}

// CustomerByID asks for a single customer.
type CustomerByID struct {
	ID uuid.UUID
}

// CustomerByIDHandler resolves CustomerByID against the repository.
type CustomerByIDHandler struct {
	repo Repository
}

func NewCustomerByIDHandler(repo Repository) *CustomerByIDHandler {
	return &CustomerByIDHandler{repo: repo}
}

func (h *CustomerByIDHandler) Handle(ctx context.Context, q CustomerByID) (*Customer, error) {
	if q.ID == uuid.Nil {
		return nil, apperror.NewValidation("customer id is required")
	}
	return h.repo.GetByID(ctx, q.ID)
}
