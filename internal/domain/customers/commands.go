package customers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tradebook/internal/core/apperror"
	"tradebook/pkg/logger"
)

// AddCustomer registers a new customer. The generated ID is written back onto
// the command so the caller can read it after Handle returns.
type AddCustomer struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Country     string
	City        string
	Street      string
	CreditLimit decimal.Decimal
}

// AddCustomerHandler validates the command and persists the customer.
// Wrap it in cqs.NewTransactional to make it participate in the request's
// shared transaction.
type AddCustomerHandler struct {
	repo Repository
}

func NewAddCustomerHandler(repo Repository) *AddCustomerHandler {
	return &AddCustomerHandler{repo: repo}
}

func (h *AddCustomerHandler) Handle(ctx context.Context, cmd *AddCustomer) error {
	if cmd.Name == "" {
		return apperror.NewValidation("customer name is required")
	}
	if cmd.Country == "" {
		return apperror.NewValidation("customer country is required")
	}
	if !emailRE.MatchString(cmd.Email) {
		return apperror.NewValidation("invalid email address").WithDetail("email", cmd.Email)
	}
	if cmd.CreditLimit.IsNegative() {
		return apperror.NewValidation("credit limit must not be negative")
	}

	count, err := h.repo.CountByEmail(ctx, cmd.Email)
	if err != nil {
		return fmt.Errorf("check email uniqueness: %w", err)
	}
	if count > 0 {
		return apperror.NewDuplicate("customer", "email", cmd.Email)
	}

	if cmd.ID == uuid.Nil {
		cmd.ID = uuid.New()
	}

	customer := &Customer{
		ID:          cmd.ID,
		Name:        cmd.Name,
		Email:       cmd.Email,
		Country:     cmd.Country,
		City:        cmd.City,
		Street:      cmd.Street,
		CreditLimit: cmd.CreditLimit,
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.repo.Create(ctx, customer); err != nil {
		return err
	}

	logger.Debug(ctx, "customer added", "customer_id", cmd.ID, "country", cmd.Country)
	return nil
}

// MoveCustomer changes an existing customer's address.
type MoveCustomer struct {
	ID      uuid.UUID
	Country string
	City    string
	Street  string
}

// MoveCustomerHandler applies an address change.
type MoveCustomerHandler struct {
	repo Repository
}

func NewMoveCustomerHandler(repo Repository) *MoveCustomerHandler {
	return &MoveCustomerHandler{repo: repo}
}

func (h *MoveCustomerHandler) Handle(ctx context.Context, cmd *MoveCustomer) error {
	if cmd.ID == uuid.Nil {
		return apperror.NewValidation("customer id is required")
	}
	if cmd.Country == "" {
		return apperror.NewValidation("customer country is required")
	}

	return h.repo.UpdateAddress(ctx, cmd.ID, cmd.Country, cmd.City, cmd.Street)
}
