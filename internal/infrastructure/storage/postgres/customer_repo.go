package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"tradebook/internal/core/apperror"
	"tradebook/internal/domain/customers"
)

const customerTable = "customers"

// Compile-time check that CustomerRepo implements customers.Repository.
var _ customers.Repository = (*CustomerRepo)(nil)

// CustomerRepo implements customers.Repository.
// It carries no connection state: the querier comes from the request scope in
// context, so every statement automatically joins the scope's transaction.
type CustomerRepo struct{}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo() *CustomerRepo {
	return &CustomerRepo{}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *CustomerRepo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *CustomerRepo) querier(ctx context.Context) (Querier, error) {
	return MustGetConn(ctx).Querier(ctx)
}

func (r *CustomerRepo) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(customers.Columns()...).
		From(customerTable)
}

// Create inserts a new customer.
func (r *CustomerRepo) Create(ctx context.Context, c *customers.Customer) error {
	q := r.Builder().
		Insert(customerTable).
		Columns(customers.Columns()...).
		Values(c.ID, c.Name, c.Email, c.Country, c.City, c.Street, c.CreditLimit, c.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier, err := r.querier(ctx)
	if err != nil {
		return err
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", customerTable, err)
	}

	return nil
}

// GetByID retrieves a customer by ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*customers.Customer, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": id}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}

	customer := &customers.Customer{}
	if err := pgxscan.Get(ctx, querier, customer, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("customer", id.String())
		}
		return nil, fmt.Errorf("get customer by id: %w", err)
	}

	return customer, nil
}

// ListByCountry retrieves all customers registered in the given country.
func (r *CustomerRepo) ListByCountry(ctx context.Context, country string) ([]*customers.Customer, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"country": country}).
		OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier, err := r.querier(ctx)
	if err != nil {
		return nil, err
	}

	result := []*customers.Customer{}
	if err := pgxscan.Select(ctx, querier, &result, sql, args...); err != nil {
		return nil, fmt.Errorf("list customers by country: %w", err)
	}

	return result, nil
}

// UpdateAddress changes a customer's address.
func (r *CustomerRepo) UpdateAddress(ctx context.Context, id uuid.UUID, country, city, street string) error {
	q := r.Builder().
		Update(customerTable).
		Set("country", country).
		Set("city", city).
		Set("street", street).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier, err := r.querier(ctx)
	if err != nil {
		return err
	}
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", customerTable, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("customer", id.String())
	}

	return nil
}

// CountByEmail returns how many customers use the given email.
func (r *CustomerRepo) CountByEmail(ctx context.Context, email string) (int64, error) {
	q := r.Builder().
		Select("COUNT(*)").
		From(customerTable).
		Where(squirrel.Eq{"email": email})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	querier, err := r.querier(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := querier.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count customers by email: %w", err)
	}

	return count, nil
}
