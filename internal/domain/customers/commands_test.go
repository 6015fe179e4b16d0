package customers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebook/internal/core/apperror"
)

// memRepo is an in-memory Repository for handler tests.
type memRepo struct {
	customers map[uuid.UUID]*Customer
}

func newMemRepo() *memRepo {
	return &memRepo{customers: make(map[uuid.UUID]*Customer)}
}

func (r *memRepo) Create(ctx context.Context, c *Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, apperror.NewNotFound("customer", id.String())
	}
	return c, nil
}

func (r *memRepo) ListByCountry(ctx context.Context, country string) ([]*Customer, error) {
	out := []*Customer{}
	for _, c := range r.customers {
		if c.Country == country {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memRepo) UpdateAddress(ctx context.Context, id uuid.UUID, country, city, street string) error {
	c, ok := r.customers[id]
	if !ok {
		return apperror.NewNotFound("customer", id.String())
	}
	c.Country, c.City, c.Street = country, city, street
	return nil
}

func (r *memRepo) CountByEmail(ctx context.Context, email string) (int64, error) {
	var n int64
	for _, c := range r.customers {
		if c.Email == email {
			n++
		}
	}
	return n, nil
}

func TestAddCustomerHandler_GeneratesIDAndPersists(t *testing.T) {
	repo := newMemRepo()
	h := NewAddCustomerHandler(repo)

	cmd := &AddCustomer{
		Name:        "Acme GmbH",
		Email:       "buy@acme.example",
		Country:     "Germany",
		City:        "Berlin",
		CreditLimit: decimal.NewFromInt(5000),
	}
	require.NoError(t, h.Handle(context.Background(), cmd))

	assert.NotEqual(t, uuid.Nil, cmd.ID, "generated ID written back onto the command")
	stored, err := repo.GetByID(context.Background(), cmd.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme GmbH", stored.Name)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestAddCustomerHandler_Validation(t *testing.T) {
	h := NewAddCustomerHandler(newMemRepo())
	ctx := context.Background()

	cases := []struct {
		name string
		cmd  *AddCustomer
	}{
		{"missing name", &AddCustomer{Email: "a@b.example", Country: "Germany"}},
		{"missing country", &AddCustomer{Name: "Acme", Email: "a@b.example"}},
		{"bad email", &AddCustomer{Name: "Acme", Email: "not-an-email", Country: "Germany"}},
		{"negative credit limit", &AddCustomer{
			Name: "Acme", Email: "a@b.example", Country: "Germany",
			CreditLimit: decimal.NewFromInt(-1),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := h.Handle(ctx, tc.cmd)
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}

func TestAddCustomerHandler_DuplicateEmail(t *testing.T) {
	repo := newMemRepo()
	h := NewAddCustomerHandler(repo)
	ctx := context.Background()

	first := &AddCustomer{Name: "Acme", Email: "dup@acme.example", Country: "Germany"}
	require.NoError(t, h.Handle(ctx, first))

	second := &AddCustomer{Name: "Other", Email: "dup@acme.example", Country: "France"}
	err := h.Handle(ctx, second)
	assert.True(t, apperror.IsDuplicate(err))
}

func TestMoveCustomerHandler(t *testing.T) {
	repo := newMemRepo()
	add := NewAddCustomerHandler(repo)
	move := NewMoveCustomerHandler(repo)
	ctx := context.Background()

	cmd := &AddCustomer{Name: "Acme", Email: "m@acme.example", Country: "Germany", City: "Berlin"}
	require.NoError(t, add.Handle(ctx, cmd))

	require.NoError(t, move.Handle(ctx, &MoveCustomer{
		ID: cmd.ID, Country: "Germany", City: "Hamburg", Street: "Hafenstr. 1",
	}))

	stored, err := repo.GetByID(ctx, cmd.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hamburg", stored.City)

	err = move.Handle(ctx, &MoveCustomer{ID: uuid.New(), Country: "Germany"})
	assert.True(t, apperror.IsNotFound(err))
}

func TestCustomersByCountryHandler_EmptyResultIsNotAnError(t *testing.T) {
	repo := newMemRepo()
	q := NewCustomersByCountryHandler(repo)

	got, err := q.Handle(context.Background(), CustomersByCountry{Country: "Germany"})
	require.NoError(t, err)
	assert.Empty(t, got)
}
