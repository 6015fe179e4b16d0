package postgres

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

func TestCustomerRepo_ListByCountry_SQL(t *testing.T) {
	repo := NewCustomerRepo()

	q := repo.baseSelect().
		Where(squirrel.Eq{"country": "Germany"}).
		OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT id, name, email, country, city, street, credit_limit, created_at " +
		"FROM customers WHERE country = $1 ORDER BY name"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 1 || args[0] != "Germany" {
		t.Errorf("Args mismatch\nwant: [Germany]\ngot:  %v", args)
	}
}

func TestCustomerRepo_UpdateAddress_SQL(t *testing.T) {
	repo := NewCustomerRepo()
	entityID := uuid.New()

	q := repo.Builder().
		Update(customerTable).
		Set("country", "Germany").
		Set("city", "Hamburg").
		Set("street", "Hafenstr. 1").
		Where(squirrel.Eq{"id": entityID})

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "UPDATE customers SET country = $1, city = $2, street = $3 WHERE id = $4"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 4 || args[3] != entityID {
		t.Errorf("Args mismatch, got: %v", args)
	}
}
