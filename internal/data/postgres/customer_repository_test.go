package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bank-loan-ledger/internal/domain/customer"
)

func newStoredCustomer() *customer.Customer {
	now := time.Now()
	return &customer.Customer{
		CustomerID: uuid.NewString(),
		Name:       "Jane Roe",
		Email:      "jane@example.com",
		Phone:      "+911234567890",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestCustomerRepository_Create(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &CustomerRepository{querier: mock, logger: newTestLogger()}
	c := newStoredCustomer()

	query := regexp.QuoteMeta(`
			INSERT INTO customers (customer_id, name, email, phone, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`)

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(c.CustomerID, c.Name, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Create(ctx, c)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(c.CustomerID, c.Name, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt).
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

		err := repo.Create(ctx, c)
		assert.Error(t, err)
		var dupErr customer.ErrDuplicateEmail
		assert.ErrorAs(t, err, &dupErr)
		assert.Equal(t, c.Email, dupErr.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		expectedErr := errors.New("db error")
		mock.ExpectExec(query).
			WithArgs(c.CustomerID, c.Name, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt).
			WillReturnError(expectedErr)

		err := repo.Create(ctx, c)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create customer")
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCustomerRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &CustomerRepository{querier: mock, logger: newTestLogger()}
	expected := newStoredCustomer()

	query := regexp.QuoteMeta(`
			SELECT customer_id, name, email, phone, created_at, updated_at
			FROM customers
			WHERE customer_id = $1
		`)

	t.Run("success", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"customer_id", "name", "email", "phone", "created_at", "updated_at"}).
			AddRow(expected.CustomerID, expected.Name, expected.Email, expected.Phone, expected.CreatedAt, expected.UpdatedAt)
		mock.ExpectQuery(query).WithArgs(expected.CustomerID).WillReturnRows(rows)

		c, err := repo.GetByID(ctx, expected.CustomerID)
		assert.NoError(t, err)
		assert.Equal(t, expected, c)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(expected.CustomerID).WillReturnError(pgx.ErrNoRows)

		c, err := repo.GetByID(ctx, expected.CustomerID)
		assert.Error(t, err)
		assert.Nil(t, c)
		var notFoundErr customer.ErrCustomerNotFound
		assert.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, expected.CustomerID, notFoundErr.CustomerID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		expectedErr := errors.New("db error")
		mock.ExpectQuery(query).WithArgs(expected.CustomerID).WillReturnError(expectedErr)

		c, err := repo.GetByID(ctx, expected.CustomerID)
		assert.Error(t, err)
		assert.Nil(t, c)
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
