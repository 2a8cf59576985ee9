// Package postgres provides PostgreSQL implementations of the customer and
// loan repositories. Master records live here; the transaction log lives in
// MongoDB.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bank-loan-ledger/internal/domain/customer"
	"github.com/bank-loan-ledger/internal/platform/persistence"
)

const uniqueViolationCode = "23505"

// CustomerRepository implements the customer.Repository interface for PostgreSQL
type CustomerRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewCustomerRepository creates a new PostgreSQL customer repository
func NewCustomerRepository(logger *slog.Logger, db *persistence.PostgresDB) customer.Repository {
	return &CustomerRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *CustomerRepository) WithTx(tx pgx.Tx) customer.Repository {
	return &CustomerRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new customer. Returns ErrDuplicateEmail when the email
// uniqueness constraint is violated.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (customer_id, name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.querier.Exec(ctx, query,
		c.CustomerID,
		c.Name,
		c.Email,
		c.Phone,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return customer.ErrDuplicateEmail{Email: c.Email}
		}
		r.logger.Error("Failed to create customer", "customer_id", c.CustomerID, "error", err)
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// GetByID retrieves a customer by its customer id
func (r *CustomerRepository) GetByID(ctx context.Context, customerID string) (*customer.Customer, error) {
	query := `
		SELECT customer_id, name, email, phone, created_at, updated_at
		FROM customers
		WHERE customer_id = $1
	`

	var c customer.Customer
	err := r.querier.QueryRow(ctx, query, customerID).Scan(
		&c.CustomerID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrCustomerNotFound{CustomerID: customerID}
		}
		r.logger.Error("Failed to get customer", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return &c, nil
}
