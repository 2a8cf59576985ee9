package customer

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Repository defines customer persistence operations
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, customerID string) (*Customer, error)
	WithTx(tx pgx.Tx) Repository
}

// ErrCustomerNotFound indicates a missing customer
type ErrCustomerNotFound struct {
	CustomerID string
}

func (e ErrCustomerNotFound) Error() string {
	return "customer not found: " + e.CustomerID
}

// Is implements errors.Is matching; a target with an empty CustomerID matches
// any ErrCustomerNotFound.
func (e ErrCustomerNotFound) Is(target error) bool {
	t, ok := target.(ErrCustomerNotFound)
	if !ok {
		return false
	}
	if t.CustomerID == "" {
		return true
	}
	return e.CustomerID == t.CustomerID
}

// ErrDuplicateEmail indicates email uniqueness violation
type ErrDuplicateEmail struct {
	Email string
}

func (e ErrDuplicateEmail) Error() string {
	return "customer with email already exists: " + e.Email
}
