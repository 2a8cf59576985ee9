package loan

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Repository defines loan persistence operations
type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, loanID string) (*Loan, error)
	GetByCustomerID(ctx context.Context, customerID string) ([]*Loan, error)
	Update(ctx context.Context, l *Loan) error

	// LockForUpdate acquires a row lock on the loan for the duration of the
	// surrounding transaction, serializing concurrent payments.
	LockForUpdate(ctx context.Context, loanID string) (*Loan, error)
	WithTx(tx pgx.Tx) Repository
}

// ErrLoanNotFound indicates a missing loan
type ErrLoanNotFound struct {
	LoanID string
}

func (e ErrLoanNotFound) Error() string {
	return "loan not found: " + e.LoanID
}

// Is implements errors.Is matching; a target with an empty LoanID matches any
// ErrLoanNotFound.
func (e ErrLoanNotFound) Is(target error) bool {
	t, ok := target.(ErrLoanNotFound)
	if !ok {
		return false
	}
	if t.LoanID == "" {
		return true
	}
	return e.LoanID == t.LoanID
}
