package ledger

import (
	"context"
)

// Repository manages the append-only transaction log for loans
type Repository interface {
	// Append stores a new transaction record. Records are immutable once written.
	Append(ctx context.Context, txn *Transaction) error

	// GetByLoanID returns all transactions for a loan ordered by
	// transaction_date ascending, oldest first.
	GetByLoanID(ctx context.Context, loanID string) ([]*Transaction, error)
}

// ErrDuplicateTransaction indicates transaction id uniqueness violation
type ErrDuplicateTransaction struct {
	TransactionID string
}

func (e ErrDuplicateTransaction) Error() string {
	return "duplicate transaction: " + e.TransactionID
}
