package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/bank-loan-ledger/internal/domain/customer"
	"github.com/bank-loan-ledger/internal/domain/ledger"
	"github.com/bank-loan-ledger/internal/domain/loan"
	"github.com/bank-loan-ledger/internal/domain/shared"
)

// LoanService defines the four loan bookkeeping use cases
type LoanService interface {
	// DisburseLoan creates a new loan for the customer, provisioning a
	// placeholder customer record first when auto-creation is enabled.
	// Returns customer.ErrCustomerNotFound when the customer is unknown and
	// auto-creation is disabled, or loan.ErrInvalidLoanTerms on bad input.
	DisburseLoan(ctx context.Context, customerID string, principal float64, years int, rate float64) (*loan.Loan, error)

	// RecordPayment appends a transaction to the loan's ledger and reconciles
	// the loan balance and status. Returns loan.ErrLoanNotFound,
	// loan.ErrLoanAlreadyPaid or loan.ErrInvalidPaymentAmount on failure.
	RecordPayment(ctx context.Context, loanID string, paymentType shared.PaymentType, amount float64) (*PaymentResult, error)

	// GetLedger returns the loan's current reconciled state together with all
	// its transactions, oldest first.
	GetLedger(ctx context.Context, loanID string) (*LedgerView, error)

	// GetCustomerOverview returns all of the customer's loans with
	// independently reconciled balances.
	GetCustomerOverview(ctx context.Context, customerID string) (*CustomerOverview, error)
}

// TxExecutor runs a function within a database transaction. Satisfied by
// persistence.PostgresDB.
type TxExecutor interface {
	ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// PaymentResult summarizes a processed payment and the loan state after it
type PaymentResult struct {
	LoanID        string
	Amount        float64
	NewBalance    float64
	RemainingEMIs int
	Status        shared.LoanStatus
}

// LedgerView combines a loan's reconciled state with its transaction history
type LedgerView struct {
	Loan          *loan.Loan
	BalanceAmount float64
	EMIsLeft      int
	Transactions  []*ledger.Transaction
}

// LoanSummary is a single loan's reconciled state within a customer overview
type LoanSummary struct {
	Loan          *loan.Loan
	BalanceAmount float64
	EMIsLeft      int
}

// CustomerOverview lists all loans taken by a customer
type CustomerOverview struct {
	Customer *customer.Customer
	Loans    []LoanSummary
}
