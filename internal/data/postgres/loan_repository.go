package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/bank-loan-ledger/internal/domain/loan"
	"github.com/bank-loan-ledger/internal/platform/persistence"
)

const loanColumns = `loan_id, customer_id, principal_amount, loan_period_years, interest_rate,
		total_interest, total_amount, monthly_emi, amount_paid, emi_paid_count,
		start_date, status, created_at, updated_at`

// LoanRepository implements the loan.Repository interface for PostgreSQL
type LoanRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewLoanRepository creates a new PostgreSQL loan repository
func NewLoanRepository(logger *slog.Logger, db *persistence.PostgresDB) loan.Repository {
	return &LoanRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a copy of the repository bound to the given transaction,
// allowing the payment read-modify-write sequence to run atomically.
func (r *LoanRepository) WithTx(tx pgx.Tx) loan.Repository {
	return &LoanRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a newly disbursed loan
func (r *LoanRepository) Create(ctx context.Context, l *loan.Loan) error {
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.querier.Exec(ctx, query,
		l.LoanID,
		l.CustomerID,
		l.PrincipalAmount,
		l.LoanPeriodYears,
		l.InterestRate,
		l.TotalInterest,
		l.TotalAmount,
		l.MonthlyEMI,
		l.AmountPaid,
		l.EMIPaidCount,
		l.StartDate,
		l.Status,
		l.CreatedAt,
		l.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create loan", "loan_id", l.LoanID, "error", err)
		return fmt.Errorf("failed to create loan: %w", err)
	}

	return nil
}

// GetByID retrieves a loan by its loan id
func (r *LoanRepository) GetByID(ctx context.Context, loanID string) (*loan.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE loan_id = $1
	`

	l, err := r.scanLoan(r.querier.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, loan.ErrLoanNotFound{LoanID: loanID}
		}
		r.logger.Error("Failed to get loan", "loan_id", loanID, "error", err)
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}

	return l, nil
}

// GetByCustomerID retrieves all loans taken by a customer, oldest first
func (r *LoanRepository) GetByCustomerID(ctx context.Context, customerID string) ([]*loan.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE customer_id = $1
		ORDER BY start_date ASC
	`

	rows, err := r.querier.Query(ctx, query, customerID)
	if err != nil {
		r.logger.Error("Failed to get loans for customer", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf("failed to get loans for customer: %w", err)
	}
	defer rows.Close()

	var loans []*loan.Loan
	for rows.Next() {
		l, err := r.scanLoan(rows)
		if err != nil {
			r.logger.Error("Failed to scan loan row", "customer_id", customerID, "error", err)
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		loans = append(loans, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read loan rows: %w", err)
	}

	return loans, nil
}

// Update persists the mutable loan fields after payment reconciliation
func (r *LoanRepository) Update(ctx context.Context, l *loan.Loan) error {
	query := `
		UPDATE loans
		SET amount_paid = $1, emi_paid_count = $2, status = $3, updated_at = $4
		WHERE loan_id = $5
	`

	result, err := r.querier.Exec(ctx, query,
		l.AmountPaid,
		l.EMIPaidCount,
		l.Status,
		l.UpdatedAt,
		l.LoanID,
	)
	if err != nil {
		r.logger.Error("Failed to update loan", "loan_id", l.LoanID, "error", err)
		return fmt.Errorf("failed to update loan: %w", err)
	}

	if result.RowsAffected() == 0 {
		return loan.ErrLoanNotFound{LoanID: l.LoanID}
	}

	return nil
}

// LockForUpdate obtains a row lock on the loan and returns its current state.
// Must be called within a transaction; concurrent payments against the same
// loan serialize on this lock.
func (r *LoanRepository) LockForUpdate(ctx context.Context, loanID string) (*loan.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE loan_id = $1
		FOR UPDATE
	`

	l, err := r.scanLoan(r.querier.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, loan.ErrLoanNotFound{LoanID: loanID}
		}
		r.logger.Error("Failed to lock loan for update", "loan_id", loanID, "error", err)
		return nil, fmt.Errorf("failed to lock loan for update: %w", err)
	}

	return l, nil
}

func (r *LoanRepository) scanLoan(row pgx.Row) (*loan.Loan, error) {
	var l loan.Loan
	err := row.Scan(
		&l.LoanID,
		&l.CustomerID,
		&l.PrincipalAmount,
		&l.LoanPeriodYears,
		&l.InterestRate,
		&l.TotalInterest,
		&l.TotalAmount,
		&l.MonthlyEMI,
		&l.AmountPaid,
		&l.EMIPaidCount,
		&l.StartDate,
		&l.Status,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
