package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/bank-loan-ledger/internal/domain/customer"
	"github.com/bank-loan-ledger/internal/domain/ledger"
	"github.com/bank-loan-ledger/internal/domain/loan"
	"github.com/bank-loan-ledger/internal/domain/shared"
)

// LoanServiceImpl implements the LoanService interface
type LoanServiceImpl struct {
	customerRepo       customer.Repository
	loanRepo           loan.Repository
	transactionRepo    ledger.Repository
	txExecutor         TxExecutor
	autoCreateCustomer bool
	logger             *slog.Logger
}

// NewLoanService creates a new loan service
func NewLoanService(
	logger *slog.Logger,
	customerRepo customer.Repository,
	loanRepo loan.Repository,
	transactionRepo ledger.Repository,
	txExecutor TxExecutor,
	autoCreateCustomer bool,
) LoanService {
	return &LoanServiceImpl{
		customerRepo:       customerRepo,
		loanRepo:           loanRepo,
		transactionRepo:    transactionRepo,
		txExecutor:         txExecutor,
		autoCreateCustomer: autoCreateCustomer,
		logger:             logger,
	}
}

// DisburseLoan validates the loan parameters, ensures the customer exists and
// persists a new active loan with nothing paid yet.
func (s *LoanServiceImpl) DisburseLoan(ctx context.Context, customerID string, principal float64, years int, rate float64) (*loan.Loan, error) {
	// Validate the terms before ensureCustomer so invalid input never
	// provisions a customer record.
	l, err := loan.NewLoan(customerID, principal, years, rate)
	if err != nil {
		return nil, err
	}

	if err := s.ensureCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	if err := s.loanRepo.Create(ctx, l); err != nil {
		return nil, err
	}

	s.logger.Info("Loan disbursed",
		"loan_id", l.LoanID,
		"customer_id", customerID,
		"principal", l.PrincipalAmount,
		"monthly_emi", l.MonthlyEMI)

	return l, nil
}

// ensureCustomer loads the customer, provisioning a placeholder record when
// the customer is unknown and auto-creation is enabled.
func (s *LoanServiceImpl) ensureCustomer(ctx context.Context, customerID string) error {
	_, err := s.customerRepo.GetByID(ctx, customerID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, customer.ErrCustomerNotFound{}) {
		return err
	}
	if !s.autoCreateCustomer {
		return err
	}

	c, err := customer.NewAutoProvisioned(customerID)
	if err != nil {
		return err
	}
	if err := s.customerRepo.Create(ctx, c); err != nil {
		// A concurrent request may have provisioned the same customer
		// between our lookup and insert; the record existing is all we need.
		var dup customer.ErrDuplicateEmail
		if errors.As(err, &dup) {
			s.logger.Info("Customer provisioned concurrently", "customer_id", customerID)
			return nil
		}
		return err
	}

	s.logger.Info("Auto-provisioned customer", "customer_id", customerID)
	return nil
}

// RecordPayment processes a payment inside a database transaction: the loan
// row is locked, the payment validated and appended to the transaction log,
// and the loan reconciled and updated. Concurrent payments against the same
// loan serialize on the row lock.
func (s *LoanServiceImpl) RecordPayment(ctx context.Context, loanID string, paymentType shared.PaymentType, amount float64) (*PaymentResult, error) {
	var result *PaymentResult

	err := s.txExecutor.ExecuteTx(ctx, func(tx pgx.Tx) error {
		loanRepo := s.loanRepo.WithTx(tx)

		l, err := loanRepo.LockForUpdate(ctx, loanID)
		if err != nil {
			return err
		}

		if err := l.ApplyPayment(paymentType, amount); err != nil {
			return err
		}

		// The transaction log write is not part of the Postgres transaction;
		// if the commit below fails the log can hold a record for a payment
		// that was never applied. Accepted: the log is append-only evidence,
		// the loan row is the balance authority.
		txn := ledger.NewTransaction(l.LoanID, paymentType, amount)
		if err := s.transactionRepo.Append(ctx, txn); err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}

		balance := l.Reconcile()

		if err := loanRepo.Update(ctx, l); err != nil {
			return err
		}

		result = &PaymentResult{
			LoanID:        l.LoanID,
			Amount:        amount,
			NewBalance:    balance.BalanceAmount,
			RemainingEMIs: balance.EMIsLeft,
			Status:        l.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment recorded",
		"loan_id", result.LoanID,
		"type", string(paymentType),
		"amount", amount,
		"new_balance", result.NewBalance,
		"status", string(result.Status))

	return result, nil
}

// GetLedger returns the loan's reconciled state with its full transaction
// history ordered by transaction date ascending.
func (s *LoanServiceImpl) GetLedger(ctx context.Context, loanID string) (*LedgerView, error) {
	l, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	balance := l.Reconcile()

	return &LedgerView{
		Loan:          l,
		BalanceAmount: balance.BalanceAmount,
		EMIsLeft:      balance.EMIsLeft,
		Transactions:  transactions,
	}, nil
}

// GetCustomerOverview returns every loan the customer has taken, each with an
// independently reconciled balance.
func (s *LoanServiceImpl) GetCustomerOverview(ctx context.Context, customerID string) (*CustomerOverview, error) {
	c, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	loans, err := s.loanRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]LoanSummary, 0, len(loans))
	for _, l := range loans {
		balance := l.Reconcile()
		summaries = append(summaries, LoanSummary{
			Loan:          l,
			BalanceAmount: balance.BalanceAmount,
			EMIsLeft:      balance.EMIsLeft,
		})
	}

	return &CustomerOverview{
		Customer: c,
		Loans:    summaries,
	}, nil
}
