package loan

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bank-loan-ledger/internal/domain/money"
	"github.com/bank-loan-ledger/internal/domain/shared"
)

// Common errors
var (
	ErrInvalidLoanTerms     = errors.New("principal must be positive, period at least one year and rate non-negative")
	ErrInvalidPaymentAmount = errors.New("payment amount must be positive")
	ErrLoanAlreadyPaid      = errors.New("loan is already fully paid")
	ErrInvalidPaymentType   = errors.New("invalid payment type")
)

// Loan represents a simple-interest loan. The financial fields derived at
// disbursement (TotalInterest, TotalAmount, MonthlyEMI) are immutable;
// AmountPaid and EMIPaidCount only ever grow.
type Loan struct {
	LoanID          string            `json:"loan_id"`
	CustomerID      string            `json:"customer_id"`
	PrincipalAmount float64           `json:"principal_amount"`
	LoanPeriodYears int               `json:"loan_period_years"`
	InterestRate    float64           `json:"interest_rate"`
	TotalInterest   float64           `json:"total_interest"`
	TotalAmount     float64           `json:"total_amount"`
	MonthlyEMI      float64           `json:"monthly_emi"`
	AmountPaid      float64           `json:"amount_paid"`
	EMIPaidCount    int               `json:"emi_paid_count"`
	StartDate       time.Time         `json:"start_date"`
	Status          shared.LoanStatus `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Terms holds the financial fields derived from the loan parameters at
// disbursement time.
type Terms struct {
	TotalInterest float64
	TotalAmount   float64
	MonthlyEMI    float64
}

// ComputeTerms derives the simple-interest terms for a loan:
//
//	totalInterest = principal * years * rate
//	totalAmount   = principal + totalInterest
//	monthlyEMI    = totalAmount / (years * 12)
//
// The rate is an annual fraction of principal, not compounded. All three
// results are rounded to currency precision.
func ComputeTerms(principal float64, years int, rate float64) (Terms, error) {
	if principal <= 0 || years <= 0 || rate < 0 {
		return Terms{}, ErrInvalidLoanTerms
	}

	totalInterest := principal * float64(years) * rate
	totalAmount := principal + totalInterest

	return Terms{
		TotalInterest: money.Round2(totalInterest),
		TotalAmount:   money.Round2(totalAmount),
		MonthlyEMI:    money.Round2(totalAmount / float64(years*12)),
	}, nil
}

// NewLoan creates an active loan for the customer with terms derived from the
// given parameters and nothing paid yet.
func NewLoan(customerID string, principal float64, years int, rate float64) (*Loan, error) {
	terms, err := ComputeTerms(principal, years, rate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Loan{
		LoanID:          uuid.NewString(),
		CustomerID:      customerID,
		PrincipalAmount: principal,
		LoanPeriodYears: years,
		InterestRate:    rate,
		TotalInterest:   terms.TotalInterest,
		TotalAmount:     terms.TotalAmount,
		MonthlyEMI:      terms.MonthlyEMI,
		AmountPaid:      0,
		EMIPaidCount:    0,
		StartDate:       now,
		Status:          shared.LoanStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// ApplyPayment records a payment against the loan, growing AmountPaid and,
// for EMI payments covering at least one installment, EMIPaidCount by the
// number of whole installments covered. Lump-sum payments never increment
// the EMI count, regardless of their size.
func (l *Loan) ApplyPayment(paymentType shared.PaymentType, amount float64) error {
	if !paymentType.IsValid() {
		return ErrInvalidPaymentType
	}
	if amount <= 0 {
		return ErrInvalidPaymentAmount
	}
	if l.Status == shared.LoanStatusPaid {
		return ErrLoanAlreadyPaid
	}

	l.AmountPaid = money.Round2(l.AmountPaid + amount)
	if paymentType == shared.PaymentTypeEMI && l.MonthlyEMI > 0 && amount >= l.MonthlyEMI {
		l.EMIPaidCount += money.FloorDiv(amount, l.MonthlyEMI)
	}
	l.UpdatedAt = time.Now()

	return nil
}

// Balance is the reconciled view of what remains to be paid on a loan.
type Balance struct {
	BalanceAmount float64
	EMIsLeft      int
}

// Reconcile computes the outstanding balance and remaining installment count,
// clamping both to zero once the loan is settled. A settled loan transitions
// to PAID; the status never regresses to ACTIVE.
func (l *Loan) Reconcile() Balance {
	if l.Status == shared.LoanStatusPaid {
		return Balance{BalanceAmount: 0, EMIsLeft: 0}
	}

	balance := money.Round2(l.TotalAmount - l.AmountPaid)
	if balance <= 0 {
		l.Status = shared.LoanStatusPaid
		l.UpdatedAt = time.Now()
		return Balance{BalanceAmount: 0, EMIsLeft: 0}
	}

	emisLeft := 0
	if l.MonthlyEMI > 0 {
		emisLeft = money.CeilDiv(balance, l.MonthlyEMI)
	}

	return Balance{BalanceAmount: balance, EMIsLeft: emisLeft}
}
