package handler

import (
	"time"

	"github.com/bank-loan-ledger/internal/api/service"
	"github.com/bank-loan-ledger/internal/domain/ledger"
	"github.com/bank-loan-ledger/internal/domain/loan"
	"github.com/bank-loan-ledger/internal/domain/money"
)

// DisburseLoanRequest represents a request to disburse a new loan.
// InterestRate is a pointer so that an explicit zero rate passes the
// required binding.
type DisburseLoanRequest struct {
	CustomerID      string   `json:"customer_id" binding:"required"`
	PrincipalAmount float64  `json:"principal_amount" binding:"required,gt=0"`
	LoanPeriodYears int      `json:"loan_period_years" binding:"required,min=1"`
	InterestRate    *float64 `json:"interest_rate" binding:"required,gte=0"`
}

// PaymentRequest represents a payment against a loan
type PaymentRequest struct {
	PaymentType string  `json:"payment_type" binding:"required,oneof=EMI LUMP_SUM"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
}

// LoanResponse represents a loan in API responses
type LoanResponse struct {
	LoanID          string    `json:"loan_id"`
	CustomerID      string    `json:"customer_id"`
	PrincipalAmount float64   `json:"principal_amount"`
	LoanPeriodYears int       `json:"loan_period_years"`
	InterestRate    float64   `json:"interest_rate"`
	TotalInterest   float64   `json:"total_interest"`
	TotalAmount     float64   `json:"total_amount"`
	MonthlyEMI      float64   `json:"monthly_emi"`
	AmountPaid      float64   `json:"amount_paid"`
	EMIPaidCount    int       `json:"emi_paid_count"`
	StartDate       time.Time `json:"start_date"`
	Status          string    `json:"status"`
}

// DisburseLoanResponse wraps the created loan with a confirmation message
type DisburseLoanResponse struct {
	Message string       `json:"message"`
	Loan    LoanResponse `json:"loan"`
}

// PaymentResponse reports the loan state after a processed payment
type PaymentResponse struct {
	Message                   string  `json:"message"`
	LoanID                    string  `json:"loan_id"`
	AmountPaidThisTransaction float64 `json:"amount_paid_this_transaction"`
	NewBalanceAmount          float64 `json:"new_balance_amount"`
	RemainingEMIs             int     `json:"remaining_emis"`
	Status                    string  `json:"status"`
}

// TransactionResponse represents a single ledger transaction
type TransactionResponse struct {
	TransactionID   string    `json:"transaction_id"`
	LoanID          string    `json:"loan_id"`
	TransactionType string    `json:"transaction_type"`
	Amount          float64   `json:"amount"`
	TransactionDate time.Time `json:"transaction_date"`
	Remarks         string    `json:"remarks,omitempty"`
}

// LedgerResponse combines loan state with the full transaction history
type LedgerResponse struct {
	LoanID             string                `json:"loan_id"`
	PrincipalAmount    float64               `json:"principal_amount"`
	TotalAmount        float64               `json:"total_amount"`
	MonthlyEMI         float64               `json:"monthly_emi"`
	TotalInterest      float64               `json:"total_interest"`
	AmountPaidTillDate float64               `json:"amount_paid_till_date"`
	BalanceAmount      float64               `json:"balance_amount"`
	NumberOfEMILeft    int                   `json:"number_of_emi_left"`
	Status             string                `json:"status"`
	Transactions       []TransactionResponse `json:"transactions"`
}

// LoanOverviewItem is one loan inside a customer overview
type LoanOverviewItem struct {
	LoanID             string  `json:"loan_id"`
	PrincipalAmount    float64 `json:"principal_amount"`
	TotalAmount        float64 `json:"total_amount"`
	EMIAmount          float64 `json:"emi_amount"`
	TotalInterest      float64 `json:"total_interest"`
	AmountPaidTillDate float64 `json:"amount_paid_till_date"`
	NumberOfEMILeft    int     `json:"number_of_emi_left"`
	Status             string  `json:"status"`
}

// CustomerOverviewResponse lists all loans a customer has taken
type CustomerOverviewResponse struct {
	CustomerID   string             `json:"customer_id"`
	CustomerName string             `json:"customer_name"`
	Loans        []LoanOverviewItem `json:"loans"`
}

func mapLoanToResponse(l *loan.Loan) LoanResponse {
	return LoanResponse{
		LoanID:          l.LoanID,
		CustomerID:      l.CustomerID,
		PrincipalAmount: l.PrincipalAmount,
		LoanPeriodYears: l.LoanPeriodYears,
		InterestRate:    l.InterestRate,
		TotalInterest:   l.TotalInterest,
		TotalAmount:     l.TotalAmount,
		MonthlyEMI:      l.MonthlyEMI,
		AmountPaid:      l.AmountPaid,
		EMIPaidCount:    l.EMIPaidCount,
		StartDate:       l.StartDate,
		Status:          string(l.Status),
	}
}

func mapTransactionToResponse(t *ledger.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		LoanID:          t.LoanID,
		TransactionType: string(t.TransactionType),
		Amount:          t.Amount,
		TransactionDate: t.TransactionDate,
		Remarks:         t.Remarks,
	}
}

func mapLedgerToResponse(view *service.LedgerView) LedgerResponse {
	transactions := make([]TransactionResponse, 0, len(view.Transactions))
	for _, t := range view.Transactions {
		transactions = append(transactions, mapTransactionToResponse(t))
	}

	return LedgerResponse{
		LoanID:             view.Loan.LoanID,
		PrincipalAmount:    view.Loan.PrincipalAmount,
		TotalAmount:        view.Loan.TotalAmount,
		MonthlyEMI:         view.Loan.MonthlyEMI,
		TotalInterest:      view.Loan.TotalInterest,
		AmountPaidTillDate: money.Round2(view.Loan.AmountPaid),
		BalanceAmount:      view.BalanceAmount,
		NumberOfEMILeft:    view.EMIsLeft,
		Status:             string(view.Loan.Status),
		Transactions:       transactions,
	}
}

func mapOverviewToResponse(overview *service.CustomerOverview) CustomerOverviewResponse {
	loans := make([]LoanOverviewItem, 0, len(overview.Loans))
	for _, summary := range overview.Loans {
		loans = append(loans, LoanOverviewItem{
			LoanID:             summary.Loan.LoanID,
			PrincipalAmount:    summary.Loan.PrincipalAmount,
			TotalAmount:        summary.Loan.TotalAmount,
			EMIAmount:          summary.Loan.MonthlyEMI,
			TotalInterest:      summary.Loan.TotalInterest,
			AmountPaidTillDate: money.Round2(summary.Loan.AmountPaid),
			NumberOfEMILeft:    summary.EMIsLeft,
			Status:             string(summary.Loan.Status),
		})
	}

	return CustomerOverviewResponse{
		CustomerID:   overview.Customer.CustomerID,
		CustomerName: overview.Customer.Name,
		Loans:        loans,
	}
}
