package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/bank-loan-ledger/internal/domain/shared"
)

// Transaction is an immutable record of a single payment against a loan.
// Transactions form an append-only log; they are never updated or deleted
// and are the source of truth for the ledger view.
type Transaction struct {
	TransactionID   string             `json:"transaction_id" bson:"transaction_id"`
	LoanID          string             `json:"loan_id" bson:"loan_id"`
	TransactionType shared.PaymentType `json:"transaction_type" bson:"transaction_type"`
	Amount          float64            `json:"amount" bson:"amount"`
	TransactionDate time.Time          `json:"transaction_date" bson:"transaction_date"`
	Remarks         string             `json:"remarks,omitempty" bson:"remarks,omitempty"`
}

// NewTransaction creates a payment record for the loan, stamped with the
// current time.
func NewTransaction(loanID string, paymentType shared.PaymentType, amount float64) *Transaction {
	remarks := "Lump Sum Payment"
	if paymentType == shared.PaymentTypeEMI {
		remarks = "EMI Payment"
	}

	return &Transaction{
		TransactionID:   uuid.NewString(),
		LoanID:          loanID,
		TransactionType: paymentType,
		Amount:          amount,
		TransactionDate: time.Now(),
		Remarks:         remarks,
	}
}
