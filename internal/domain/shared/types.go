package shared

// PaymentType defines the kinds of payments accepted against a loan
type PaymentType string

const (
	PaymentTypeEMI     PaymentType = "EMI"
	PaymentTypeLumpSum PaymentType = "LUMP_SUM"
)

// IsValid reports whether the payment type is one of the accepted kinds
func (t PaymentType) IsValid() bool {
	return t == PaymentTypeEMI || t == PaymentTypeLumpSum
}

// LoanStatus defines the loan lifecycle states. The transition is one-way:
// ACTIVE -> PAID, triggered when the reconciled balance reaches zero.
type LoanStatus string

const (
	LoanStatusActive LoanStatus = "ACTIVE"
	LoanStatusPaid   LoanStatus = "PAID"
)
