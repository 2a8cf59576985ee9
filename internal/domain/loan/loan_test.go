package loan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bank-loan-ledger/internal/domain/shared"
)

func TestComputeTerms(t *testing.T) {
	t.Run("SimpleInterest", func(t *testing.T) {
		// P=120000, N=2, R=0.1 -> interest 24000, total 144000, EMI 6000
		terms, err := ComputeTerms(120000, 2, 0.1)

		require.NoError(t, err)
		assert.Equal(t, 24000.0, terms.TotalInterest)
		assert.Equal(t, 144000.0, terms.TotalAmount)
		assert.Equal(t, 6000.0, terms.MonthlyEMI)
	})

	t.Run("ZeroRate", func(t *testing.T) {
		terms, err := ComputeTerms(12000, 1, 0)

		require.NoError(t, err)
		assert.Equal(t, 0.0, terms.TotalInterest)
		assert.Equal(t, 12000.0, terms.TotalAmount)
		assert.Equal(t, 1000.0, terms.MonthlyEMI)
	})

	t.Run("RoundsToCurrencyPrecision", func(t *testing.T) {
		// 10000 * 1 * 0.0775 = 775; total 10775; EMI 10775/12 = 897.9166...
		terms, err := ComputeTerms(10000, 1, 0.0775)

		require.NoError(t, err)
		assert.Equal(t, 775.0, terms.TotalInterest)
		assert.Equal(t, 10775.0, terms.TotalAmount)
		assert.Equal(t, 897.92, terms.MonthlyEMI)
	})

	t.Run("InvalidInputs", func(t *testing.T) {
		cases := []struct {
			name      string
			principal float64
			years     int
			rate      float64
		}{
			{"ZeroPrincipal", 0, 2, 0.1},
			{"NegativePrincipal", -100, 2, 0.1},
			{"ZeroYears", 120000, 0, 0.1},
			{"NegativeRate", 120000, 2, -0.1},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := ComputeTerms(tc.principal, tc.years, tc.rate)
				assert.ErrorIs(t, err, ErrInvalidLoanTerms)
			})
		}
	})
}

func TestNewLoan(t *testing.T) {
	t.Run("SuccessfulDisbursement", func(t *testing.T) {
		l, err := NewLoan("cust-1", 120000, 2, 0.1)

		require.NoError(t, err)
		require.NotNil(t, l)
		assert.NotEmpty(t, l.LoanID)
		assert.Equal(t, "cust-1", l.CustomerID)
		assert.Equal(t, 24000.0, l.TotalInterest)
		assert.Equal(t, 144000.0, l.TotalAmount)
		assert.Equal(t, 6000.0, l.MonthlyEMI)
		assert.Equal(t, 0.0, l.AmountPaid)
		assert.Equal(t, 0, l.EMIPaidCount)
		assert.Equal(t, shared.LoanStatusActive, l.Status)
		assert.False(t, l.StartDate.IsZero())
	})

	t.Run("InvalidTerms", func(t *testing.T) {
		l, err := NewLoan("cust-1", -5, 2, 0.1)
		assert.ErrorIs(t, err, ErrInvalidLoanTerms)
		assert.Nil(t, l)
	})
}

func TestLoan_ApplyPayment(t *testing.T) {
	newTestLoan := func(t *testing.T) *Loan {
		l, err := NewLoan("cust-1", 120000, 2, 0.1)
		require.NoError(t, err)
		return l
	}

	t.Run("SingleEMIPayment", func(t *testing.T) {
		l := newTestLoan(t)

		err := l.ApplyPayment(shared.PaymentTypeEMI, 6000)

		require.NoError(t, err)
		assert.Equal(t, 6000.0, l.AmountPaid)
		assert.Equal(t, 1, l.EMIPaidCount)
	})

	t.Run("EMIPaymentCoveringSeveralInstallments", func(t *testing.T) {
		l := newTestLoan(t)

		err := l.ApplyPayment(shared.PaymentTypeEMI, 15000)

		require.NoError(t, err)
		assert.Equal(t, 15000.0, l.AmountPaid)
		assert.Equal(t, 2, l.EMIPaidCount, "only whole installments count")
	})

	t.Run("EMIPaymentBelowInstallment", func(t *testing.T) {
		l := newTestLoan(t)

		err := l.ApplyPayment(shared.PaymentTypeEMI, 500)

		require.NoError(t, err)
		assert.Equal(t, 500.0, l.AmountPaid)
		assert.Equal(t, 0, l.EMIPaidCount)
	})

	t.Run("EMIPaymentOnLoanWithZeroEMI", func(t *testing.T) {
		// A tiny principal rounds the monthly EMI down to 0.00; the EMI
		// count must stay untouched instead of dividing by zero.
		l, err := NewLoan("cust-1", 0.01, 1, 0)
		require.NoError(t, err)
		require.Equal(t, 0.0, l.MonthlyEMI)

		err = l.ApplyPayment(shared.PaymentTypeEMI, 0.01)

		require.NoError(t, err)
		assert.Equal(t, 0.01, l.AmountPaid)
		assert.Equal(t, 0, l.EMIPaidCount)
	})

	t.Run("LumpSumNeverIncrementsEMICount", func(t *testing.T) {
		l := newTestLoan(t)

		err := l.ApplyPayment(shared.PaymentTypeLumpSum, 60000)

		require.NoError(t, err)
		assert.Equal(t, 60000.0, l.AmountPaid)
		assert.Equal(t, 0, l.EMIPaidCount, "lump sums never count as installments")
	})

	t.Run("AmountPaidIsMonotonic", func(t *testing.T) {
		l := newTestLoan(t)

		require.NoError(t, l.ApplyPayment(shared.PaymentTypeEMI, 6000))
		require.NoError(t, l.ApplyPayment(shared.PaymentTypeLumpSum, 1234.56))
		require.NoError(t, l.ApplyPayment(shared.PaymentTypeEMI, 6000))

		assert.Equal(t, 13234.56, l.AmountPaid)
		assert.Equal(t, 2, l.EMIPaidCount)
	})

	t.Run("RejectsNonPositiveAmount", func(t *testing.T) {
		l := newTestLoan(t)

		assert.ErrorIs(t, l.ApplyPayment(shared.PaymentTypeEMI, 0), ErrInvalidPaymentAmount)
		assert.ErrorIs(t, l.ApplyPayment(shared.PaymentTypeEMI, -100), ErrInvalidPaymentAmount)
		assert.Equal(t, 0.0, l.AmountPaid)
	})

	t.Run("RejectsUnknownPaymentType", func(t *testing.T) {
		l := newTestLoan(t)

		assert.ErrorIs(t, l.ApplyPayment(shared.PaymentType("REFUND"), 100), ErrInvalidPaymentType)
	})

	t.Run("RejectsPaymentOnPaidLoan", func(t *testing.T) {
		l := newTestLoan(t)
		require.NoError(t, l.ApplyPayment(shared.PaymentTypeLumpSum, 144000))
		l.Reconcile()
		require.Equal(t, shared.LoanStatusPaid, l.Status)

		err := l.ApplyPayment(shared.PaymentTypeEMI, 6000)

		assert.ErrorIs(t, err, ErrLoanAlreadyPaid)
	})
}

func TestLoan_Reconcile(t *testing.T) {
	newTestLoan := func(t *testing.T) *Loan {
		l, err := NewLoan("cust-1", 120000, 2, 0.1)
		require.NoError(t, err)
		return l
	}

	t.Run("AfterSingleEMI", func(t *testing.T) {
		l := newTestLoan(t)
		require.NoError(t, l.ApplyPayment(shared.PaymentTypeEMI, 6000))

		balance := l.Reconcile()

		assert.Equal(t, 138000.0, balance.BalanceAmount)
		assert.Equal(t, 23, balance.EMIsLeft)
		assert.Equal(t, shared.LoanStatusActive, l.Status)
	})

	t.Run("PartialRemainderStillCountsAsOneEMI", func(t *testing.T) {
		l := newTestLoan(t)
		require.NoError(t, l.ApplyPayment(shared.PaymentTypeLumpSum, 143000))

		balance := l.Reconcile()

		assert.Equal(t, 1000.0, balance.BalanceAmount)
		assert.Equal(t, 1, balance.EMIsLeft)
		assert.Equal(t, shared.LoanStatusActive, l.Status)
	})

	t.Run("ExactSettlement", func(t *testing.T) {
		l := newTestLoan(t)
		require.NoError(t, l.ApplyPayment(shared.PaymentTypeLumpSum, 144000))

		balance := l.Reconcile()

		assert.Equal(t, 0.0, balance.BalanceAmount)
		assert.Equal(t, 0, balance.EMIsLeft)
		assert.Equal(t, shared.LoanStatusPaid, l.Status)
		assert.Equal(t, 0, l.EMIPaidCount, "lump sum settlement leaves EMI count untouched")
	})

	t.Run("OverpaymentClampsToZero", func(t *testing.T) {
		l := newTestLoan(t)
		require.NoError(t, l.ApplyPayment(shared.PaymentTypeLumpSum, 150000))

		balance := l.Reconcile()

		assert.Equal(t, 0.0, balance.BalanceAmount)
		assert.Equal(t, 0, balance.EMIsLeft)
		assert.Equal(t, shared.LoanStatusPaid, l.Status)
	})

	t.Run("PaidStatusNeverRegresses", func(t *testing.T) {
		l := newTestLoan(t)
		require.NoError(t, l.ApplyPayment(shared.PaymentTypeLumpSum, 144000))
		l.Reconcile()
		require.Equal(t, shared.LoanStatusPaid, l.Status)

		balance := l.Reconcile()

		assert.Equal(t, shared.LoanStatusPaid, l.Status)
		assert.Equal(t, 0.0, balance.BalanceAmount)
		assert.Equal(t, 0, balance.EMIsLeft)
	})

	t.Run("RepeatedReconcileIsIdempotent", func(t *testing.T) {
		l := newTestLoan(t)
		require.NoError(t, l.ApplyPayment(shared.PaymentTypeEMI, 6000))

		first := l.Reconcile()
		second := l.Reconcile()

		assert.Equal(t, first, second)
	})
}
