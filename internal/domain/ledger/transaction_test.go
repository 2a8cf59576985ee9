package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bank-loan-ledger/internal/domain/shared"
)

func TestNewTransaction(t *testing.T) {
	t.Run("EMIPayment", func(t *testing.T) {
		txn := NewTransaction("loan-1", shared.PaymentTypeEMI, 6000)

		require.NotNil(t, txn)
		assert.NotEmpty(t, txn.TransactionID)
		assert.Equal(t, "loan-1", txn.LoanID)
		assert.Equal(t, shared.PaymentTypeEMI, txn.TransactionType)
		assert.Equal(t, 6000.0, txn.Amount)
		assert.Equal(t, "EMI Payment", txn.Remarks)
		assert.False(t, txn.TransactionDate.IsZero())
	})

	t.Run("LumpSumPayment", func(t *testing.T) {
		txn := NewTransaction("loan-1", shared.PaymentTypeLumpSum, 144000)

		assert.Equal(t, shared.PaymentTypeLumpSum, txn.TransactionType)
		assert.Equal(t, "Lump Sum Payment", txn.Remarks)
	})

	t.Run("UniqueIDs", func(t *testing.T) {
		a := NewTransaction("loan-1", shared.PaymentTypeEMI, 6000)
		b := NewTransaction("loan-1", shared.PaymentTypeEMI, 6000)

		assert.NotEqual(t, a.TransactionID, b.TransactionID)
	})
}
