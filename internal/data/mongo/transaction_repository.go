// Package mongo provides the MongoDB implementation of the loan transaction
// log. Transactions are append-only documents; the ledger view is rebuilt
// from them on demand.
package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bank-loan-ledger/internal/domain/ledger"
)

const (
	// TransactionCollectionName is the name of the loan transaction collection
	TransactionCollectionName = "loan_transactions"
)

// TransactionRepository implements the ledger.Repository interface for MongoDB
type TransactionRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewTransactionRepository creates a new MongoDB transaction repository
func NewTransactionRepository(logger *slog.Logger, db *mongo.Database) ledger.Repository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

// Append stores a new transaction record
func (r *TransactionRepository) Append(ctx context.Context, txn *ledger.Transaction) error {
	collection := r.db.Collection(TransactionCollectionName)

	_, err := collection.InsertOne(ctx, txn)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ledger.ErrDuplicateTransaction{TransactionID: txn.TransactionID}
		}
		r.logger.Error("Failed to append transaction",
			"transaction_id", txn.TransactionID,
			"loan_id", txn.LoanID,
			"error", err)
		return fmt.Errorf("failed to append transaction: %w", err)
	}

	return nil
}

// GetByLoanID retrieves all transactions for a loan, ordered by
// transaction_date ascending so the ledger reads oldest first.
func (r *TransactionRepository) GetByLoanID(ctx context.Context, loanID string) ([]*ledger.Transaction, error) {
	collection := r.db.Collection(TransactionCollectionName)

	filter := bson.M{"loan_id": loanID}
	opts := options.Find().SetSort(bson.M{"transaction_date": 1})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to get transactions", "loan_id", loanID, "error", err)
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var transactions []*ledger.Transaction
	if err := cursor.All(ctx, &transactions); err != nil {
		r.logger.Error("Failed to decode transactions", "loan_id", loanID, "error", err)
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	return transactions, nil
}
