package repositories

import (
	"context"
	"time"

	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
)

// FinancialTransactionReader defines read operations for transaction data.
type FinancialTransactionReader interface {
	// FindTransactionByID retrieves a specific transaction.
	// Returns apperrors.ErrNotFound when no such transaction exists.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.FinancialTransaction, error)

	// ListTransactions retrieves a paginated list of transactions, newest first.
	ListTransactions(ctx context.Context, limit int, offset int) ([]domain.FinancialTransaction, error)

	// ListTransactionsByAccount retrieves transactions referencing the account
	// as charged or target, newest first.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.FinancialTransaction, error)

	// FindUnclearedDue retrieves uncleared transactions whose booking date is
	// at or before asOf.
	FindUnclearedDue(ctx context.Context, asOf time.Time) ([]domain.FinancialTransaction, error)
}

// FinancialTransactionWriter defines write operations for transaction data.
type FinancialTransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.FinancialTransaction) error

	// UpdateTransaction updates an existing transaction.
	UpdateTransaction(ctx context.Context, txn domain.FinancialTransaction) error

	// DeleteTransaction removes a transaction row.
	DeleteTransaction(ctx context.Context, transactionID string) error

	// DetachCategory clears the category reference on every transaction that
	// points at the given category.
	DetachCategory(ctx context.Context, categoryID string) error
}

// FinancialTransactionRepositoryFacade combines all transaction-related
// repository interfaces.
type FinancialTransactionRepositoryFacade interface {
	FinancialTransactionReader
	FinancialTransactionWriter
	FinancialTransactionTxSupport
}
