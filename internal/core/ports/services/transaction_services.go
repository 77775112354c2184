package services

import (
	"context"
	"time"

	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
	"github.com/pocketfox/pocketfox_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.FinancialTransaction, error)

	// ListTransactions retrieves a paginated list of transactions, newest first.
	ListTransactions(ctx context.Context, limit int, offset int) ([]domain.FinancialTransaction, error)

	// ListTransactionsByAccount retrieves transactions referencing the account
	// as charged or target.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.FinancialTransaction, error)
}

// TransactionWriterSvc defines the transaction lifecycle operations. Each
// operation invokes the reconciliation engine at the correct point: apply on
// create, revert-then-reapply on edit, revert-then-delete on delete.
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.FinancialTransaction, error)
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.FinancialTransaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error

	// ClearDueTransactions applies every uncleared transaction whose booking
	// date is at or before asOf. Returns the number of transactions cleared.
	ClearDueTransactions(ctx context.Context, asOf time.Time) (int, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
