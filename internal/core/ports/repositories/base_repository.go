package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for database transaction management.
type TransactionManager interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction. Rolling back an already-finished
	// transaction is not an error.
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// AccountTxSupport defines account operations that run inside a caller-owned
// database transaction.
type AccountTxSupport interface {
	// DeleteAccountInTx removes the account row within the given transaction.
	DeleteAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) error
}

// FinancialTransactionTxSupport defines transaction-table operations that run
// inside a caller-owned database transaction.
type FinancialTransactionTxSupport interface {
	// DeleteByAccountInTx removes every financial transaction referencing the
	// account, as charged or as target, within the given transaction.
	DeleteByAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) error
}
