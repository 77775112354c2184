package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pocketfox/pocketfox_backend/internal/apperrors"
	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
	portsrepo "github.com/pocketfox/pocketfox_backend/internal/core/ports/repositories"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.FinancialTransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.FinancialTransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, charged_account_id, target_account_id, amount, currency_code, type, date, cleared, clear_transaction_now, category_id, note, created_at, last_updated_at`

// nullableID maps an optional foreign key to its SQL representation.
func nullableID(id *string) sql.NullString {
	if id == nil || *id == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *id, Valid: true}
}

func scanTransaction(row pgx.Row) (*domain.FinancialTransaction, error) {
	var txn domain.FinancialTransaction
	var targetID, categoryID sql.NullString
	err := row.Scan(
		&txn.TransactionID,
		&txn.ChargedAccountID,
		&targetID,
		&txn.Amount,
		&txn.CurrencyCode,
		&txn.Type,
		&txn.Date,
		&txn.Cleared,
		&txn.ClearTransactionNow,
		&categoryID,
		&txn.Note,
		&txn.CreatedAt,
		&txn.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if targetID.Valid {
		txn.TargetAccountID = &targetID.String
	}
	if categoryID.Valid {
		txn.CategoryID = &categoryID.String
	}
	return &txn, nil
}

// SaveTransaction persists a new transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.FinancialTransaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		txn.TransactionID,
		txn.ChargedAccountID,
		nullableID(txn.TargetAccountID),
		txn.Amount,
		txn.CurrencyCode,
		txn.Type,
		txn.Date,
		txn.Cleared,
		txn.ClearTransactionNow,
		nullableID(txn.CategoryID),
		txn.Note,
		txn.CreatedAt,
		txn.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, txn.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.FinancialTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1;
	`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.FinancialTransaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.FinancialTransaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return txns, nil
}

// ListTransactions retrieves a paginated list of transactions, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, limit int, offset int) ([]domain.FinancialTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		ORDER BY date DESC, transaction_id
		LIMIT $1 OFFSET $2;
	`
	return r.queryTransactions(ctx, query, limit, offset)
}

// ListTransactionsByAccount retrieves transactions referencing the account as
// charged or target, newest first.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.FinancialTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE charged_account_id = $1 OR target_account_id = $1
		ORDER BY date DESC, transaction_id
		LIMIT $2 OFFSET $3;
	`
	return r.queryTransactions(ctx, query, accountID, limit, offset)
}

// FindUnclearedDue retrieves uncleared transactions whose booking date is at
// or before asOf, oldest first so they clear in booking order.
func (r *PgxTransactionRepository) FindUnclearedDue(ctx context.Context, asOf time.Time) ([]domain.FinancialTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE cleared = FALSE AND date <= $1
		ORDER BY date, transaction_id;
	`
	return r.queryTransactions(ctx, query, asOf)
}

// UpdateTransaction updates an existing transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.FinancialTransaction) error {
	query := `
		UPDATE transactions
		SET charged_account_id = $2,
			target_account_id = $3,
			amount = $4,
			currency_code = $5,
			type = $6,
			date = $7,
			cleared = $8,
			clear_transaction_now = $9,
			category_id = $10,
			note = $11,
			last_updated_at = $12
		WHERE transaction_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		txn.TransactionID,
		txn.ChargedAccountID,
		nullableID(txn.TargetAccountID),
		txn.Amount,
		txn.CurrencyCode,
		txn.Type,
		txn.Date,
		txn.Cleared,
		txn.ClearTransactionNow,
		nullableID(txn.CategoryID),
		txn.Note,
		txn.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction row.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DetachCategory clears the category reference on every transaction that
// points at the given category.
func (r *PgxTransactionRepository) DetachCategory(ctx context.Context, categoryID string) error {
	_, err := r.Pool.Exec(ctx,
		`UPDATE transactions SET category_id = NULL WHERE category_id = $1;`, categoryID)
	if err != nil {
		return fmt.Errorf("failed to detach category %s: %w", categoryID, err)
	}
	return nil
}

// DeleteByAccountInTx removes every transaction referencing the account, as
// charged or as target, within the given transaction.
func (r *PgxTransactionRepository) DeleteByAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) error {
	_, err := tx.Exec(ctx,
		`DELETE FROM transactions WHERE charged_account_id = $1 OR target_account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete transactions for account %s: %w", accountID, err)
	}
	return nil
}
