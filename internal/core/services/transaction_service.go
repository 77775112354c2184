package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketfox/pocketfox_backend/internal/apperrors"
	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
	portsrepo "github.com/pocketfox/pocketfox_backend/internal/core/ports/repositories"
	portssvc "github.com/pocketfox/pocketfox_backend/internal/core/ports/services"
	"github.com/pocketfox/pocketfox_backend/internal/dto"
)

var (
	ErrTransferNeedsTarget   = errors.New("transfer requires a target account")
	ErrTransferSelfReference = errors.New("transfer target must differ from the charged account")
	ErrAmountNotPositive     = errors.New("transaction amount must be positive")
)

// transactionService owns the transaction lifecycle and invokes the
// reconciliation engine at the correct point of each flow: apply on create,
// revert-then-reapply on edit, revert-then-delete on delete.
type transactionService struct {
	BaseService
	txnRepo     portsrepo.FinancialTransactionRepositoryFacade
	accountRepo portsrepo.AccountReader
	engine      portssvc.ReconciliationSvc
	balanceSvc  portssvc.BalanceSvcFacade
}

// TransactionServiceOption is a functional option for configuring the
// transaction service.
type TransactionServiceOption func(*transactionService)

// WithBalanceInvalidation adds the aggregate balance service whose cached
// totals are invalidated after each balance mutation.
func WithBalanceInvalidation(svc portssvc.BalanceSvcFacade) TransactionServiceOption {
	return func(s *transactionService) {
		s.balanceSvc = svc
	}
}

// NewTransactionService creates a new transaction service with the provided options.
func NewTransactionService(txnRepo portsrepo.FinancialTransactionRepositoryFacade, accountRepo portsrepo.AccountReader, engine portssvc.ReconciliationSvc, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		engine:      engine,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// resolveAccount looks up an account that a transaction is about to
// reference. A missing account is a validation failure here; the engine's
// silent skip is reserved for references that dangle after the fact.
func (s *transactionService) resolveAccount(ctx context.Context, accountID, role string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s account %s not found", apperrors.ErrValidation, role, accountID)
		}
		s.LogError(ctx, err, "Failed to resolve account",
			slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

// invalidateTotals drops the cached aggregate totals after a balance
// mutation.
func (s *transactionService) invalidateTotals() {
	if s.balanceSvc != nil {
		s.balanceSvc.InvalidateTotals()
	}
}

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.FinancialTransaction, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}
	if req.Type == domain.Transfer {
		if req.TargetAccountID == nil || *req.TargetAccountID == "" {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTransferNeedsTarget)
		}
		if *req.TargetAccountID == req.ChargedAccountID {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTransferSelfReference)
		}
	}

	chargedAccount, err := s.resolveAccount(ctx, req.ChargedAccountID, "charged")
	if err != nil {
		return nil, err
	}
	if req.Type == domain.Transfer {
		if _, err := s.resolveAccount(ctx, *req.TargetAccountID, "target"); err != nil {
			return nil, err
		}
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = chargedAccount.CurrencyCode
	}

	now := time.Now().UTC()
	date := req.Date
	if date.IsZero() {
		date = now
	}

	// Future-dated entries default to deferred clearing; the user can force
	// either behavior explicitly.
	clearNow := !date.After(now)
	if req.ClearNow != nil {
		clearNow = *req.ClearNow
	}

	var targetID *string
	if req.Type == domain.Transfer {
		targetID = req.TargetAccountID
	}

	txn := domain.FinancialTransaction{
		TransactionID:       uuid.NewString(),
		ChargedAccountID:    req.ChargedAccountID,
		TargetAccountID:     targetID,
		Amount:              req.Amount,
		CurrencyCode:        currency,
		Type:                req.Type,
		Date:                date,
		Cleared:             false,
		ClearTransactionNow: clearNow,
		CategoryID:          req.CategoryID,
		Note:                req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	if err := s.engine.ApplyTransaction(ctx, &txn); err != nil {
		s.LogError(ctx, err, "Failed to apply transaction to balances",
			slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.invalidateTotals()
	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.Bool("cleared", txn.Cleared))
	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.FinancialTransaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by ID",
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, limit int, offset int) ([]domain.FinancialTransaction, error) {
	txns, err := s.txnRepo.ListTransactions(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		return []domain.FinancialTransaction{}, nil
	}
	return txns, nil
}

func (s *transactionService) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.FinancialTransaction, error) {
	txns, err := s.txnRepo.ListTransactionsByAccount(ctx, accountID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions by account",
			slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list transactions for account %s: %w", accountID, err)
	}
	if txns == nil {
		return []domain.FinancialTransaction{}, nil
	}
	return txns, nil
}

// UpdateTransaction edits a transaction. The edited values are fully
// validated first; only then is the previously applied balance effect
// reverted and the edited transaction reapplied, so the involved accounts
// always reflect exactly one application of the current values and a
// rejected edit leaves the stored row untouched.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.FinancialTransaction, error) {
	existing, err := s.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil && req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	updated := *existing
	if req.ChargedAccountID != nil {
		updated.ChargedAccountID = *req.ChargedAccountID
	}
	if req.Type != nil {
		updated.Type = *req.Type
	}
	if req.TargetAccountID != nil {
		updated.TargetAccountID = req.TargetAccountID
	}
	if !updated.IsTransfer() {
		updated.TargetAccountID = nil
	} else {
		if updated.TargetAccountID == nil || *updated.TargetAccountID == "" {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTransferNeedsTarget)
		}
		if *updated.TargetAccountID == updated.ChargedAccountID {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTransferSelfReference)
		}
	}
	if req.Amount != nil {
		updated.Amount = *req.Amount
	}
	if req.CurrencyCode != nil {
		updated.CurrencyCode = *req.CurrencyCode
	}
	if req.Date != nil {
		updated.Date = *req.Date
	}
	if req.CategoryID != nil {
		updated.CategoryID = req.CategoryID
	}
	if req.Note != nil {
		updated.Note = *req.Note
	}

	if _, err := s.resolveAccount(ctx, updated.ChargedAccountID, "charged"); err != nil {
		return nil, err
	}
	if updated.IsTransfer() {
		if _, err := s.resolveAccount(ctx, *updated.TargetAccountID, "target"); err != nil {
			return nil, err
		}
	}

	if err := s.engine.RevertTransaction(ctx, existing); err != nil {
		s.LogError(ctx, err, "Failed to revert transaction before edit",
			slog.String("transaction_id", transactionID))
		return nil, err
	}

	now := time.Now().UTC()
	updated.ClearTransactionNow = !updated.Date.After(now)
	if req.ClearNow != nil {
		updated.ClearTransactionNow = *req.ClearNow
	}

	// The revert above undid the monetary effect; complete the state
	// transition before reapplying.
	updated.Cleared = false
	updated.LastUpdatedAt = now

	if err := s.engine.ApplyTransaction(ctx, &updated); err != nil {
		s.LogError(ctx, err, "Failed to reapply transaction after edit",
			slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.invalidateTotals()
	s.LogInfo(ctx, "Transaction updated",
		slog.String("transaction_id", transactionID))
	return &updated, nil
}

// DeleteTransaction reverts any applied balance effect, then removes the row.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	existing, err := s.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}

	if err := s.engine.RevertTransaction(ctx, existing); err != nil {
		s.LogError(ctx, err, "Failed to revert transaction before delete",
			slog.String("transaction_id", transactionID))
		return err
	}

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction",
			slog.String("transaction_id", transactionID))
		return err
	}

	s.invalidateTotals()
	s.LogInfo(ctx, "Transaction deleted",
		slog.String("transaction_id", transactionID))
	return nil
}

// ClearDueTransactions applies every uncleared transaction whose booking date
// has arrived. Mirrors the mobile app's clear-on-launch pass for future-dated
// entries. Individual failures are logged and skipped so one bad row cannot
// block the rest of the pass.
func (s *transactionService) ClearDueTransactions(ctx context.Context, asOf time.Time) (int, error) {
	due, err := s.txnRepo.FindUnclearedDue(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to find due transactions")
		return 0, fmt.Errorf("failed to find due transactions: %w", err)
	}

	cleared := 0
	for i := range due {
		txn := due[i]
		txn.ClearTransactionNow = true
		if err := s.engine.ApplyTransaction(ctx, &txn); err != nil {
			s.LogError(ctx, err, "Failed to clear due transaction",
				slog.String("transaction_id", txn.TransactionID))
			continue
		}
		cleared++
	}
	if cleared > 0 {
		s.invalidateTotals()
	}

	s.LogInfo(ctx, "Cleared due transactions",
		slog.Int("due", len(due)),
		slog.Int("cleared", cleared))
	return cleared, nil
}
