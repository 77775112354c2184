package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketfox/pocketfox_backend/internal/apperrors"
	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
	portsrepo "github.com/pocketfox/pocketfox_backend/internal/core/ports/repositories"
	portssvc "github.com/pocketfox/pocketfox_backend/internal/core/ports/services"
)

var one = decimal.NewFromInt(1)

// reconciliationService is the balance reconciliation engine. It is the only
// component that mutates account balance fields: given a transaction it
// computes the signed delta(s) for the involved account(s), converts across
// currencies when needed, and persists the result.
//
// The engine never fails visibly for business reasons: unresolvable accounts
// are skipped and conversion failures degrade to an identity ratio. Only
// infrastructure errors (persistence, unexpected lookup failures) propagate.
type reconciliationService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.FinancialTransactionWriter
	rates       portssvc.CurrencyRateProvider
	diagnostics portssvc.DiagnosticsSink
}

// NewReconciliationService creates the reconciliation engine with its
// collaborators injected. The caller owns the collaborators; the engine only
// holds references for its lifetime.
func NewReconciliationService(
	accountRepo portsrepo.AccountRepositoryFacade,
	txnRepo portsrepo.FinancialTransactionWriter,
	rates portssvc.CurrencyRateProvider,
	diagnostics portssvc.DiagnosticsSink,
) portssvc.ReconciliationSvc {
	return &reconciliationService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		rates:       rates,
		diagnostics: diagnostics,
	}
}

var _ portssvc.ReconciliationSvc = (*reconciliationService)(nil)

// accountResolver resolves one side of a transaction to its account.
type accountResolver func(ctx context.Context, txn *domain.FinancialTransaction) (*domain.Account, error)

func (s *reconciliationService) chargedAccount(ctx context.Context, txn *domain.FinancialTransaction) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, txn.ChargedAccountID)
}

func (s *reconciliationService) targetAccount(ctx context.Context, txn *domain.FinancialTransaction) (*domain.Account, error) {
	if txn.TargetAccountID == nil || *txn.TargetAccountID == "" {
		return nil, apperrors.ErrNotFound
	}
	return s.accountRepo.FindAccountByID(ctx, *txn.TargetAccountID)
}

// ApplyTransaction applies the transaction's monetary effect.
//
// With ClearTransactionNow unset the transaction is only recorded as
// uncleared; no balance is touched until a later clearing pass picks it up.
// For transfers the target-account side (an inflow, +amount) settles fully
// before the charged side is handled.
func (s *reconciliationService) ApplyTransaction(ctx context.Context, txn *domain.FinancialTransaction) error {
	if !txn.Type.IsValid() {
		return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, txn.Type)
	}

	if !txn.ClearTransactionNow {
		txn.Cleared = false
		if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
			return fmt.Errorf("failed to persist deferred transaction %s: %w", txn.TransactionID, err)
		}
		s.LogDebug(ctx, "Transaction recorded uncleared, balances untouched",
			slog.String("transaction_id", txn.TransactionID))
		return nil
	}

	if txn.IsTransfer() {
		if err := s.applySide(ctx, txn, one, s.targetAccount); err != nil {
			return err
		}
	}
	return s.applySide(ctx, txn, txn.Type.ChargedSign(), s.chargedAccount)
}

// RevertTransaction undoes the monetary effect of a previously cleared
// transaction. It is a pure undo: the Cleared flag is left untouched and the
// caller owns the subsequent state transition (marking uncleared, or deleting
// the transaction).
func (s *reconciliationService) RevertTransaction(ctx context.Context, txn *domain.FinancialTransaction) error {
	if !txn.Cleared {
		s.LogDebug(ctx, "Transaction not cleared, nothing to revert",
			slog.String("transaction_id", txn.TransactionID))
		return nil
	}

	if txn.IsTransfer() {
		// The target-side reversal must complete before the charged side
		// begins; partial interleaving would leave the two-sided undo
		// unordered relative to the caller's next action.
		if err := s.revertSide(ctx, txn, one.Neg(), s.targetAccount); err != nil {
			return err
		}
	}
	return s.revertSide(ctx, txn, txn.Type.ChargedSign().Neg(), s.chargedAccount)
}

// applySide applies one side of the transaction: resolve the account, add the
// signed amount to both balance fields (converted and 1:1), mark the
// transaction cleared and persist account then transaction.
func (s *reconciliationService) applySide(ctx context.Context, txn *domain.FinancialTransaction, sign decimal.Decimal, resolve accountResolver) error {
	account, err := s.resolveAccount(ctx, txn, resolve)
	if err != nil || account == nil {
		return err
	}

	amountWithoutExchange := txn.Amount.Mul(sign)
	amount := s.convertedAmount(ctx, amountWithoutExchange, txn.CurrencyCode, account.CurrencyCode)

	account.CurrentBalanceWithoutExchange = account.CurrentBalanceWithoutExchange.Add(amountWithoutExchange)
	account.CurrentBalance = account.CurrentBalance.Add(amount)
	account.LastUpdatedAt = time.Now().UTC()
	txn.Cleared = true
	txn.LastUpdatedAt = account.LastUpdatedAt

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return fmt.Errorf("failed to update account %s during apply: %w", account.AccountID, err)
	}
	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		return fmt.Errorf("failed to persist transaction %s during apply: %w", txn.TransactionID, err)
	}

	s.LogDebug(ctx, "Balance applied",
		slog.String("account_id", account.AccountID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", amount.String()))
	return nil
}

// revertSide is applySide's inverse for one side of the transaction. It uses
// the same conversion path but never writes the Cleared flag.
func (s *reconciliationService) revertSide(ctx context.Context, txn *domain.FinancialTransaction, sign decimal.Decimal, resolve accountResolver) error {
	account, err := s.resolveAccount(ctx, txn, resolve)
	if err != nil || account == nil {
		return err
	}

	amountWithoutExchange := txn.Amount.Mul(sign)
	amount := s.convertedAmount(ctx, amountWithoutExchange, txn.CurrencyCode, account.CurrencyCode)

	account.CurrentBalanceWithoutExchange = account.CurrentBalanceWithoutExchange.Add(amountWithoutExchange)
	account.CurrentBalance = account.CurrentBalance.Add(amount)
	account.LastUpdatedAt = time.Now().UTC()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return fmt.Errorf("failed to update account %s during revert: %w", account.AccountID, err)
	}
	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		return fmt.Errorf("failed to persist transaction %s during revert: %w", txn.TransactionID, err)
	}

	s.LogDebug(ctx, "Balance reverted",
		slog.String("account_id", account.AccountID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", amount.String()))
	return nil
}

// resolveAccount resolves one side of the transaction. A missing account is a
// silent no-op (nil, nil); a dangling reference must not block the other side.
func (s *reconciliationService) resolveAccount(ctx context.Context, txn *domain.FinancialTransaction, resolve accountResolver) (*domain.Account, error) {
	account, err := resolve(ctx, txn)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Account unresolved during reconciliation, skipping side",
				slog.String("transaction_id", txn.TransactionID))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve account for transaction %s: %w", txn.TransactionID, err)
	}
	return account, nil
}

// convertedAmount converts base (in fromCode) into toCode. A conversion
// failure must never block recording a transaction: it is reported to the
// diagnostics sink and the ratio falls back to 1.
func (s *reconciliationService) convertedAmount(ctx context.Context, base decimal.Decimal, fromCode, toCode string) decimal.Decimal {
	if fromCode == toCode {
		return base
	}
	ratio, err := s.rates.GetRatio(ctx, fromCode, toCode)
	if err != nil {
		s.diagnostics.LogException(ctx, fmt.Errorf("conversion %s->%s unavailable, using identity ratio: %w", fromCode, toCode, err))
		return base
	}
	return base.Mul(ratio)
}
