package services

import (
	"context"

	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReconciliationSvc is the balance reconciliation engine: it owns every
// mutation of account balance fields.
//
// Both operations run their steps strictly sequentially; for transfers the
// target-account side fully settles (including persistence) before the
// charged-account side begins.
type ReconciliationSvc interface {
	// ApplyTransaction applies the transaction's monetary effect to the
	// involved account(s). With ClearTransactionNow unset it only records the
	// transaction as uncleared and touches no balance. Unresolvable account
	// references are silent no-ops.
	ApplyTransaction(ctx context.Context, txn *domain.FinancialTransaction) error

	// RevertTransaction undoes a previously applied monetary effect. It acts
	// only when the transaction is cleared and never changes the Cleared flag
	// itself; callers own the subsequent state transition.
	RevertTransaction(ctx context.Context, txn *domain.FinancialTransaction) error
}

// CurrencyRateProvider resolves conversion ratios between currencies.
type CurrencyRateProvider interface {
	// GetRatio returns the multiplier converting an amount in fromCode into
	// toCode. Failures are reported as apperrors.ErrRateUnavailable.
	GetRatio(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error)
}

// DiagnosticsSink receives internal failures that are deliberately not
// surfaced to the user. Implementations must be non-blocking and must never
// fail.
type DiagnosticsSink interface {
	LogException(ctx context.Context, err error)
}
