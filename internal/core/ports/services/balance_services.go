package services

import (
	"context"

	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
)

// BalanceSvcFacade computes aggregate totals over all non-excluded accounts.
type BalanceSvcFacade interface {
	// Summary returns the current aggregate totals, computing them on first use.
	Summary(ctx context.Context) (*domain.BalanceSummary, error)

	// RefreshTotals recomputes the aggregate totals. Called after operations
	// that change balances outside the regular reconciliation path, such as
	// the account deletion cascade.
	RefreshTotals(ctx context.Context) error

	// InvalidateTotals drops the cached totals so the next Summary call
	// recomputes them. Called by the transaction lifecycle flows after a
	// balance mutation.
	InvalidateTotals()
}
