package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
	portsrepo "github.com/pocketfox/pocketfox_backend/internal/core/ports/repositories"
	portssvc "github.com/pocketfox/pocketfox_backend/internal/core/ports/services"
)

// accountPageSize is the page size used when walking all accounts for
// aggregation.
const accountPageSize = 200

// balanceService computes aggregate totals over all non-excluded accounts and
// caches the result until something invalidates it: transaction lifecycle
// flows call InvalidateTotals after each balance mutation, the account
// deletion cascade calls RefreshTotals, and Summary recomputes lazily when no
// snapshot is held.
type balanceService struct {
	BaseService
	accountRepo portsrepo.AccountReader

	mu       sync.RWMutex
	snapshot *domain.BalanceSummary
}

// NewBalanceService creates a new balance service.
func NewBalanceService(accountRepo portsrepo.AccountReader) portssvc.BalanceSvcFacade {
	return &balanceService{accountRepo: accountRepo}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

func (s *balanceService) Summary(ctx context.Context) (*domain.BalanceSummary, error) {
	s.mu.RLock()
	snapshot := s.snapshot
	s.mu.RUnlock()
	if snapshot != nil {
		return snapshot, nil
	}

	if err := s.RefreshTotals(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, nil
}

// InvalidateTotals drops the cached snapshot; the next Summary call
// recomputes it.
func (s *balanceService) InvalidateTotals() {
	s.mu.Lock()
	s.snapshot = nil
	s.mu.Unlock()
}

// RefreshTotals recomputes the aggregate snapshot from the account store.
func (s *balanceService) RefreshTotals(ctx context.Context) error {
	summary := &domain.BalanceSummary{
		TotalBalance:                decimal.Zero,
		TotalBalanceWithoutExchange: decimal.Zero,
		ByCurrency:                  make(map[string]decimal.Decimal),
	}

	for offset := 0; ; offset += accountPageSize {
		accounts, err := s.accountRepo.ListAccounts(ctx, accountPageSize, offset)
		if err != nil {
			s.LogError(ctx, err, "Failed to list accounts for totals",
				slog.Int("offset", offset))
			return fmt.Errorf("failed to aggregate balances: %w", err)
		}
		for i := range accounts {
			acc := &accounts[i]
			if acc.Excluded {
				continue
			}
			summary.TotalBalance = summary.TotalBalance.Add(acc.CurrentBalance)
			summary.TotalBalanceWithoutExchange = summary.TotalBalanceWithoutExchange.Add(acc.CurrentBalanceWithoutExchange)
			summary.ByCurrency[acc.CurrencyCode] = summary.ByCurrency[acc.CurrencyCode].Add(acc.CurrentBalance)
			summary.AccountCount++
		}
		if len(accounts) < accountPageSize {
			break
		}
	}

	s.mu.Lock()
	s.snapshot = summary
	s.mu.Unlock()

	s.LogDebug(ctx, "Aggregate totals refreshed",
		slog.Int("accounts", summary.AccountCount),
		slog.String("total", summary.TotalBalance.String()))
	return nil
}
