package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketfox/pocketfox_backend/internal/apperrors"
	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
	portsrepo "github.com/pocketfox/pocketfox_backend/internal/core/ports/repositories"
	portssvc "github.com/pocketfox/pocketfox_backend/internal/core/ports/services"
)

// rateService resolves conversion ratios through a persistent cache backed by
// the external rate service. It implements the CurrencyRateProvider contract
// consumed by the reconciliation engine; the fallback-to-identity policy on
// failure belongs to the engine, not here.
type rateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateRepository
	fetcher  portssvc.RateFetcher
	cacheTTL time.Duration
}

// NewRateService creates a new rate service. Cached rates older than cacheTTL
// are refreshed from the external service; a stale cached rate is still
// served when the refresh fails.
func NewRateService(rateRepo portsrepo.ExchangeRateRepository, fetcher portssvc.RateFetcher, cacheTTL time.Duration) portssvc.RateSvcFacade {
	return &rateService{
		rateRepo: rateRepo,
		fetcher:  fetcher,
		cacheTTL: cacheTTL,
	}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

func (s *rateService) GetRatio(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	rate, err := s.GetRate(ctx, fromCode, toCode)
	if err != nil {
		return decimal.Zero, err
	}
	return rate.Rate, nil
}

func (s *rateService) GetRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if len(fromCode) != 3 || len(toCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	if fromCode == toCode {
		return &domain.ExchangeRate{
			FromCurrencyCode: fromCode,
			ToCurrencyCode:   toCode,
			Rate:             decimal.NewFromInt(1),
			FetchedAt:        time.Now().UTC(),
		}, nil
	}

	cached, err := s.rateRepo.FindExchangeRate(ctx, fromCode, toCode)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to read rate cache",
			slog.String("from", fromCode), slog.String("to", toCode))
		return nil, fmt.Errorf("%w: cache lookup failed: %v", apperrors.ErrRateUnavailable, err)
	}
	if cached != nil && time.Since(cached.FetchedAt) <= s.cacheTTL {
		return cached, nil
	}

	fetched, fetchErr := s.fetcher.FetchRatio(ctx, fromCode, toCode)
	if fetchErr != nil {
		if cached != nil {
			s.LogWarn(ctx, "Rate refresh failed, serving stale cached rate",
				slog.String("from", fromCode), slog.String("to", toCode),
				slog.String("error", fetchErr.Error()))
			return cached, nil
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRateUnavailable, fetchErr)
	}

	if err := s.rateRepo.UpsertExchangeRate(ctx, fetched); err != nil {
		// The rate is usable even if caching it failed.
		s.LogWarn(ctx, "Failed to cache fetched rate",
			slog.String("from", fromCode), slog.String("to", toCode),
			slog.String("error", err.Error()))
	}

	return &fetched, nil
}
