package services

import (
	"context"

	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
)

// RateSvcFacade exposes the rate cache on top of the CurrencyRateProvider
// contract used by the reconciliation engine.
type RateSvcFacade interface {
	CurrencyRateProvider

	// GetRate returns the full cached rate row for a currency pair, fetching
	// it from the external service when stale or missing.
	GetRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)
}

// RateFetcher fetches a conversion ratio from the external rate service.
// Implemented by the HTTP adapter.
type RateFetcher interface {
	FetchRatio(ctx context.Context, fromCode, toCode string) (domain.ExchangeRate, error)
}
