package repositories

import (
	"context"

	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
)

// ExchangeRateRepository defines persistence operations for the exchange rate
// cache.
type ExchangeRateRepository interface {
	// FindExchangeRate retrieves the cached rate for a currency pair.
	// Returns apperrors.ErrNotFound when the pair has never been fetched.
	FindExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)

	// UpsertExchangeRate inserts or refreshes the cached rate for a pair.
	UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}
