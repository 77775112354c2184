package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pocketfox/pocketfox_backend/internal/apperrors"
	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
	portsrepo "github.com/pocketfox/pocketfox_backend/internal/core/ports/repositories"
)

// PgxExchangeRateRepository persists the exchange rate cache. One row per
// directed currency pair; refreshing a pair replaces its row.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for cached rates.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExchangeRateRepository = (*PgxExchangeRateRepository)(nil)

// FindExchangeRate retrieves the cached rate for a currency pair.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)

	query := `
		SELECT from_currency_code, to_currency_code, rate, fetched_at
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2;
	`
	var rate domain.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, fromCode, toCode).Scan(
		&rate.FromCurrencyCode, &rate.ToCurrencyCode, &rate.Rate, &rate.FetchedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find exchange rate %s/%s: %w", fromCode, toCode, err)
	}
	return &rate, nil
}

// UpsertExchangeRate inserts or refreshes the cached rate for a pair.
func (r *PgxExchangeRateRepository) UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	fromCode := strings.ToUpper(rate.FromCurrencyCode)
	toCode := strings.ToUpper(rate.ToCurrencyCode)
	if fromCode == toCode {
		return fmt.Errorf("%w: from and to currencies cannot be the same", apperrors.ErrValidation)
	}

	query := `
		INSERT INTO exchange_rates (from_currency_code, to_currency_code, rate, fetched_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (from_currency_code, to_currency_code)
		DO UPDATE SET rate = EXCLUDED.rate, fetched_at = EXCLUDED.fetched_at;
	`
	_, err := r.Pool.Exec(ctx, query, fromCode, toCode, rate.Rate, rate.FetchedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert exchange rate %s/%s: %w", fromCode, toCode, err)
	}
	return nil
}
