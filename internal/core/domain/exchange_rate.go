package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a cached conversion ratio between two currencies.
// Rows are refreshed from the external rate service when they age past the
// configured TTL.
type ExchangeRate struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	FetchedAt        time.Time       `json:"fetchedAt"`
}
