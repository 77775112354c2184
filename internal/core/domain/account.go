package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a financial account within the core domain.
// This is the primary representation used by services.
//
// CurrentBalance and CurrentBalanceWithoutExchange are accumulated
// independently by the reconciliation engine: they diverge only when a
// transaction is recorded in a currency other than the account's.
type Account struct {
	AccountID                     string          `json:"accountID"`                     // Primary Key (UUID)
	Name                          string          `json:"name"`                          // User-defined name
	CurrencyCode                  string          `json:"currencyCode"`                  // ISO 4217 code of the account
	CurrentBalance                decimal.Decimal `json:"currentBalance"`                // Running balance in account currency
	CurrentBalanceWithoutExchange decimal.Decimal `json:"currentBalanceWithoutExchange"` // Running balance as if every ratio were 1:1
	Excluded                      bool            `json:"excluded"`                      // Excluded from aggregate totals; reconciliation ignores this
	ExchangeModeActive            bool            `json:"exchangeModeActive"`            // User preference: show converted amounts
	Note                          string          `json:"note"`                          // Nullable user note
	AuditFields
}
