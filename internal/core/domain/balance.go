package domain

import "github.com/shopspring/decimal"

// BalanceSummary is an aggregate view over all non-excluded accounts.
type BalanceSummary struct {
	TotalBalance                decimal.Decimal            `json:"totalBalance"`
	TotalBalanceWithoutExchange decimal.Decimal            `json:"totalBalanceWithoutExchange"`
	ByCurrency                  map[string]decimal.Decimal `json:"byCurrency"`
	AccountCount                int                        `json:"accountCount"`
}
