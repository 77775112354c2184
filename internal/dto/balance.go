package dto

import (
	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceSummaryResponse defines the aggregate totals returned to clients.
type BalanceSummaryResponse struct {
	TotalBalance                decimal.Decimal            `json:"totalBalance"`
	TotalBalanceWithoutExchange decimal.Decimal            `json:"totalBalanceWithoutExchange"`
	ByCurrency                  map[string]decimal.Decimal `json:"byCurrency"`
	AccountCount                int                        `json:"accountCount"`
}

// ToBalanceSummaryResponse converts a domain.BalanceSummary to its DTO.
func ToBalanceSummaryResponse(s *domain.BalanceSummary) BalanceSummaryResponse {
	return BalanceSummaryResponse{
		TotalBalance:                s.TotalBalance,
		TotalBalanceWithoutExchange: s.TotalBalanceWithoutExchange,
		ByCurrency:                  s.ByCurrency,
		AccountCount:                s.AccountCount,
	}
}
