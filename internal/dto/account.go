package dto

import (
	"time"

	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name               string `json:"name" binding:"required"`
	CurrencyCode       string `json:"currencyCode" binding:"omitempty,currencycode"` // Empty: use default currency
	Excluded           bool   `json:"excluded"`
	ExchangeModeActive bool   `json:"exchangeModeActive"`
	Note               string `json:"note"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// Balance fields are deliberately absent; only the reconciliation engine
// mutates them.
type UpdateAccountRequest struct {
	Name               *string `json:"name"`
	Excluded           *bool   `json:"excluded"`
	ExchangeModeActive *bool   `json:"exchangeModeActive"`
	Note               *string `json:"note"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID                     string          `json:"accountID"`
	Name                          string          `json:"name"`
	CurrencyCode                  string          `json:"currencyCode"`
	CurrentBalance                decimal.Decimal `json:"currentBalance"`
	CurrentBalanceWithoutExchange decimal.Decimal `json:"currentBalanceWithoutExchange"`
	Excluded                      bool            `json:"excluded"`
	ExchangeModeActive            bool            `json:"exchangeModeActive"`
	Note                          string          `json:"note"`
	CreatedAt                     time.Time       `json:"createdAt"`
	LastUpdatedAt                 time.Time       `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:                     acc.AccountID,
		Name:                          acc.Name,
		CurrencyCode:                  acc.CurrencyCode,
		CurrentBalance:                acc.CurrentBalance,
		CurrentBalanceWithoutExchange: acc.CurrentBalanceWithoutExchange,
		Excluded:                      acc.Excluded,
		ExchangeModeActive:            acc.ExchangeModeActive,
		Note:                          acc.Note,
		CreatedAt:                     acc.CreatedAt,
		LastUpdatedAt:                 acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
