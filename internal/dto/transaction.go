package dto

import (
	"time"

	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// Amount is an unsigned magnitude; sign handling belongs to the
// reconciliation engine. TargetAccountID is required for transfers and
// rejected otherwise.
type CreateTransactionRequest struct {
	ChargedAccountID string                 `json:"chargedAccountID" binding:"required"`
	TargetAccountID  *string                `json:"targetAccountID" binding:"required_if=Type TRANSFER"`
	Amount           decimal.Decimal        `json:"amount" binding:"required"`
	CurrencyCode     string                 `json:"currencyCode" binding:"omitempty,currencycode"` // Empty: use charged account currency
	Type             domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE TRANSFER"`
	Date             time.Time              `json:"date"` // Zero: now
	ClearNow         *bool                  `json:"clearNow"`
	CategoryID       *string                `json:"categoryID"`
	Note             string                 `json:"note"`
}

// UpdateTransactionRequest defines the data allowed for editing a transaction.
// The edit flow reverts the prior balance effect and reapplies the edited
// transaction, so every monetary field is editable.
type UpdateTransactionRequest struct {
	ChargedAccountID *string                 `json:"chargedAccountID"`
	TargetAccountID  *string                 `json:"targetAccountID"`
	Amount           *decimal.Decimal        `json:"amount"`
	CurrencyCode     *string                 `json:"currencyCode" binding:"omitempty,currencycode"`
	Type             *domain.TransactionType `json:"type" binding:"omitempty,oneof=INCOME EXPENSE TRANSFER"`
	Date             *time.Time              `json:"date"`
	ClearNow         *bool                   `json:"clearNow"`
	CategoryID       *string                 `json:"categoryID"`
	Note             *string                 `json:"note"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID       string                 `json:"transactionID"`
	ChargedAccountID    string                 `json:"chargedAccountID"`
	TargetAccountID     *string                `json:"targetAccountID,omitempty"`
	Amount              decimal.Decimal        `json:"amount"`
	CurrencyCode        string                 `json:"currencyCode"`
	Type                domain.TransactionType `json:"type"`
	Date                time.Time              `json:"date"`
	Cleared             bool                   `json:"cleared"`
	ClearTransactionNow bool                   `json:"clearTransactionNow"`
	CategoryID          *string                `json:"categoryID,omitempty"`
	Note                string                 `json:"note"`
	CreatedAt           time.Time              `json:"createdAt"`
	LastUpdatedAt       time.Time              `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain transaction to its response DTO.
func ToTransactionResponse(txn *domain.FinancialTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:       txn.TransactionID,
		ChargedAccountID:    txn.ChargedAccountID,
		TargetAccountID:     txn.TargetAccountID,
		Amount:              txn.Amount,
		CurrencyCode:        txn.CurrencyCode,
		Type:                txn.Type,
		Date:                txn.Date,
		Cleared:             txn.Cleared,
		ClearTransactionNow: txn.ClearTransactionNow,
		CategoryID:          txn.CategoryID,
		Note:                txn.Note,
		CreatedAt:           txn.CreatedAt,
		LastUpdatedAt:       txn.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.FinancialTransaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListTransactionsResponse wraps the list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ClearDueResponse reports the outcome of a clear-due pass.
type ClearDueResponse struct {
	Cleared int `json:"cleared"`
}
