package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType enumerates the kinds of financial transactions.
type TransactionType string

const (
	Income   TransactionType = "INCOME"
	Expense  TransactionType = "EXPENSE"
	Transfer TransactionType = "TRANSFER"
)

// ChargedSign returns the multiplier applied to the charged account when the
// transaction amount is applied: income credits the charged account, expenses
// and transfers draw from it.
func (t TransactionType) ChargedSign() decimal.Decimal {
	if t == Income {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(-1)
}

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case Income, Expense, Transfer:
		return true
	}
	return false
}

// FinancialTransaction represents a single income, expense or transfer entry.
//
// Amount is an unsigned magnitude in the transaction's own currency; the
// reconciliation engine derives the signed deltas applied to the involved
// account(s). A transaction's amount is applied to balances at most once
// while Cleared is true.
type FinancialTransaction struct {
	TransactionID       string          `json:"transactionID"`       // Primary Key (UUID)
	ChargedAccountID    string          `json:"chargedAccountID"`    // FK -> accounts (Not Null)
	TargetAccountID     *string         `json:"targetAccountID"`     // FK -> accounts; set for transfers only
	Amount              decimal.Decimal `json:"amount"`              // Unsigned magnitude
	CurrencyCode        string          `json:"currencyCode"`        // Currency of the amount
	Type                TransactionType `json:"type"`                // INCOME, EXPENSE or TRANSFER
	Date                time.Time       `json:"date"`                // Booking date; future dates defer clearing
	Cleared             bool            `json:"cleared"`             // Monetary effect has been applied to balances
	ClearTransactionNow bool            `json:"clearTransactionNow"` // User intent: apply immediately vs. defer
	CategoryID          *string         `json:"categoryID"`          // Nullable FK -> categories
	Note                string          `json:"note"`
	AuditFields
}

// IsTransfer reports whether the transaction moves money between two accounts.
func (t *FinancialTransaction) IsTransfer() bool {
	return t.Type == Transfer
}
