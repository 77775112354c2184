package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestChargedSign(t *testing.T) {
	assert.True(t, Income.ChargedSign().Equal(decimal.NewFromInt(1)))
	assert.True(t, Expense.ChargedSign().Equal(decimal.NewFromInt(-1)))
	assert.True(t, Transfer.ChargedSign().Equal(decimal.NewFromInt(-1)))
}

func TestTransactionTypeIsValid(t *testing.T) {
	tests := []struct {
		txnType TransactionType
		valid   bool
	}{
		{Income, true},
		{Expense, true},
		{Transfer, true},
		{TransactionType(""), false},
		{TransactionType("REFUND"), false},
		{TransactionType("income"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, tt.txnType.IsValid(), "type %q", tt.txnType)
	}
}

func TestIsTransfer(t *testing.T) {
	target := "acc-2"
	txn := &FinancialTransaction{Type: Transfer, TargetAccountID: &target}
	assert.True(t, txn.IsTransfer())

	txn = &FinancialTransaction{Type: Expense}
	assert.False(t, txn.IsTransfer())
}
