package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pocketfox/pocketfox_backend/internal/apperrors"
	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
	portsrepo "github.com/pocketfox/pocketfox_backend/internal/core/ports/repositories"
	portssvc "github.com/pocketfox/pocketfox_backend/internal/core/ports/services"
	"github.com/pocketfox/pocketfox_backend/internal/core/services"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Mock FinancialTransactionWriter ---

type MockTransactionWriter struct {
	mock.Mock
}

var _ portsrepo.FinancialTransactionWriter = (*MockTransactionWriter)(nil)

func (m *MockTransactionWriter) SaveTransaction(ctx context.Context, txn domain.FinancialTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionWriter) UpdateTransaction(ctx context.Context, txn domain.FinancialTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionWriter) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionWriter) DetachCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

// --- Mock CurrencyRateProvider ---

type MockRateProvider struct {
	mock.Mock
}

var _ portssvc.CurrencyRateProvider = (*MockRateProvider)(nil)

func (m *MockRateProvider) GetRatio(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, fromCode, toCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock DiagnosticsSink ---

type MockDiagnosticsSink struct {
	mock.Mock
}

var _ portssvc.DiagnosticsSink = (*MockDiagnosticsSink)(nil)

func (m *MockDiagnosticsSink) LogException(ctx context.Context, err error) {
	m.Called(ctx, err)
}

// --- Test Suite ---

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockAccounts    *MockAccountRepository
	mockTxns        *MockTransactionWriter
	mockRates       *MockRateProvider
	mockDiagnostics *MockDiagnosticsSink
	service         portssvc.ReconciliationSvc
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockAccounts = new(MockAccountRepository)
	suite.mockTxns = new(MockTransactionWriter)
	suite.mockRates = new(MockRateProvider)
	suite.mockDiagnostics = new(MockDiagnosticsSink)
	suite.service = services.NewReconciliationService(suite.mockAccounts, suite.mockTxns, suite.mockRates, suite.mockDiagnostics)
}

func newTestAccount(currency string, balance int64) *domain.Account {
	now := time.Now().UTC()
	return &domain.Account{
		AccountID:                     uuid.NewString(),
		Name:                          "Checking",
		CurrencyCode:                  currency,
		CurrentBalance:                decimal.NewFromInt(balance),
		CurrentBalanceWithoutExchange: decimal.NewFromInt(balance),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
}

func newTestTransaction(txnType domain.TransactionType, chargedID string, amount int64, currency string) *domain.FinancialTransaction {
	now := time.Now().UTC()
	return &domain.FinancialTransaction{
		TransactionID:       uuid.NewString(),
		ChargedAccountID:    chargedID,
		Amount:              decimal.NewFromInt(amount),
		CurrencyCode:        currency,
		Type:                txnType,
		Date:                now,
		ClearTransactionNow: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
}

func (suite *ReconciliationServiceTestSuite) TestApplyExpense() {
	ctx := context.Background()
	account := newTestAccount("USD", 100)
	txn := newTestTransaction(domain.Expense, account.AccountID, 30, "USD")

	suite.mockAccounts.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	var savedAccount domain.Account
	suite.mockAccounts.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) { savedAccount = args.Get(1).(domain.Account) }).
		Return(nil).Once()
	suite.mockTxns.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.FinancialTransaction")).Return(nil).Once()

	err := suite.service.ApplyTransaction(ctx, txn)

	suite.Require().NoError(err)
	suite.True(txn.Cleared)
	suite.True(savedAccount.CurrentBalance.Equal(decimal.NewFromInt(70)),
		"expected 70, got %s", savedAccount.CurrentBalance)
	suite.True(savedAccount.CurrentBalanceWithoutExchange.Equal(decimal.NewFromInt(70)))
	suite.mockAccounts.AssertExpectations(suite.T())
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestApplyIncome() {
	ctx := context.Background()
	account := newTestAccount("USD", 100)
	txn := newTestTransaction(domain.Income, account.AccountID, 55, "USD")

	suite.mockAccounts.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	var savedAccount domain.Account
	suite.mockAccounts.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) { savedAccount = args.Get(1).(domain.Account) }).
		Return(nil).Once()
	suite.mockTxns.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.FinancialTransaction")).Return(nil).Once()

	err := suite.service.ApplyTransaction(ctx, txn)

	suite.Require().NoError(err)
	suite.True(txn.Cleared)
	suite.True(savedAccount.CurrentBalance.Equal(decimal.NewFromInt(155)))
	suite.mockAccounts.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestApplyTransferMovesBothSides() {
	ctx := context.Background()
	source := newTestAccount("USD", 100)
	target := newTestAccount("USD", 50)
	txn := newTestTransaction(domain.Transfer, source.AccountID, 20, "USD")
	txn.TargetAccountID = &target.AccountID

	suite.mockAccounts.On("FindAccountByID", ctx, source.AccountID).Return(source, nil).Once()
	suite.mockAccounts.On("FindAccountByID", ctx, target.AccountID).Return(target, nil).Once()

	saved := map[string]domain.Account{}
	var order []string
	suite.mockAccounts.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			acc := args.Get(1).(domain.Account)
			saved[acc.AccountID] = acc
			order = append(order, acc.AccountID)
		}).
		Return(nil).Twice()
	suite.mockTxns.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.FinancialTransaction")).Return(nil).Twice()

	err := suite.service.ApplyTransaction(ctx, txn)

	suite.Require().NoError(err)
	suite.True(txn.Cleared)
	suite.True(saved[source.AccountID].CurrentBalance.Equal(decimal.NewFromInt(80)),
		"source expected 80, got %s", saved[source.AccountID].CurrentBalance)
	suite.True(saved[target.AccountID].CurrentBalance.Equal(decimal.NewFromInt(70)),
		"target expected 70, got %s", saved[target.AccountID].CurrentBalance)
	// The inflow side settles before the charged side.
	suite.Require().Len(order, 2)
	suite.Equal(target.AccountID, order[0])
	suite.Equal(source.AccountID, order[1])
	suite.mockAccounts.AssertExpectations(suite.T())
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestApplyCrossCurrencyUsesRatio() {
	ctx := context.Background()
	account := newTestAccount("EUR", 100)
	txn := newTestTransaction(domain.Expense, account.AccountID, 10, "USD")

	suite.mockAccounts.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockRates.On("GetRatio", ctx, "USD", "EUR").Return(decimal.RequireFromString("0.5"), nil).Once()

	var savedAccount domain.Account
	suite.mockAccounts.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) { savedAccount = args.Get(1).(domain.Account) }).
		Return(nil).Once()
	suite.mockTxns.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.FinancialTransaction")).Return(nil).Once()

	err := suite.service.ApplyTransaction(ctx, txn)

	suite.Require().NoError(err)
	suite.True(savedAccount.CurrentBalance.Equal(decimal.NewFromInt(95)),
		"converted balance expected 95, got %s", savedAccount.CurrentBalance)
	suite.True(savedAccount.CurrentBalanceWithoutExchange.Equal(decimal.NewFromInt(90)),
		"unconverted balance expected 90, got %s", savedAccount.CurrentBalanceWithoutExchange)
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestApplyRateFailureFallsBackToIdentity() {
	ctx := context.Background()
	account := newTestAccount("EUR", 100)
	txn := newTestTransaction(domain.Expense, account.AccountID, 10, "USD")

	suite.mockAccounts.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockRates.On("GetRatio", ctx, "USD", "EUR").
		Return(decimal.Zero, apperrors.ErrRateUnavailable).Once()
	suite.mockDiagnostics.On("LogException", ctx, mock.Anything).Once()

	var savedAccount domain.Account
	suite.mockAccounts.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) { savedAccount = args.Get(1).(domain.Account) }).
		Return(nil).Once()
	suite.mockTxns.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.FinancialTransaction")).Return(nil).Once()

	err := suite.service.ApplyTransaction(ctx, txn)

	suite.Require().NoError(err)
	// Identity ratio: both balance fields move by the raw amount.
	suite.True(savedAccount.CurrentBalance.Equal(decimal.NewFromInt(90)))
	suite.True(savedAccount.CurrentBalanceWithoutExchange.Equal(decimal.NewFromInt(90)))
	suite.mockDiagnostics.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestApplyDeferredRecordsUncleared() {
	ctx := context.Background()
	txn := newTestTransaction(domain.Expense, uuid.NewString(), 30, "USD")
	txn.ClearTransactionNow = false
	txn.Cleared = true // must be forced back to false

	suite.mockTxns.On("UpdateTransaction", ctx, mock.MatchedBy(func(t domain.FinancialTransaction) bool {
		return !t.Cleared
	})).Return(nil).Once()

	err := suite.service.ApplyTransaction(ctx, txn)

	suite.Require().NoError(err)
	suite.False(txn.Cleared)
	suite.mockTxns.AssertExpectations(suite.T())
	suite.mockAccounts.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestApplyUnresolvedAccountIsNoOp() {
	ctx := context.Background()
	txn := newTestTransaction(domain.Expense, uuid.NewString(), 30, "USD")

	suite.mockAccounts.On("FindAccountByID", ctx, txn.ChargedAccountID).
		Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.ApplyTransaction(ctx, txn)

	suite.Require().NoError(err)
	suite.False(txn.Cleared)
	suite.mockAccounts.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
	suite.mockTxns.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestApplyInvalidTypeRejected() {
	ctx := context.Background()
	txn := newTestTransaction("BOGUS", uuid.NewString(), 30, "USD")

	err := suite.service.ApplyTransaction(ctx, txn)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReconciliationServiceTestSuite) TestRevertExpenseRestoresBalance() {
	ctx := context.Background()
	account := newTestAccount("USD", 70)
	txn := newTestTransaction(domain.Expense, account.AccountID, 30, "USD")
	txn.Cleared = true

	suite.mockAccounts.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	var savedAccount domain.Account
	suite.mockAccounts.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) { savedAccount = args.Get(1).(domain.Account) }).
		Return(nil).Once()
	suite.mockTxns.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.FinancialTransaction")).Return(nil).Once()

	err := suite.service.RevertTransaction(ctx, txn)

	suite.Require().NoError(err)
	suite.True(savedAccount.CurrentBalance.Equal(decimal.NewFromInt(100)),
		"expected 100 after revert, got %s", savedAccount.CurrentBalance)
	// Revert leaves the state flag alone; the caller decides what comes next.
	suite.True(txn.Cleared)
	suite.mockAccounts.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestRevertTransferRestoresBothSides() {
	ctx := context.Background()
	source := newTestAccount("USD", 80)
	target := newTestAccount("USD", 70)
	txn := newTestTransaction(domain.Transfer, source.AccountID, 20, "USD")
	txn.TargetAccountID = &target.AccountID
	txn.Cleared = true

	suite.mockAccounts.On("FindAccountByID", ctx, source.AccountID).Return(source, nil).Once()
	suite.mockAccounts.On("FindAccountByID", ctx, target.AccountID).Return(target, nil).Once()

	saved := map[string]domain.Account{}
	suite.mockAccounts.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			acc := args.Get(1).(domain.Account)
			saved[acc.AccountID] = acc
		}).
		Return(nil).Twice()
	suite.mockTxns.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.FinancialTransaction")).Return(nil).Twice()

	err := suite.service.RevertTransaction(ctx, txn)

	suite.Require().NoError(err)
	suite.True(saved[source.AccountID].CurrentBalance.Equal(decimal.NewFromInt(100)))
	suite.True(saved[target.AccountID].CurrentBalance.Equal(decimal.NewFromInt(50)))
	suite.mockAccounts.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestRevertUnclearedIsNoOp() {
	ctx := context.Background()
	txn := newTestTransaction(domain.Expense, uuid.NewString(), 30, "USD")
	txn.Cleared = false

	err := suite.service.RevertTransaction(ctx, txn)

	suite.Require().NoError(err)
	suite.mockAccounts.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
	suite.mockAccounts.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
