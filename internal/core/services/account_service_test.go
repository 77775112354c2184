package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pocketfox/pocketfox_backend/internal/apperrors"
	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
	portsrepo "github.com/pocketfox/pocketfox_backend/internal/core/ports/repositories"
	portssvc "github.com/pocketfox/pocketfox_backend/internal/core/ports/services"
	"github.com/pocketfox/pocketfox_backend/internal/core/services"
	"github.com/pocketfox/pocketfox_backend/internal/dto"
)

// --- Mock AccountRepositoryWithTx ---

type MockAccountRepositoryWithTx struct {
	MockAccountRepository
}

var _ portsrepo.AccountRepositoryWithTx = (*MockAccountRepositoryWithTx)(nil)

func (m *MockAccountRepositoryWithTx) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockAccountRepositoryWithTx) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepositoryWithTx) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepositoryWithTx) DeleteAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) error {
	args := m.Called(ctx, tx, accountID)
	return args.Error(0)
}

// --- Mock SettingSvcFacade ---

type MockSettingService struct {
	mock.Mock
}

var _ portssvc.SettingSvcFacade = (*MockSettingService)(nil)

func (m *MockSettingService) GetDefaultCurrency(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSettingService) SetDefaultCurrency(ctx context.Context, currencyCode string) error {
	args := m.Called(ctx, currencyCode)
	return args.Error(0)
}

// --- Mock BalanceSvcFacade ---

type MockBalanceService struct {
	mock.Mock
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

func (m *MockBalanceService) Summary(ctx context.Context) (*domain.BalanceSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSummary), args.Error(1)
}

func (m *MockBalanceService) RefreshTotals(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBalanceService) InvalidateTotals() {
	m.Called()
}

// --- Test Suite ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockAccountRepositoryWithTx
	mockTxnRepo *MockTransactionRepository
	mockSetting *MockSettingService
	mockBalance *MockBalanceService
	service     portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepositoryWithTx)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockSetting = new(MockSettingService)
	suite.mockBalance = new(MockBalanceService)
	suite.service = services.NewAccountService(suite.mockRepo, suite.mockTxnRepo,
		services.WithSettingService(suite.mockSetting),
		services.WithBalanceService(suite.mockBalance),
	)
}

func (suite *AccountServiceTestSuite) TestCreateAccountWithExplicitCurrency() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Wallet", CurrencyCode: "EUR"}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal("EUR", account.CurrencyCode)
	suite.True(account.CurrentBalance.IsZero())
	suite.True(account.CurrentBalanceWithoutExchange.IsZero())
	suite.WithinDuration(time.Now(), account.CreatedAt, time.Second)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockSetting.AssertNotCalled(suite.T(), "GetDefaultCurrency", mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccountUsesDefaultCurrency() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Wallet"}

	suite.mockSetting.On("GetDefaultCurrency", ctx).Return("CHF", nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("CHF", account.CurrencyCode)
	suite.mockSetting.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccountAppliesProvidedFields() {
	ctx := context.Background()
	account := newTestAccount("USD", 100)
	newName := "Renamed"
	excluded := true

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, account.AccountID, dto.UpdateAccountRequest{
		Name:     &newName,
		Excluded: &excluded,
	})

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.True(updated.Excluded)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccountNoFieldsIsNoOp() {
	ctx := context.Background()
	account := newTestAccount("USD", 100)

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, account.AccountID, dto.UpdateAccountRequest{})

	suite.Require().NoError(err)
	suite.Equal(account.Name, updated.Name)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccountCascadesTransactions() {
	ctx := context.Background()
	account := newTestAccount("USD", 100)

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("DeleteAccountInTx", ctx, nil, account.AccountID).Return(nil).Once()
	suite.mockTxnRepo.On("DeleteByAccountInTx", ctx, nil, account.AccountID).Return(nil).Once()
	suite.mockRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Once()
	suite.mockBalance.On("RefreshTotals", ctx).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, account.AccountID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockBalance.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccountRollsBackOnCascadeFailure() {
	ctx := context.Background()
	account := newTestAccount("USD", 100)

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("DeleteAccountInTx", ctx, nil, account.AccountID).Return(nil).Once()
	suite.mockTxnRepo.On("DeleteByAccountInTx", ctx, nil, account.AccountID).Return(apperrors.ErrInternal).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, account.AccountID)

	suite.Require().Error(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockBalance.AssertNotCalled(suite.T(), "RefreshTotals", mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteUnknownAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteAccount(ctx, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
