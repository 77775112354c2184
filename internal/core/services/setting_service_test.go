package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pocketfox/pocketfox_backend/internal/apperrors"
	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
	portsrepo "github.com/pocketfox/pocketfox_backend/internal/core/ports/repositories"
	portssvc "github.com/pocketfox/pocketfox_backend/internal/core/ports/services"
	"github.com/pocketfox/pocketfox_backend/internal/core/services"
)

// --- Mock SettingRepository ---

type MockSettingRepository struct {
	mock.Mock
}

var _ portsrepo.SettingRepository = (*MockSettingRepository)(nil)

func (m *MockSettingRepository) FindSetting(ctx context.Context, key string) (*domain.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}

func (m *MockSettingRepository) UpsertSetting(ctx context.Context, setting domain.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

// --- Test Suite ---

type SettingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSettingRepository
	service  portssvc.SettingSvcFacade
}

func (suite *SettingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSettingRepository)
	suite.service = services.NewSettingService(suite.mockRepo)
}

func (suite *SettingServiceTestSuite) TestGetDefaultCurrencyReturnsStoredValue() {
	ctx := context.Background()
	suite.mockRepo.On("FindSetting", ctx, domain.SettingDefaultCurrency).
		Return(&domain.Setting{Key: domain.SettingDefaultCurrency, Value: "EUR"}, nil).Once()

	currency, err := suite.service.GetDefaultCurrency(ctx)

	suite.Require().NoError(err)
	suite.Equal("EUR", currency)
}

func (suite *SettingServiceTestSuite) TestGetDefaultCurrencyFallsBackWhenUnset() {
	ctx := context.Background()
	suite.mockRepo.On("FindSetting", ctx, domain.SettingDefaultCurrency).
		Return(nil, apperrors.ErrNotFound).Once()

	currency, err := suite.service.GetDefaultCurrency(ctx)

	suite.Require().NoError(err)
	suite.Equal(services.DefaultCurrencyFallback, currency)
}

func (suite *SettingServiceTestSuite) TestSetDefaultCurrencyUppercases() {
	ctx := context.Background()
	suite.mockRepo.On("UpsertSetting", ctx, mock.MatchedBy(func(s domain.Setting) bool {
		return s.Key == domain.SettingDefaultCurrency && s.Value == "CHF"
	})).Return(nil).Once()

	err := suite.service.SetDefaultCurrency(ctx, "chf")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettingServiceTestSuite) TestSetDefaultCurrencyRejectsBadCode() {
	ctx := context.Background()

	err := suite.service.SetDefaultCurrency(ctx, "EURO")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertSetting", mock.Anything, mock.Anything)
}

func TestSettingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettingServiceTestSuite))
}
