package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pocketfox/pocketfox_backend/internal/apperrors"
	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
	portsrepo "github.com/pocketfox/pocketfox_backend/internal/core/ports/repositories"
	portssvc "github.com/pocketfox/pocketfox_backend/internal/core/ports/services"
	"github.com/pocketfox/pocketfox_backend/internal/core/services"
	"github.com/pocketfox/pocketfox_backend/internal/dto"
)

// --- Mock CategoryRepository ---

type MockCategoryRepository struct {
	mock.Mock
}

var _ portsrepo.CategoryRepository = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

// --- Test Suite ---

type CategoryServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockCategoryRepository
	mockTxnRepo *MockTransactionWriter
	service     portssvc.CategorySvcFacade
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCategoryRepository)
	suite.mockTxnRepo = new(MockTransactionWriter)
	suite.service = services.NewCategoryService(suite.mockRepo, suite.mockTxnRepo)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory() {
	ctx := context.Background()

	suite.mockRepo.On("SaveCategory", ctx, mock.AnythingOfType("domain.Category")).Return(nil).Once()

	category, err := suite.service.CreateCategory(ctx, dto.CreateCategoryRequest{Name: "Groceries"})

	suite.Require().NoError(err)
	suite.NotEmpty(category.CategoryID)
	suite.Equal("Groceries", category.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestDeleteCategoryDetachesTransactionsFirst() {
	ctx := context.Background()
	category := &domain.Category{CategoryID: uuid.NewString(), Name: "Groceries"}

	suite.mockRepo.On("FindCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()
	suite.mockTxnRepo.On("DetachCategory", ctx, category.CategoryID).Return(nil).Once()
	suite.mockRepo.On("DeleteCategory", ctx, category.CategoryID).Return(nil).Once()

	err := suite.service.DeleteCategory(ctx, category.CategoryID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestDeleteCategoryKeepsRowWhenDetachFails() {
	ctx := context.Background()
	category := &domain.Category{CategoryID: uuid.NewString(), Name: "Groceries"}

	suite.mockRepo.On("FindCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()
	suite.mockTxnRepo.On("DetachCategory", ctx, category.CategoryID).Return(apperrors.ErrInternal).Once()

	err := suite.service.DeleteCategory(ctx, category.CategoryID)

	suite.Require().Error(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestDeleteUnknownCategory() {
	ctx := context.Background()
	categoryID := uuid.NewString()

	suite.mockRepo.On("FindCategoryByID", ctx, categoryID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteCategory(ctx, categoryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DetachCategory", mock.Anything, mock.Anything)
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
