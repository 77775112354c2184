package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pocketfox/pocketfox_backend/internal/apperrors"
	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
	portsrepo "github.com/pocketfox/pocketfox_backend/internal/core/ports/repositories"
	portssvc "github.com/pocketfox/pocketfox_backend/internal/core/ports/services"
	"github.com/pocketfox/pocketfox_backend/internal/dto"
)

// categoryService implements CategorySvcFacade.
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepository
	txnRepo      portsrepo.FinancialTransactionWriter
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepository, txnRepo portsrepo.FinancialTransactionWriter) portssvc.CategorySvcFacade {
	return &categoryService{
		categoryRepo: categoryRepo,
		txnRepo:      txnRepo,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	now := time.Now().UTC()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		Name:       req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category",
			slog.String("category_id", category.CategoryID))
		return nil, err
	}

	s.LogInfo(ctx, "Category created",
		slog.String("category_id", category.CategoryID),
		slog.String("name", category.Name))
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find category by ID",
				slog.String("category_id", categoryID))
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name == nil {
		s.LogDebug(ctx, "No fields provided for category update",
			slog.String("category_id", categoryID))
		return category, nil
	}

	category.Name = *req.Name
	category.LastUpdatedAt = time.Now().UTC()

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category",
			slog.String("category_id", categoryID))
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes the category and detaches it from every transaction
// that references it; the transactions themselves are kept.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	if _, err := s.GetCategoryByID(ctx, categoryID); err != nil {
		return err
	}

	if err := s.txnRepo.DetachCategory(ctx, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to detach category from transactions",
			slog.String("category_id", categoryID))
		return err
	}
	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to delete category",
			slog.String("category_id", categoryID))
		return err
	}

	s.LogInfo(ctx, "Category deleted",
		slog.String("category_id", categoryID))
	return nil
}
