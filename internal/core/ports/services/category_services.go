package services

import (
	"context"

	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
	"github.com/pocketfox/pocketfox_backend/internal/dto"
)

// CategorySvcFacade defines category operations.
type CategorySvcFacade interface {
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)

	// DeleteCategory removes the category and detaches it from every
	// transaction that references it.
	DeleteCategory(ctx context.Context, categoryID string) error
}
