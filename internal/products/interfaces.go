package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/pagination"
)

type ListFilter struct {
	CategoryID  uuid.UUID
	IsActive    *bool
	IsFeatured  *bool
	IsPublished *bool
	Search      string
	Pagination  pagination.Params
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, filter ListFilter) ([]models.Product, int64, error)
	ListActive(ctx context.Context, filter ListFilter) ([]models.Product, int64, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	ReplaceImages(ctx context.Context, productID uuid.UUID, images []models.ProductImage) error
	Deactivate(ctx context.Context, productID uuid.UUID) error
}
