package categories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	ListActive(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	CountProducts(ctx context.Context, categoryID uuid.UUID) (int64, error)
}
