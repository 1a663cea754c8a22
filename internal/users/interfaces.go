package users

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/pagination"
)

type ListFilter struct {
	Role       enums.UserRole
	IsActive   *bool
	Search     string
	Pagination pagination.Params
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, filter ListFilter) ([]models.User, int64, error)
	CountOrdersByUser(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}
