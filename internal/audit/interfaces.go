package audit

import (
	"context"

	"gorm.io/gorm"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/pagination"
)

type ListFilter struct {
	Action     string
	EntityType string
	Pagination pagination.Params
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, filter ListFilter) ([]models.AuditLog, int64, error)
}
