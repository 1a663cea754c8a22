package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/pagination"
)

type ListFilter struct {
	Status        enums.OrderStatus
	PaymentStatus enums.PaymentStatus
	Search        string
	Pagination    pagination.Params
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter ListFilter) ([]models.Order, int64, error)
	Update(ctx context.Context, order *models.Order) error
	UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status enums.PaymentStatus) error
}
