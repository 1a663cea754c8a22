package orders

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Address").
		Preload("Items").
		Preload("Items.Product").
		Preload("Payments").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{})

	if filter.Status != "" {
		query = query.Where("orders.status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("orders.payment_status = ?", filter.PaymentStatus)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.
			Joins("JOIN users ON users.id = orders.user_id").
			Where("lower(orders.order_number) LIKE ? OR lower(users.name) LIKE ? OR lower(users.email) LIKE ?",
				like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := query.
		Preload("User").
		Preload("Items").
		Preload("Payments").
		Order("orders.created_at DESC").
		Offset(filter.Pagination.Offset()).
		Limit(filter.Pagination.Limit()).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *repository) Update(ctx context.Context, order *models.Order) error {
	// column list avoids upserting preloaded associations
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":         order.Status,
			"payment_status": order.PaymentStatus,
			"notes":          order.Notes,
		}).Error
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status enums.PaymentStatus) error {
	updates := map[string]any{"status": status}
	if status == enums.PaymentPaid {
		now := time.Now()
		updates["paid_at"] = &now
	}
	return r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("order_id = ?", orderID).
		Updates(updates).Error
}
