package dashboard

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
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

func (r *repository) CountActiveUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *repository) CountActiveProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *repository) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error
	return count, err
}

// CountOpenOrders counts orders still awaiting fulfilment.
func (r *repository) CountOpenOrders(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status IN ?", []enums.OrderStatus{enums.OrderPending, enums.OrderConfirmed}).
		Count(&count).Error
	return count, err
}

// CountLowStockProducts only considers active products that track inventory.
func (r *repository) CountLowStockProducts(ctx context.Context, threshold int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = ? AND track_quantity = ? AND quantity < ?", true, true, threshold).
		Count(&count).Error
	return count, err
}

// PaidRevenue sums totals over paid orders only.
func (r *repository) PaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	var raw *string
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("SUM(total_amount)").
		Where("payment_status = ?", enums.PaymentPaid).
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	if raw == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(*raw)
}

func (r *repository) RecentOrders(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *repository) TopProductRows(ctx context.Context, limit int) ([]TopProductRow, error) {
	var rows []TopProductRow
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("product_id, SUM(quantity) AS quantity_sold, COUNT(DISTINCT order_id) AS order_count").
		Group("product_id").
		Order("quantity_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ProductsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	out := make(map[uuid.UUID]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id IN ?", ids).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}
