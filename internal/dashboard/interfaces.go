package dashboard

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
)

// TopProductRow is an aggregate over order items; the product itself is
// joined in memory afterwards.
type TopProductRow struct {
	ProductID    uuid.UUID
	QuantitySold int64
	OrderCount   int64
}

type Repository interface {
	CountActiveUsers(ctx context.Context) (int64, error)
	CountActiveProducts(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
	CountOpenOrders(ctx context.Context) (int64, error)
	CountLowStockProducts(ctx context.Context, threshold int) (int64, error)
	PaidRevenue(ctx context.Context) (decimal.Decimal, error)
	RecentOrders(ctx context.Context, limit int) ([]models.Order, error)
	TopProductRows(ctx context.Context, limit int) ([]TopProductRow, error)
	ProductsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
}
