package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
)

type Overview struct {
	ActiveUsers      int64           `json:"activeUsers"`
	ActiveProducts   int64           `json:"activeProducts"`
	TotalOrders      int64           `json:"totalOrders"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	PendingOrders    int64           `json:"pendingOrders"`
	LowStockProducts int64           `json:"lowStockProducts"`
}

// RecentOrder is the flattened projection the dashboard renders, not the
// full order graph.
type RecentOrder struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   string              `json:"orderNumber"`
	CustomerName  string              `json:"customerName"`
	CustomerEmail string              `json:"customerEmail"`
	Status        enums.OrderStatus   `json:"status"`
	PaymentStatus enums.PaymentStatus `json:"paymentStatus"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`
	ItemCount     int                 `json:"itemCount"`
	CreatedAt     time.Time           `json:"createdAt"`
}

type TopProduct struct {
	ProductID    uuid.UUID       `json:"productId"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     *string         `json:"imageUrl,omitempty"`
	QuantitySold int64           `json:"quantitySold"`
	OrderCount   int64           `json:"orderCount"`
}

type Stats struct {
	Overview     Overview      `json:"overview"`
	RecentOrders []RecentOrder `json:"recentOrders"`
	TopProducts  []TopProduct  `json:"topProducts"`
}
