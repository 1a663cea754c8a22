package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
)

type Order struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber    string              `gorm:"uniqueIndex;not null" json:"orderNumber"`
	UserID         uuid.UUID           `gorm:"type:uuid;not null;index" json:"userId"`
	AddressID      uuid.UUID           `gorm:"type:uuid;not null" json:"addressId"`
	Status         enums.OrderStatus   `gorm:"type:varchar(20);not null;default:PENDING;index" json:"status"`
	PaymentStatus  enums.PaymentStatus `gorm:"type:varchar(20);not null;default:PENDING;index" json:"paymentStatus"`
	Subtotal       decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	TaxAmount      decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0" json:"taxAmount"`
	ShippingAmount decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0" json:"shippingAmount"`
	TotalAmount    decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	Currency       string              `gorm:"type:varchar(3);not null;default:PKR" json:"currency"`
	Notes          *string             `json:"notes,omitempty"`
	CreatedAt      time.Time           `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`

	User     *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Address  *Address    `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Payments []Payment   `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"orderId"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"productId"`
	ProductName string          `gorm:"not null" json:"productName"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	CreatedAt   time.Time       `json:"createdAt"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (i *OrderItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
