package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
)

type Payment struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID        uuid.UUID           `gorm:"type:uuid;not null;index" json:"orderId"`
	Method         enums.PaymentMethod `gorm:"type:varchar(20);not null" json:"method"`
	Status         enums.PaymentStatus `gorm:"type:varchar(20);not null;default:PENDING" json:"status"`
	Amount         decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency       string              `gorm:"type:varchar(3);not null;default:PKR" json:"currency"`
	CashOnDelivery bool                `gorm:"not null;default:false" json:"cashOnDelivery"`
	CODNotes       *string             `gorm:"column:cod_notes" json:"codNotes,omitempty"`
	TransactionID  *string             `gorm:"column:transaction_id" json:"transactionId,omitempty"`
	PaidAt         *time.Time          `json:"paidAt,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

func (p *Payment) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
