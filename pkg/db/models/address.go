package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Address struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	FullName   string    `gorm:"not null" json:"fullName"`
	Phone      string    `gorm:"not null" json:"phone"`
	Line1      string    `gorm:"not null" json:"line1"`
	Line2      *string   `json:"line2,omitempty"`
	City       string    `gorm:"not null" json:"city"`
	State      *string   `json:"state,omitempty"`
	PostalCode *string   `json:"postalCode,omitempty"`
	Country    string    `gorm:"not null;default:PK" json:"country"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (a *Address) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
