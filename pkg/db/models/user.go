package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
)

type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Name      string         `gorm:"not null" json:"name"`
	Phone     *string        `json:"phone,omitempty"`
	Role      enums.UserRole `gorm:"type:varchar(20);not null;default:CUSTOMER;index" json:"role"`
	IsActive  bool           `gorm:"not null;default:true;index" json:"isActive"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`

	Addresses []Address `gorm:"foreignKey:UserID" json:"addresses,omitempty"`
	Orders    []Order   `gorm:"foreignKey:UserID" json:"orders,omitempty"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsGuest reports whether the account was created implicitly at checkout
// and has never set a password.
func (u *User) IsGuest() bool {
	return u.Password == ""
}
