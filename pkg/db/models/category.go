package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Description *string    `json:"description,omitempty"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
	SortOrder   int        `gorm:"not null;default:0" json:"sortOrder"`
	IsActive    bool       `gorm:"not null;default:true;index" json:"isActive"`
	IsPublished bool       `gorm:"not null;default:false;index" json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	PublishedBy *uuid.UUID `gorm:"type:uuid" json:"publishedBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

func (c *Category) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
