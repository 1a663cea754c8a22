package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string           `gorm:"not null" json:"name"`
	Slug             string           `gorm:"uniqueIndex;not null" json:"slug"`
	Description      *string          `json:"description,omitempty"`
	ShortDescription *string          `json:"shortDescription,omitempty"`
	Price            decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"price"`
	ComparePrice     *decimal.Decimal `gorm:"type:decimal(12,2)" json:"comparePrice,omitempty"`
	CostPrice        *decimal.Decimal `gorm:"type:decimal(12,2)" json:"costPrice,omitempty"`
	SKU              *string          `gorm:"column:sku;uniqueIndex" json:"sku,omitempty"`
	Quantity         int              `gorm:"not null;default:0" json:"quantity"`
	TrackQuantity    bool             `gorm:"not null;default:true" json:"trackQuantity"`
	MinQuantity      int              `gorm:"not null;default:0" json:"minQuantity"`
	Weight           *decimal.Decimal `gorm:"type:decimal(10,3)" json:"weight,omitempty"`
	Dimensions       *string          `json:"dimensions,omitempty"`
	Tags             []string         `gorm:"serializer:json" json:"tags,omitempty"`
	MetaTitle        *string          `json:"metaTitle,omitempty"`
	MetaDescription  *string          `json:"metaDescription,omitempty"`
	CategoryID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"categoryId"`
	IsActive         bool             `gorm:"not null;default:true;index" json:"isActive"`
	IsFeatured       bool             `gorm:"not null;default:false" json:"isFeatured"`
	IsPublished      bool             `gorm:"not null;default:false;index" json:"isPublished"`
	PublishedAt      *time.Time       `json:"publishedAt,omitempty"`
	PublishedBy      *uuid.UUID       `gorm:"type:uuid" json:"publishedBy,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`

	Category *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Images   []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`
}

func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PrimaryImage returns the image flagged primary, falling back to the first
// image in sort order, or nil when the product has no images loaded.
func (p *Product) PrimaryImage() *ProductImage {
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}

type ProductImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	URL       string    `gorm:"not null" json:"url"`
	AltText   *string   `json:"altText,omitempty"`
	IsPrimary bool      `gorm:"not null;default:false" json:"isPrimary"`
	SortOrder int       `gorm:"not null;default:0" json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

func (i *ProductImage) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
