package products

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/pagination"
)

type ImageInput struct {
	URL     string
	AltText *string
}

type CreateInput struct {
	Name             string
	Slug             string
	Description      *string
	ShortDescription *string
	Price            decimal.Decimal
	ComparePrice     *decimal.Decimal
	CostPrice        *decimal.Decimal
	SKU              *string
	Quantity         int
	TrackQuantity    bool
	MinQuantity      int
	Weight           *decimal.Decimal
	Dimensions       *string
	Tags             []string
	MetaTitle        *string
	MetaDescription  *string
	CategoryID       uuid.UUID
	IsFeatured       bool
	Images           []ImageInput
}

// UpdateInput carries a partial mutation. A nil Images slice leaves the
// gallery untouched; an empty one deletes every image.
type UpdateInput struct {
	ProductID        uuid.UUID
	Name             *string
	Slug             *string
	Description      *string
	ShortDescription *string
	Price            *decimal.Decimal
	ComparePrice     *decimal.Decimal
	CostPrice        *decimal.Decimal
	SKU              *string
	Quantity         *int
	TrackQuantity    *bool
	MinQuantity      *int
	Weight           *decimal.Decimal
	Dimensions       *string
	Tags             []string
	TagsSet          bool
	MetaTitle        *string
	MetaDescription  *string
	CategoryID       *uuid.UUID
	IsFeatured       *bool
	Images           []ImageInput
	ImagesSet        bool
}

type ListResult struct {
	Products   []models.Product   `json:"products"`
	Pagination pagination.Summary `json:"pagination"`
}
