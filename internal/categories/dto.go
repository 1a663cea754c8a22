package categories

import (
	"github.com/google/uuid"
)

type CreateInput struct {
	Name        string
	Slug        string
	Description *string
	ImageURL    *string
	SortOrder   int
}

// UpdateInput carries a partial mutation: nil fields stay untouched.
type UpdateInput struct {
	CategoryID  uuid.UUID
	Name        *string
	Slug        *string
	Description *string
	ImageURL    *string
	SortOrder   *int
}
