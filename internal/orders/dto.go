package orders

import (
	"github.com/google/uuid"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/pagination"
)

type ListResult struct {
	Orders     []models.Order     `json:"orders"`
	Pagination pagination.Summary `json:"pagination"`
}

// UpdateInput carries a partial order mutation: nil fields stay untouched.
type UpdateInput struct {
	OrderID       uuid.UUID
	Status        *enums.OrderStatus
	PaymentStatus *enums.PaymentStatus
	Notes         *string
}

func (i UpdateInput) empty() bool {
	return i.Status == nil && i.PaymentStatus == nil && i.Notes == nil
}
