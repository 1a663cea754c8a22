package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/pagination"
)

type UserView struct {
	ID         uuid.UUID      `json:"id"`
	Email      string         `json:"email"`
	Name       string         `json:"name"`
	Phone      *string        `json:"phone,omitempty"`
	Role       enums.UserRole `json:"role"`
	IsActive   bool           `json:"isActive"`
	IsGuest    bool           `json:"isGuest"`
	OrderCount int64          `json:"orderCount"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

func toView(user models.User, orderCount int64) UserView {
	return UserView{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Phone:      user.Phone,
		Role:       user.Role,
		IsActive:   user.IsActive,
		IsGuest:    user.IsGuest(),
		OrderCount: orderCount,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

type ListResult struct {
	Users      []UserView         `json:"users"`
	Pagination pagination.Summary `json:"pagination"`
}

// UpdateInput is a partial update; nil fields are left untouched.
type UpdateInput struct {
	UserID   uuid.UUID
	IsActive *bool
	Role     *enums.UserRole
}

type UpdateRoleInput struct {
	UserID uuid.UUID
	Role   enums.UserRole
}
