package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
)

type Claims struct {
	UserID uuid.UUID      `json:"uid"`
	Email  string         `json:"email"`
	Role   enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}
