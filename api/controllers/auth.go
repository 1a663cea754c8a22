package controllers

import (
	"net/http"

	"github.com/hamzasiddiqui/bazaarline-backend/api/responses"
	"github.com/hamzasiddiqui/bazaarline-backend/api/validators"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/auth"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/logger"
)

type AuthController struct {
	service auth.Service
	logg    *logger.Logger
}

func NewAuthController(service auth.Service, logg *logger.Logger) *AuthController {
	return &AuthController{service: service, logg: logg}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	result, err := c.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	responses.WriteSuccess(w, result)
}
