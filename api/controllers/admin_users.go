package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hamzasiddiqui/bazaarline-backend/api/middleware"
	"github.com/hamzasiddiqui/bazaarline-backend/api/responses"
	"github.com/hamzasiddiqui/bazaarline-backend/api/validators"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/users"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/logger"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/pagination"
)

type AdminUsersController struct {
	service users.Service
	logg    *logger.Logger
}

func NewAdminUsersController(service users.Service, logg *logger.Logger) *AdminUsersController {
	return &AdminUsersController{service: service, logg: logg}
}

func (c *AdminUsersController) List(w http.ResponseWriter, r *http.Request) {
	isActive, err := validators.ParseQueryBool(r, "isActive")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	filter := users.ListFilter{
		Role:       enums.UserRole(validators.ParseQueryString(r, "role")),
		IsActive:   isActive,
		Search:     validators.ParseQueryString(r, "search"),
		Pagination: pagination.FromRequest(r),
	}

	result, err := c.service.List(r.Context(), filter)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, result)
}

func (c *AdminUsersController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	user, err := c.service.Get(r.Context(), id)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, user)
}

type updateUserRequest struct {
	IsActive *bool           `json:"isActive"`
	Role     *enums.UserRole `json:"role" validate:"omitempty,oneof=CUSTOMER ADMIN SUPER_ADMIN"`
}

func (c *AdminUsersController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	var req updateUserRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	user, err := c.service.Update(r.Context(), c.actor(r), users.UpdateInput{
		UserID:   id,
		IsActive: req.IsActive,
		Role:     req.Role,
	})
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteMessage(w, user, "user updated")
}

type updateUserRoleRequest struct {
	Role enums.UserRole `json:"role" validate:"required,oneof=CUSTOMER ADMIN SUPER_ADMIN"`
}

func (c *AdminUsersController) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	var req updateUserRoleRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	user, err := c.service.UpdateRole(r.Context(), c.actor(r), users.UpdateRoleInput{
		UserID: id,
		Role:   req.Role,
	})
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteMessage(w, user, "user role updated")
}

func (c *AdminUsersController) actor(r *http.Request) users.Actor {
	return users.Actor{
		ID:   middleware.UserIDFromContext(r.Context()),
		Role: middleware.RoleFromContext(r.Context()),
		IP:   middleware.ClientIPFromContext(r.Context()),
	}
}
