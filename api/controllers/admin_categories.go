package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hamzasiddiqui/bazaarline-backend/api/middleware"
	"github.com/hamzasiddiqui/bazaarline-backend/api/responses"
	"github.com/hamzasiddiqui/bazaarline-backend/api/validators"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/categories"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/logger"
)

type AdminCategoriesController struct {
	service categories.Service
	logg    *logger.Logger
}

func NewAdminCategoriesController(service categories.Service, logg *logger.Logger) *AdminCategoriesController {
	return &AdminCategoriesController{service: service, logg: logg}
}

func (c *AdminCategoriesController) List(w http.ResponseWriter, r *http.Request) {
	cats, err := c.service.List(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, cats)
}

func (c *AdminCategoriesController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	category, err := c.service.Get(r.Context(), id)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, category)
}

type createCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=2"`
	Slug        string  `json:"slug" validate:"required,min=2"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
	SortOrder   int     `json:"sortOrder"`
}

func (c *AdminCategoriesController) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	category, err := c.service.Create(r.Context(), c.actor(r), categories.CreateInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteCreated(w, category)
}

type updateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2"`
	Slug        *string `json:"slug" validate:"omitempty,min=2"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
	SortOrder   *int    `json:"sortOrder"`
}

func (c *AdminCategoriesController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	var req updateCategoryRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	category, err := c.service.Update(r.Context(), c.actor(r), categories.UpdateInput{
		CategoryID:  id,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteMessage(w, category, "category updated")
}

func (c *AdminCategoriesController) Publish(w http.ResponseWriter, r *http.Request) {
	c.setPublished(w, r, true)
}

func (c *AdminCategoriesController) Unpublish(w http.ResponseWriter, r *http.Request) {
	c.setPublished(w, r, false)
}

func (c *AdminCategoriesController) setPublished(w http.ResponseWriter, r *http.Request, published bool) {
	id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	var category any
	if published {
		category, err = c.service.Publish(r.Context(), c.actor(r), id)
	} else {
		category, err = c.service.Unpublish(r.Context(), c.actor(r), id)
	}
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, category)
}

func (c *AdminCategoriesController) actor(r *http.Request) categories.Actor {
	return categories.Actor{
		ID:   middleware.UserIDFromContext(r.Context()),
		Role: middleware.RoleFromContext(r.Context()),
		IP:   middleware.ClientIPFromContext(r.Context()),
	}
}
