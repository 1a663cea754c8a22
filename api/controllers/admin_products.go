package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamzasiddiqui/bazaarline-backend/api/middleware"
	"github.com/hamzasiddiqui/bazaarline-backend/api/responses"
	"github.com/hamzasiddiqui/bazaarline-backend/api/validators"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/products"
	pkgerrors "github.com/hamzasiddiqui/bazaarline-backend/pkg/errors"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/logger"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/pagination"
)

type AdminProductsController struct {
	service products.Service
	logg    *logger.Logger
}

func NewAdminProductsController(service products.Service, logg *logger.Logger) *AdminProductsController {
	return &AdminProductsController{service: service, logg: logg}
}

func (c *AdminProductsController) List(w http.ResponseWriter, r *http.Request) {
	filter, err := productFilter(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	result, err := c.service.List(r.Context(), filter)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, result)
}

func productFilter(r *http.Request) (products.ListFilter, error) {
	filter := products.ListFilter{
		Search:     validators.ParseQueryString(r, "search"),
		Pagination: pagination.FromRequest(r),
	}

	if raw := validators.ParseQueryString(r, "categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "invalid category id")
		}
		filter.CategoryID = id
	}

	isActive, err := validators.ParseQueryBool(r, "isActive")
	if err != nil {
		return filter, err
	}
	filter.IsActive = isActive

	isFeatured, err := validators.ParseQueryBool(r, "isFeatured")
	if err != nil {
		return filter, err
	}
	filter.IsFeatured = isFeatured

	isPublished, err := validators.ParseQueryBool(r, "isPublished")
	if err != nil {
		return filter, err
	}
	filter.IsPublished = isPublished

	return filter, nil
}

func (c *AdminProductsController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	product, err := c.service.Get(r.Context(), id)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, product)
}

type productImageRequest struct {
	URL     string  `json:"url" validate:"required,url"`
	AltText *string `json:"altText"`
}

type createProductRequest struct {
	Name             string                `json:"name" validate:"required,min=2"`
	Slug             string                `json:"slug" validate:"required,min=2"`
	Description      *string               `json:"description"`
	ShortDescription *string               `json:"shortDescription"`
	Price            decimal.Decimal       `json:"price" validate:"required"`
	ComparePrice     *decimal.Decimal      `json:"comparePrice"`
	CostPrice        *decimal.Decimal      `json:"costPrice"`
	SKU              *string               `json:"sku"`
	Quantity         int                   `json:"quantity" validate:"min=0"`
	TrackQuantity    *bool                 `json:"trackQuantity"`
	MinQuantity      int                   `json:"minQuantity" validate:"min=0"`
	Weight           *decimal.Decimal      `json:"weight"`
	Dimensions       *string               `json:"dimensions"`
	Tags             []string              `json:"tags"`
	MetaTitle        *string               `json:"metaTitle"`
	MetaDescription  *string               `json:"metaDescription"`
	CategoryID       uuid.UUID             `json:"categoryId" validate:"required"`
	IsFeatured       bool                  `json:"isFeatured"`
	Images           []productImageRequest `json:"images" validate:"omitempty,dive"`
}

func (c *AdminProductsController) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	// inventory tracking is on unless the request opts out
	trackQuantity := true
	if req.TrackQuantity != nil {
		trackQuantity = *req.TrackQuantity
	}

	product, err := c.service.Create(r.Context(), c.actor(r), products.CreateInput{
		Name:             req.Name,
		Slug:             req.Slug,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Price:            req.Price,
		ComparePrice:     req.ComparePrice,
		CostPrice:        req.CostPrice,
		SKU:              req.SKU,
		Quantity:         req.Quantity,
		TrackQuantity:    trackQuantity,
		MinQuantity:      req.MinQuantity,
		Weight:           req.Weight,
		Dimensions:       req.Dimensions,
		Tags:             req.Tags,
		MetaTitle:        req.MetaTitle,
		MetaDescription:  req.MetaDescription,
		CategoryID:       req.CategoryID,
		IsFeatured:       req.IsFeatured,
		Images:           imageInputs(req.Images),
	})
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteCreated(w, product)
}

type updateProductRequest struct {
	Name             *string                `json:"name" validate:"omitempty,min=2"`
	Slug             *string                `json:"slug" validate:"omitempty,min=2"`
	Description      *string                `json:"description"`
	ShortDescription *string                `json:"shortDescription"`
	Price            *decimal.Decimal       `json:"price"`
	ComparePrice     *decimal.Decimal       `json:"comparePrice"`
	CostPrice        *decimal.Decimal       `json:"costPrice"`
	SKU              *string                `json:"sku"`
	Quantity         *int                   `json:"quantity" validate:"omitempty,min=0"`
	TrackQuantity    *bool                  `json:"trackQuantity"`
	MinQuantity      *int                   `json:"minQuantity" validate:"omitempty,min=0"`
	Weight           *decimal.Decimal       `json:"weight"`
	Dimensions       *string                `json:"dimensions"`
	Tags             *[]string              `json:"tags"`
	MetaTitle        *string                `json:"metaTitle"`
	MetaDescription  *string                `json:"metaDescription"`
	CategoryID       *uuid.UUID             `json:"categoryId"`
	IsFeatured       *bool                  `json:"isFeatured"`
	Images           *[]productImageRequest `json:"images" validate:"omitempty,dive"`
}

func (c *AdminProductsController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	var req updateProductRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	input := products.UpdateInput{
		ProductID:        id,
		Name:             req.Name,
		Slug:             req.Slug,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Price:            req.Price,
		ComparePrice:     req.ComparePrice,
		CostPrice:        req.CostPrice,
		SKU:              req.SKU,
		Quantity:         req.Quantity,
		TrackQuantity:    req.TrackQuantity,
		MinQuantity:      req.MinQuantity,
		Weight:           req.Weight,
		Dimensions:       req.Dimensions,
		MetaTitle:        req.MetaTitle,
		MetaDescription:  req.MetaDescription,
		CategoryID:       req.CategoryID,
		IsFeatured:       req.IsFeatured,
	}
	if req.Tags != nil {
		input.TagsSet = true
		input.Tags = *req.Tags
	}
	// absent images key leaves the gallery untouched, [] deletes it
	if req.Images != nil {
		input.ImagesSet = true
		input.Images = imageInputs(*req.Images)
	}

	product, err := c.service.Update(r.Context(), c.actor(r), input)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteMessage(w, product, "product updated")
}

func (c *AdminProductsController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	if err := c.service.Delete(r.Context(), c.actor(r), id); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteMessage(w, nil, "product deleted")
}

func (c *AdminProductsController) Publish(w http.ResponseWriter, r *http.Request) {
	c.setPublished(w, r, true)
}

func (c *AdminProductsController) Unpublish(w http.ResponseWriter, r *http.Request) {
	c.setPublished(w, r, false)
}

func (c *AdminProductsController) setPublished(w http.ResponseWriter, r *http.Request, published bool) {
	id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	var product any
	if published {
		product, err = c.service.Publish(r.Context(), c.actor(r), id)
	} else {
		product, err = c.service.Unpublish(r.Context(), c.actor(r), id)
	}
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, product)
}

func (c *AdminProductsController) actor(r *http.Request) products.Actor {
	return products.Actor{
		ID:   middleware.UserIDFromContext(r.Context()),
		Role: middleware.RoleFromContext(r.Context()),
		IP:   middleware.ClientIPFromContext(r.Context()),
	}
}

func imageInputs(reqs []productImageRequest) []products.ImageInput {
	out := make([]products.ImageInput, 0, len(reqs))
	for _, img := range reqs {
		out = append(out, products.ImageInput{URL: img.URL, AltText: img.AltText})
	}
	return out
}
