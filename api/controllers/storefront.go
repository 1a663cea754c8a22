package controllers

import (
	"net/http"

	"github.com/hamzasiddiqui/bazaarline-backend/api/responses"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/categories"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/products"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/logger"
)

// StorefrontController serves the public catalog. Reads go through the
// in-process cache, so responses may lag a mutation by up to the TTL.
type StorefrontController struct {
	products   products.Service
	categories categories.Service
	logg       *logger.Logger
}

func NewStorefrontController(products products.Service, categories categories.Service, logg *logger.Logger) *StorefrontController {
	return &StorefrontController{products: products, categories: categories, logg: logg}
}

func (c *StorefrontController) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := productFilter(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	result, err := c.products.ListActive(r.Context(), filter)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, result)
}

func (c *StorefrontController) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := c.categories.ListActive(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, cats)
}
