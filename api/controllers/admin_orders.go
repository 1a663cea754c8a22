package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hamzasiddiqui/bazaarline-backend/api/middleware"
	"github.com/hamzasiddiqui/bazaarline-backend/api/responses"
	"github.com/hamzasiddiqui/bazaarline-backend/api/validators"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/orders"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/logger"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/pagination"
)

type AdminOrdersController struct {
	service orders.Service
	logg    *logger.Logger
}

func NewAdminOrdersController(service orders.Service, logg *logger.Logger) *AdminOrdersController {
	return &AdminOrdersController{service: service, logg: logg}
}

func (c *AdminOrdersController) List(w http.ResponseWriter, r *http.Request) {
	filter := orders.ListFilter{
		Status:        enums.OrderStatus(validators.ParseQueryString(r, "status")),
		PaymentStatus: enums.PaymentStatus(validators.ParseQueryString(r, "paymentStatus")),
		Search:        validators.ParseQueryString(r, "search"),
		Pagination:    pagination.FromRequest(r),
	}

	result, err := c.service.List(r.Context(), filter)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, result)
}

func (c *AdminOrdersController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	order, err := c.service.Get(r.Context(), id)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, order)
}

type updateOrderRequest struct {
	Status        *enums.OrderStatus   `json:"status" validate:"omitempty,oneof=PENDING CONFIRMED PROCESSING SHIPPED DELIVERED CANCELLED"`
	PaymentStatus *enums.PaymentStatus `json:"paymentStatus" validate:"omitempty,oneof=PENDING PAID FAILED REFUNDED"`
	Notes         *string              `json:"notes"`
}

func (c *AdminOrdersController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	var req updateOrderRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	actor := orders.Actor{
		ID:   middleware.UserIDFromContext(r.Context()),
		Role: middleware.RoleFromContext(r.Context()),
		IP:   middleware.ClientIPFromContext(r.Context()),
	}

	order, err := c.service.Update(r.Context(), actor, orders.UpdateInput{
		OrderID:       id,
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		Notes:         req.Notes,
	})
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteMessage(w, order, "order updated")
}
