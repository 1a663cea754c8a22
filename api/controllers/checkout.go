package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamzasiddiqui/bazaarline-backend/api/responses"
	"github.com/hamzasiddiqui/bazaarline-backend/api/validators"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/checkout"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/logger"
)

type CheckoutController struct {
	service checkout.Service
	logg    *logger.Logger
}

func NewCheckoutController(service checkout.Service, logg *logger.Logger) *CheckoutController {
	return &CheckoutController{service: service, logg: logg}
}

// checkoutAddressRequest is entirely optional; missing fields are stored
// as empty strings and country falls back server-side.
type checkoutAddressRequest struct {
	FullName   string  `json:"fullName"`
	Phone      string  `json:"phone"`
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2"`
	City       string  `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postalCode"`
	Country    string  `json:"country"`
}

type checkoutItemRequest struct {
	ProductID uuid.UUID       `json:"productId" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	Price     decimal.Decimal `json:"price"`
}

type checkoutRequest struct {
	Email          string                 `json:"email" validate:"required,email"`
	Name           string                 `json:"name"`
	Phone          *string                `json:"phone"`
	Address        checkoutAddressRequest `json:"address"`
	Items          []checkoutItemRequest  `json:"items" validate:"required,min=1,dive"`
	Subtotal       decimal.Decimal        `json:"subtotal"`
	TaxAmount      decimal.Decimal        `json:"taxAmount"`
	ShippingAmount decimal.Decimal        `json:"shippingAmount"`
	TotalAmount    decimal.Decimal        `json:"totalAmount"`
	PaymentMethod  string                 `json:"paymentMethod" validate:"omitempty,oneof=COD"`
	Notes          *string                `json:"notes"`
}

func (c *CheckoutController) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	input := checkout.Input{
		Email:          req.Email,
		Name:           req.Name,
		Phone:          req.Phone,
		Subtotal:       req.Subtotal,
		TaxAmount:      req.TaxAmount,
		ShippingAmount: req.ShippingAmount,
		TotalAmount:    req.TotalAmount,
		PaymentMethod:  enums.PaymentMethod(req.PaymentMethod),
		Notes:          req.Notes,
		Address: checkout.AddressInput{
			FullName:   req.Address.FullName,
			Phone:      req.Address.Phone,
			Line1:      req.Address.Line1,
			Line2:      req.Address.Line2,
			City:       req.Address.City,
			State:      req.Address.State,
			PostalCode: req.Address.PostalCode,
			Country:    req.Address.Country,
		},
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, checkout.ItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	result, err := c.service.Checkout(r.Context(), input)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	responses.WriteCreated(w, result)
}
