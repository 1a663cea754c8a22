package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
)

type AddressInput struct {
	FullName   string
	Phone      string
	Line1      string
	Line2      *string
	City       string
	State      *string
	PostalCode *string
	Country    string
}

// ItemInput carries the submitted unit price; the line total is always
// recomputed from price and quantity, never taken from the client.
type ItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Price     decimal.Decimal
}

type Input struct {
	Email          string
	Name           string
	Phone          *string
	Address        AddressInput
	Items          []ItemInput
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	ShippingAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	PaymentMethod  enums.PaymentMethod
	Notes          *string
}

type Result struct {
	Order   *models.Order `json:"order"`
	IsGuest bool          `json:"isGuest"`
}
