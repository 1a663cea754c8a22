package checkout

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hamzasiddiqui/bazaarline-backend/internal/products"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/users"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
	pkgerrors "github.com/hamzasiddiqui/bazaarline-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_fk=1"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(db.AllModels()...))
	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func newFixture(t *testing.T) (Service, *gorm.DB, *models.Product) {
	t.Helper()
	gdb := newTestDB(t)

	category := &models.Category{Name: "Shoes", Slug: "shoes", IsActive: true}
	require.NoError(t, gdb.Create(category).Error)

	product := &models.Product{
		Name:       "Runner",
		Slug:       "runner",
		Price:      decimal.NewFromInt(2500),
		Quantity:   50,
		CategoryID: category.ID,
		IsActive:   true,
	}
	require.NoError(t, gdb.Create(product).Error)

	svc := NewService(
		users.NewRepository(gdb),
		products.NewRepository(gdb),
		&db.Client{Gorm: gdb},
		nil,
	)
	return svc, gdb, product
}

func validInput(productID uuid.UUID, qty int) Input {
	return Input{
		Email: "guest@example.pk",
		Name:  "Guest Buyer",
		Address: AddressInput{
			FullName: "Guest Buyer",
			Phone:    "03001234567",
			Line1:    "House 12, Street 4",
			City:     "Lahore",
		},
		Items: []ItemInput{{ProductID: productID, Quantity: qty}},
	}
}

func TestCheckoutCreatesGuestUserAndOrder(t *testing.T) {
	svc, gdb, product := newFixture(t)
	ctx := context.Background()

	res, err := svc.Checkout(ctx, validInput(product.ID, 2))
	require.NoError(t, err)
	require.NotNil(t, res.Order)
	assert.True(t, res.IsGuest)

	order := res.Order
	assert.Regexp(t, regexp.MustCompile(`^ORD-\d{4}-\d{4}$`), order.OrderNumber)
	assert.Equal(t, enums.OrderPending, order.Status)
	assert.Equal(t, enums.PaymentPending, order.PaymentStatus)
	assert.Equal(t, "PKR", order.Currency)
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(5000)))
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(5000)))

	require.Len(t, order.Items, 1)
	assert.Equal(t, "Runner", order.Items[0].ProductName)
	assert.True(t, order.Items[0].Total.Equal(decimal.NewFromInt(5000)))

	require.Len(t, order.Payments, 1)
	assert.Equal(t, enums.MethodCOD, order.Payments[0].Method)
	assert.True(t, order.Payments[0].CashOnDelivery)
	assert.True(t, order.Payments[0].Amount.Equal(order.TotalAmount))

	var user models.User
	require.NoError(t, gdb.Where("email = ?", "guest@example.pk").First(&user).Error)
	assert.Empty(t, user.Password)
	assert.Equal(t, enums.RoleCustomer, user.Role)

	require.NotNil(t, order.Address)
	assert.Equal(t, "PK", order.Address.Country)
}

func TestCheckoutReusesExistingAccount(t *testing.T) {
	svc, gdb, product := newFixture(t)
	ctx := context.Background()

	existing := &models.User{
		Email: "guest@example.pk", Password: "argon-hash", Name: "Registered",
		Role: enums.RoleCustomer, IsActive: true,
	}
	require.NoError(t, gdb.Create(existing).Error)

	res, err := svc.Checkout(ctx, validInput(product.ID, 1))
	require.NoError(t, err)
	assert.False(t, res.IsGuest)
	assert.Equal(t, existing.ID, res.Order.UserID)

	var count int64
	require.NoError(t, gdb.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCheckoutNameFallsBackToEmailLocalPart(t *testing.T) {
	svc, gdb, product := newFixture(t)
	ctx := context.Background()

	input := validInput(product.ID, 1)
	input.Name = ""
	_, err := svc.Checkout(ctx, input)
	require.NoError(t, err)

	var user models.User
	require.NoError(t, gdb.Where("email = ?", "guest@example.pk").First(&user).Error)
	assert.Equal(t, "guest", user.Name)
}

func TestCheckoutFallsBackToCatalogPrice(t *testing.T) {
	svc, _, product := newFixture(t)
	ctx := context.Background()

	// no price submitted: the catalog price is snapshotted instead
	res, err := svc.Checkout(ctx, validInput(product.ID, 3))
	require.NoError(t, err)
	assert.True(t, res.Order.Items[0].UnitPrice.Equal(decimal.NewFromInt(2500)))
	assert.True(t, res.Order.TotalAmount.Equal(decimal.NewFromInt(7500)))
}

func TestCheckoutSubmittedTotalsCarryThroughToPayment(t *testing.T) {
	svc, _, product := newFixture(t)
	ctx := context.Background()

	input := validInput(product.ID, 2)
	input.Items[0].Price = decimal.NewFromInt(10)
	input.TotalAmount = decimal.RequireFromString("21.6")

	res, err := svc.Checkout(ctx, input)
	require.NoError(t, err)

	order := res.Order
	require.Len(t, order.Items, 1)
	// line total is recomputed from the submitted price and quantity
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.NewFromInt(10)))
	assert.True(t, order.Items[0].Total.Equal(decimal.NewFromInt(20)))
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(20)))

	// the order header and the payment carry the submitted total
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("21.6")))
	require.Len(t, order.Payments, 1)
	assert.Equal(t, enums.PaymentPending, order.Payments[0].Status)
	assert.True(t, order.Payments[0].Amount.Equal(decimal.RequireFromString("21.6")))
}

func TestCheckoutRecordsCODNotesOnPayment(t *testing.T) {
	svc, _, product := newFixture(t)
	ctx := context.Background()

	notes := "call before delivery"
	input := validInput(product.ID, 1)
	input.Notes = &notes

	res, err := svc.Checkout(ctx, input)
	require.NoError(t, err)

	require.Len(t, res.Order.Payments, 1)
	payment := res.Order.Payments[0]
	require.NotNil(t, payment.CODNotes)
	assert.Equal(t, notes, *payment.CODNotes)
	require.NotNil(t, res.Order.Notes)
	assert.Equal(t, notes, *res.Order.Notes)
}

func TestCheckoutPaymentMethodDefaultsToCOD(t *testing.T) {
	svc, _, product := newFixture(t)
	ctx := context.Background()

	res, err := svc.Checkout(ctx, validInput(product.ID, 1))
	require.NoError(t, err)
	require.Len(t, res.Order.Payments, 1)
	assert.Equal(t, enums.MethodCOD, res.Order.Payments[0].Method)
	assert.True(t, res.Order.Payments[0].CashOnDelivery)

	input := validInput(product.ID, 1)
	input.PaymentMethod = enums.PaymentMethod("CARD")
	_, err = svc.Checkout(ctx, input)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCheckoutSubmittedSubtotalWinsOverLineSum(t *testing.T) {
	svc, _, product := newFixture(t)
	ctx := context.Background()

	input := validInput(product.ID, 2)
	input.Items[0].Price = decimal.NewFromInt(10)
	input.Subtotal = decimal.RequireFromString("19.5")

	res, err := svc.Checkout(ctx, input)
	require.NoError(t, err)
	// line totals are still recomputed, the header keeps the submitted value
	assert.True(t, res.Order.Items[0].Total.Equal(decimal.NewFromInt(20)))
	assert.True(t, res.Order.Subtotal.Equal(decimal.RequireFromString("19.5")))
}

func TestCheckoutUnknownProduct(t *testing.T) {
	svc, gdb, _ := newFixture(t)
	ctx := context.Background()

	input := validInput(uuid.New(), 1)
	_, err := svc.Checkout(ctx, input)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	// nothing persisted
	var count int64
	require.NoError(t, gdb.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, gdb.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCheckoutInactiveProduct(t *testing.T) {
	svc, gdb, product := newFixture(t)
	ctx := context.Background()

	require.NoError(t, gdb.Model(&models.Product{}).Where("id = ?", product.ID).Update("is_active", false).Error)

	_, err := svc.Checkout(ctx, validInput(product.ID, 1))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCheckoutValidatesInput(t *testing.T) {
	svc, _, product := newFixture(t)
	ctx := context.Background()

	input := validInput(product.ID, 1)
	input.Email = "  "
	_, err := svc.Checkout(ctx, input)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	input = validInput(product.ID, 0)
	_, err = svc.Checkout(ctx, input)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	input = validInput(product.ID, 1)
	input.Items = nil
	_, err = svc.Checkout(ctx, input)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
