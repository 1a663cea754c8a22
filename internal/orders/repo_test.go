package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/pagination"
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

type orderFixture struct {
	user  *models.User
	addr  *models.Address
	order *models.Order
}

func seedOrder(t *testing.T, gdb *gorm.DB, n int, email, name string, status enums.OrderStatus, payStatus enums.PaymentStatus) orderFixture {
	t.Helper()

	user := &models.User{Email: email, Name: name, Role: enums.RoleCustomer, IsActive: true}
	require.NoError(t, gdb.Create(user).Error)

	addr := &models.Address{UserID: user.ID, FullName: name, Phone: "0300", Line1: "Street 1", City: "Karachi"}
	require.NoError(t, gdb.Create(addr).Error)

	order := &models.Order{
		OrderNumber:   fmt.Sprintf("ORD-2026-%04d", n),
		UserID:        user.ID,
		AddressID:     addr.ID,
		Status:        status,
		PaymentStatus: payStatus,
		Subtotal:      decimal.NewFromInt(500),
		TotalAmount:   decimal.NewFromInt(500),
		Currency:      "PKR",
	}
	require.NoError(t, gdb.Create(order).Error)

	payment := &models.Payment{
		OrderID:        order.ID,
		Method:         enums.MethodCOD,
		Status:         payStatus,
		Amount:         order.TotalAmount,
		Currency:       "PKR",
		CashOnDelivery: true,
	}
	require.NoError(t, gdb.Create(payment).Error)

	return orderFixture{user: user, addr: addr, order: order}
}

func TestListFiltersByStatusAndPayment(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	seedOrder(t, gdb, 1, "a@x.pk", "Aslam", enums.OrderPending, enums.PaymentPending)
	seedOrder(t, gdb, 2, "b@x.pk", "Babar", enums.OrderShipped, enums.PaymentPaid)
	seedOrder(t, gdb, 3, "c@x.pk", "Chand", enums.OrderShipped, enums.PaymentPending)

	page := pagination.Params{Page: 1, PageSize: 10}

	got, total, err := repo.List(ctx, ListFilter{Status: enums.OrderShipped, Pagination: page})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, got, 2)

	got, total, err = repo.List(ctx, ListFilter{
		Status:        enums.OrderShipped,
		PaymentStatus: enums.PaymentPaid,
		Pagination:    page,
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, "ORD-2026-0002", got[0].OrderNumber)
}

func TestListSearchMatchesNumberNameAndEmail(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	seedOrder(t, gdb, 11, "farida@x.pk", "Farida", enums.OrderPending, enums.PaymentPending)
	seedOrder(t, gdb, 22, "ghulam@x.pk", "Ghulam", enums.OrderPending, enums.PaymentPending)

	page := pagination.Params{Page: 1, PageSize: 10}

	got, total, err := repo.List(ctx, ListFilter{Search: "ORD-2026-0011", Pagination: page})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, "ORD-2026-0011", got[0].OrderNumber)

	_, total, err = repo.List(ctx, ListFilter{Search: "farida", Pagination: page})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = repo.List(ctx, ListFilter{Search: "GHULAM@x.pk", Pagination: page})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = repo.List(ctx, ListFilter{Search: "nobody", Pagination: page})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestGetByIDPreloadsGraph(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	fx := seedOrder(t, gdb, 7, "h@x.pk", "Hassan", enums.OrderPending, enums.PaymentPending)

	got, err := repo.GetByID(ctx, fx.order.ID)
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, "h@x.pk", got.User.Email)
	require.NotNil(t, got.Address)
	require.Len(t, got.Payments, 1)
	assert.Equal(t, enums.MethodCOD, got.Payments[0].Method)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.True(t, db.IsNotFound(err))
}

func TestUpdatePaymentStatusStampsPaidAt(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	fx := seedOrder(t, gdb, 9, "i@x.pk", "Iqbal", enums.OrderPending, enums.PaymentPending)

	require.NoError(t, repo.UpdatePaymentStatus(ctx, fx.order.ID, enums.PaymentPaid))

	var payment models.Payment
	require.NoError(t, gdb.Where("order_id = ?", fx.order.ID).First(&payment).Error)
	assert.Equal(t, enums.PaymentPaid, payment.Status)
	assert.NotNil(t, payment.PaidAt)
}
