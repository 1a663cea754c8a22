package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hamzasiddiqui/bazaarline-backend/internal/audit"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
	pkgerrors "github.com/hamzasiddiqui/bazaarline-backend/pkg/errors"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/pagination"
)

func newServiceFixture(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	gdb := newTestDB(t)
	client := &db.Client{Gorm: gdb}
	recorder := audit.NewRecorder(audit.NewRepository(gdb), nil)
	return NewService(NewRepository(gdb), client, recorder), gdb
}

func orderStatus(s enums.OrderStatus) *enums.OrderStatus       { return &s }
func paymentStatus(s enums.PaymentStatus) *enums.PaymentStatus { return &s }

func TestUpdateRejectsEmptyInput(t *testing.T) {
	svc, gdb := newServiceFixture(t)
	fx := seedOrder(t, gdb, 1, "a@x.pk", "Aslam", enums.OrderPending, enums.PaymentPending)

	_, err := svc.Update(context.Background(), Actor{}, UpdateInput{OrderID: fx.order.ID})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	svc, gdb := newServiceFixture(t)
	fx := seedOrder(t, gdb, 2, "b@x.pk", "Babar", enums.OrderPending, enums.PaymentPending)

	bad := enums.OrderStatus("LOST")
	_, err := svc.Update(context.Background(), Actor{}, UpdateInput{OrderID: fx.order.ID, Status: &bad})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateStatusOnly(t *testing.T) {
	svc, gdb := newServiceFixture(t)
	fx := seedOrder(t, gdb, 3, "c@x.pk", "Chand", enums.OrderPending, enums.PaymentPending)

	updated, err := svc.Update(context.Background(), Actor{}, UpdateInput{
		OrderID: fx.order.ID,
		Status:  orderStatus(enums.OrderConfirmed),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderConfirmed, updated.Status)
	// untouched fields survive
	assert.Equal(t, enums.PaymentPending, updated.PaymentStatus)
	assert.Nil(t, updated.Notes)
}

func TestUpdatePaymentStatusCascadesToPayment(t *testing.T) {
	svc, gdb := newServiceFixture(t)
	fx := seedOrder(t, gdb, 4, "d@x.pk", "Dawood", enums.OrderDelivered, enums.PaymentPending)

	updated, err := svc.Update(context.Background(), Actor{}, UpdateInput{
		OrderID:       fx.order.ID,
		PaymentStatus: paymentStatus(enums.PaymentPaid),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentPaid, updated.PaymentStatus)
	require.Len(t, updated.Payments, 1)
	assert.Equal(t, enums.PaymentPaid, updated.Payments[0].Status)
	assert.NotNil(t, updated.Payments[0].PaidAt)
}

func TestUpdateNotes(t *testing.T) {
	svc, gdb := newServiceFixture(t)
	fx := seedOrder(t, gdb, 5, "e@x.pk", "Ejaz", enums.OrderPending, enums.PaymentPending)

	notes := "customer asked for evening delivery"
	updated, err := svc.Update(context.Background(), Actor{}, UpdateInput{OrderID: fx.order.ID, Notes: &notes})
	require.NoError(t, err)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, notes, *updated.Notes)
}

func TestGetNotFound(t *testing.T) {
	svc, _ := newServiceFixture(t)

	_, err := svc.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListValidatesStatuses(t *testing.T) {
	svc, _ := newServiceFixture(t)

	_, err := svc.List(context.Background(), ListFilter{
		Status:     enums.OrderStatus("LOST"),
		Pagination: pagination.Params{Page: 1, PageSize: 10},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestListReturnsSummary(t *testing.T) {
	svc, gdb := newServiceFixture(t)
	for i := 0; i < 12; i++ {
		seedOrder(t, gdb, 100+i, "u"+string(rune('a'+i))+"@x.pk", "User", enums.OrderPending, enums.PaymentPending)
	}

	res, err := svc.List(context.Background(), ListFilter{Pagination: pagination.Params{Page: 1, PageSize: 10}})
	require.NoError(t, err)
	assert.Len(t, res.Orders, 10)
	assert.EqualValues(t, 12, res.Pagination.TotalCount)
	assert.Equal(t, 2, res.Pagination.TotalPages)
	assert.True(t, res.Pagination.HasNextPage)
}
