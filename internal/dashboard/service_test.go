package dashboard

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// no FK constraints here so tests can simulate catalog rows missing
	// underneath existing order items
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
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

type fixture struct {
	gdb     *gorm.DB
	cat     *models.Category
	buyer   *models.User
	addr    *models.Address
	counter int
}

func newSeed(t *testing.T, gdb *gorm.DB) *fixture {
	t.Helper()
	cat := &models.Category{Name: "Shoes", Slug: "shoes", IsActive: true}
	require.NoError(t, gdb.Create(cat).Error)

	buyer := &models.User{Email: "buyer@x.pk", Name: "Buyer", Role: enums.RoleCustomer, IsActive: true}
	require.NoError(t, gdb.Create(buyer).Error)

	addr := &models.Address{UserID: buyer.ID, FullName: "Buyer", Phone: "0300", Line1: "St 1", City: "Lahore"}
	require.NoError(t, gdb.Create(addr).Error)

	return &fixture{gdb: gdb, cat: cat, buyer: buyer, addr: addr}
}

func (f *fixture) product(t *testing.T, name string, qty int) *models.Product {
	t.Helper()
	f.counter++
	p := &models.Product{
		Name: name, Slug: fmt.Sprintf("%s-%d", name, f.counter),
		Price: decimal.NewFromInt(1000), Quantity: qty, TrackQuantity: true,
		CategoryID: f.cat.ID, IsActive: true,
	}
	require.NoError(t, f.gdb.Create(p).Error)
	return p
}

func (f *fixture) order(t *testing.T, status enums.OrderStatus, payStatus enums.PaymentStatus, total int64, items ...models.OrderItem) *models.Order {
	t.Helper()
	f.counter++
	o := &models.Order{
		OrderNumber:   fmt.Sprintf("ORD-2026-%04d", f.counter),
		UserID:        f.buyer.ID,
		AddressID:     f.addr.ID,
		Status:        status,
		PaymentStatus: payStatus,
		Subtotal:      decimal.NewFromInt(total),
		TotalAmount:   decimal.NewFromInt(total),
		Currency:      "PKR",
	}
	require.NoError(t, f.gdb.Create(o).Error)
	for i := range items {
		items[i].OrderID = o.ID
		require.NoError(t, f.gdb.Create(&items[i]).Error)
	}
	return o
}

func item(p *models.Product, qty int) models.OrderItem {
	unit := p.Price
	return models.OrderItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		UnitPrice:   unit,
		Quantity:    qty,
		Total:       unit.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func TestStatsEmptyDatabase(t *testing.T) {
	svc := NewService(NewRepository(newTestDB(t)))

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.Overview.TotalOrders)
	assert.True(t, stats.Overview.TotalRevenue.IsZero())
	assert.Empty(t, stats.RecentOrders)
	assert.Empty(t, stats.TopProducts)
}

func TestStatsAggregates(t *testing.T) {
	gdb := newTestDB(t)
	f := newSeed(t, gdb)
	svc := NewService(NewRepository(gdb))

	runner := f.product(t, "runner", 50)
	sandal := f.product(t, "sandal", 2)

	f.order(t, enums.OrderDelivered, enums.PaymentPaid, 3000, item(runner, 3))
	f.order(t, enums.OrderPending, enums.PaymentPending, 1000, item(runner, 1))
	f.order(t, enums.OrderConfirmed, enums.PaymentPending, 500, item(sandal, 1))
	f.order(t, enums.OrderShipped, enums.PaymentPaid, 2000, item(sandal, 2))

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 4, stats.Overview.TotalOrders)
	// pending covers CONFIRMED too, not just PENDING
	assert.EqualValues(t, 2, stats.Overview.PendingOrders)
	assert.EqualValues(t, 1, stats.Overview.ActiveUsers)
	assert.EqualValues(t, 2, stats.Overview.ActiveProducts)
	assert.EqualValues(t, 1, stats.Overview.LowStockProducts)
	// unpaid orders never count toward revenue
	assert.True(t, stats.Overview.TotalRevenue.Equal(decimal.NewFromInt(5000)), stats.Overview.TotalRevenue.String())

	require.Len(t, stats.RecentOrders, 4)
	assert.Equal(t, "Buyer", stats.RecentOrders[0].CustomerName)
	assert.Equal(t, "buyer@x.pk", stats.RecentOrders[0].CustomerEmail)
	assert.Equal(t, 1, stats.RecentOrders[0].ItemCount)

	require.Len(t, stats.TopProducts, 2)
	assert.Equal(t, runner.ID, stats.TopProducts[0].ProductID)
	assert.EqualValues(t, 4, stats.TopProducts[0].QuantitySold)
	assert.EqualValues(t, 2, stats.TopProducts[0].OrderCount)
	assert.Equal(t, "runner", stats.TopProducts[0].Name)
	assert.True(t, stats.TopProducts[0].Price.Equal(decimal.NewFromInt(1000)))
}

func TestStatsLowStockIgnoresUntrackedProducts(t *testing.T) {
	gdb := newTestDB(t)
	f := newSeed(t, gdb)
	svc := NewService(NewRepository(gdb))

	f.product(t, "tracked-low", 3)
	untracked := f.product(t, "untracked-low", 3)
	require.NoError(t, gdb.Model(&models.Product{}).
		Where("id = ?", untracked.ID).
		Update("track_quantity", false).Error)
	f.product(t, "tracked-high", 40)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Overview.LowStockProducts)
}

func TestStatsRecentOrdersCap(t *testing.T) {
	gdb := newTestDB(t)
	f := newSeed(t, gdb)
	svc := NewService(NewRepository(gdb))

	runner := f.product(t, "runner", 50)
	for i := 0; i < recentOrdersLimit+2; i++ {
		f.order(t, enums.OrderPending, enums.PaymentPending, 1000, item(runner, 1))
	}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Len(t, stats.RecentOrders, recentOrdersLimit)
}

func TestStatsTopProductsPrimaryImage(t *testing.T) {
	gdb := newTestDB(t)
	f := newSeed(t, gdb)
	svc := NewService(NewRepository(gdb))

	runner := f.product(t, "runner", 50)
	require.NoError(t, gdb.Create(&models.ProductImage{
		ProductID: runner.ID, URL: "https://cdn.x/side.jpg", SortOrder: 1,
	}).Error)
	require.NoError(t, gdb.Create(&models.ProductImage{
		ProductID: runner.ID, URL: "https://cdn.x/front.jpg", IsPrimary: true, SortOrder: 0,
	}).Error)

	f.order(t, enums.OrderDelivered, enums.PaymentPaid, 2000, item(runner, 2))

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats.TopProducts, 1)
	require.NotNil(t, stats.TopProducts[0].ImageURL)
	assert.Equal(t, "https://cdn.x/front.jpg", *stats.TopProducts[0].ImageURL)
}

func TestStatsTopProductsSurviveMissingProduct(t *testing.T) {
	gdb := newTestDB(t)
	f := newSeed(t, gdb)
	svc := NewService(NewRepository(gdb))

	runner := f.product(t, "runner", 50)
	f.order(t, enums.OrderDelivered, enums.PaymentPaid, 2000, item(runner, 2))

	require.NoError(t, gdb.Where("id = ?", runner.ID).Delete(&models.Product{}).Error)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats.TopProducts, 1)
	assert.Equal(t, runner.ID, stats.TopProducts[0].ProductID)
	assert.EqualValues(t, 2, stats.TopProducts[0].QuantitySold)
	// detail lookup misses once the row is gone, numbers stay
	assert.Empty(t, stats.TopProducts[0].Name)
	assert.Nil(t, stats.TopProducts[0].ImageURL)
}
