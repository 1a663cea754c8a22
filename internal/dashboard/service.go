package dashboard

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	pkgerrors "github.com/hamzasiddiqui/bazaarline-backend/pkg/errors"
)

const (
	recentOrdersLimit = 10
	topProductsLimit  = 5
	lowStockThreshold = 10
)

type Service interface {
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Stats fans the dashboard queries out concurrently and joins top product
// rows against the catalog in memory. Any single query failing aborts the
// whole aggregation.
func (s *service) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	var (
		recent []models.Order
		rows   []TopProductRow
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.Overview.ActiveUsers, err = s.repo.CountActiveUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Overview.ActiveProducts, err = s.repo.CountActiveProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Overview.TotalOrders, err = s.repo.CountOrders(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Overview.PendingOrders, err = s.repo.CountOpenOrders(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Overview.LowStockProducts, err = s.repo.CountLowStockProducts(gctx, lowStockThreshold)
		return err
	})
	g.Go(func() (err error) {
		stats.Overview.TotalRevenue, err = s.repo.PaidRevenue(gctx)
		return err
	})
	g.Go(func() (err error) {
		recent, err = s.repo.RecentOrders(gctx, recentOrdersLimit)
		return err
	})
	g.Go(func() (err error) {
		rows, err = s.repo.TopProductRows(gctx, topProductsLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregating dashboard stats")
	}

	stats.RecentOrders = projectRecentOrders(recent)

	top, err := s.joinTopProducts(ctx, rows)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "joining top products")
	}
	stats.TopProducts = top
	return stats, nil
}

func projectRecentOrders(orders []models.Order) []RecentOrder {
	out := make([]RecentOrder, 0, len(orders))
	for _, o := range orders {
		ro := RecentOrder{
			ID:            o.ID,
			OrderNumber:   o.OrderNumber,
			Status:        o.Status,
			PaymentStatus: o.PaymentStatus,
			TotalAmount:   o.TotalAmount,
			ItemCount:     len(o.Items),
			CreatedAt:     o.CreatedAt,
		}
		if o.User != nil {
			ro.CustomerName = o.User.Name
			ro.CustomerEmail = o.User.Email
		}
		out = append(out, ro)
	}
	return out
}

// joinTopProducts attaches name, price and the primary image to the
// aggregate rows. Rows whose product is missing from the catalog keep
// their numbers with empty detail.
func (s *service) joinTopProducts(ctx context.Context, rows []TopProductRow) ([]TopProduct, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProductID)
	}
	products, err := s.repo.ProductsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	top := make([]TopProduct, 0, len(rows))
	for _, row := range rows {
		entry := TopProduct{
			ProductID:    row.ProductID,
			QuantitySold: row.QuantitySold,
			OrderCount:   row.OrderCount,
		}
		if p, ok := products[row.ProductID]; ok {
			entry.Name = p.Name
			entry.Slug = p.Slug
			entry.Price = p.Price
			if img := p.PrimaryImage(); img != nil {
				entry.ImageURL = &img.URL
			}
		}
		top = append(top, entry)
	}
	return top, nil
}
