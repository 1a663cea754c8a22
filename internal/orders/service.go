package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hamzasiddiqui/bazaarline-backend/internal/audit"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
	pkgerrors "github.com/hamzasiddiqui/bazaarline-backend/pkg/errors"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type Actor struct {
	ID   uuid.UUID
	Role enums.UserRole
	IP   string
}

type Service interface {
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Update(ctx context.Context, actor Actor, input UpdateInput) (*models.Order, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	recorder *audit.Recorder
}

func NewService(repo Repository, tx txRunner, recorder *audit.Recorder) Service {
	return &service{repo: repo, tx: tx, recorder: recorder}
}

func (s *service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	if filter.PaymentStatus != "" && !filter.PaymentStatus.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
	}

	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	return &ListResult{
		Orders:     orders,
		Pagination: pagination.NewSummary(filter.Pagination, total),
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	return order, nil
}

func (s *service) Update(ctx context.Context, actor Actor, input UpdateInput) (*models.Order, error) {
	if input.empty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}
	if input.Status != nil && !input.Status.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	if input.PaymentStatus != nil && !input.PaymentStatus.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
	}

	order, err := s.Get(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if input.Status != nil && *input.Status != order.Status {
			changes["status"] = map[string]any{"from": order.Status, "to": *input.Status}
			order.Status = *input.Status
		}
		if input.Notes != nil {
			changes["notes"] = map[string]any{"to": *input.Notes}
			order.Notes = input.Notes
		}
		if input.PaymentStatus != nil && *input.PaymentStatus != order.PaymentStatus {
			changes["paymentStatus"] = map[string]any{"from": order.PaymentStatus, "to": *input.PaymentStatus}
			order.PaymentStatus = *input.PaymentStatus
			if err := repo.UpdatePaymentStatus(ctx, order.ID, *input.PaymentStatus); err != nil {
				return err
			}
		}

		return repo.Update(ctx, order)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order")
	}

	if len(changes) > 0 {
		s.recorder.Async(ctx, audit.Entry{
			ActorID:    &actor.ID,
			Action:     "order.update",
			EntityType: "order",
			EntityID:   &order.ID,
			Changes:    changes,
			IPAddress:  actor.IP,
		})
	}

	return s.Get(ctx, order.ID)
}
