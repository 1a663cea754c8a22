package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/hamzasiddiqui/bazaarline-backend/internal/audit"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
	pkgerrors "github.com/hamzasiddiqui/bazaarline-backend/pkg/errors"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/pagination"
)

// Actor identifies the admin performing a mutation, for permission checks
// and the audit trail.
type Actor struct {
	ID   uuid.UUID
	Role enums.UserRole
	IP   string
}

type Service interface {
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*UserView, error)
	Update(ctx context.Context, actor Actor, input UpdateInput) (*UserView, error)
	UpdateRole(ctx context.Context, actor Actor, input UpdateRoleInput) (*UserView, error)
}

type service struct {
	repo     Repository
	recorder *audit.Recorder
}

func NewService(repo Repository, recorder *audit.Recorder) Service {
	return &service{repo: repo, recorder: recorder}
}

func (s *service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing users")
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	counts, err := s.repo.CountOrdersByUser(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting orders")
	}

	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, toView(u, counts[u.ID]))
	}
	return &ListResult{
		Users:      views,
		Pagination: pagination.NewSummary(filter.Pagination, total),
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*UserView, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}

	counts, err := s.repo.CountOrdersByUser(ctx, []uuid.UUID{user.ID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting orders")
	}
	view := toView(*user, counts[user.ID])
	return &view, nil
}

func (s *service) Update(ctx context.Context, actor Actor, input UpdateInput) (*UserView, error) {
	if input.IsActive == nil && input.Role == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	if input.Role != nil && !input.Role.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}

	user, err := s.loadMutable(ctx, actor, input.UserID)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if input.IsActive != nil {
		changes["isActive"] = map[string]any{"from": user.IsActive, "to": *input.IsActive}
		user.IsActive = *input.IsActive
	}
	if input.Role != nil {
		changes["role"] = map[string]any{"from": user.Role, "to": *input.Role}
		user.Role = *input.Role
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating user")
	}

	s.recorder.Async(ctx, audit.Entry{
		ActorID:    &actor.ID,
		Action:     "user.update",
		EntityType: "user",
		EntityID:   &user.ID,
		Changes:    changes,
		IPAddress:  actor.IP,
	})

	view := toView(*user, 0)
	return &view, nil
}

func (s *service) UpdateRole(ctx context.Context, actor Actor, input UpdateRoleInput) (*UserView, error) {
	if !input.Role.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}

	user, err := s.loadMutable(ctx, actor, input.UserID)
	if err != nil {
		return nil, err
	}

	before := user.Role
	user.Role = input.Role
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating user role")
	}

	s.recorder.Async(ctx, audit.Entry{
		ActorID:    &actor.ID,
		Action:     "user.update_role",
		EntityType: "user",
		EntityID:   &user.ID,
		Changes:    map[string]any{"role": map[string]any{"from": before, "to": user.Role}},
		IPAddress:  actor.IP,
	})

	view := toView(*user, 0)
	return &view, nil
}

// loadMutable fetches the target and enforces that admins cannot touch
// super admin accounts.
func (s *service) loadMutable(ctx context.Context, actor Actor, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}

	if user.Role == enums.RoleSuperAdmin && actor.Role != enums.RoleSuperAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot modify a super admin account")
	}
	return user, nil
}
