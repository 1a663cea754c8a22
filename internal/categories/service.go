package categories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hamzasiddiqui/bazaarline-backend/internal/audit"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/cache"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
	pkgerrors "github.com/hamzasiddiqui/bazaarline-backend/pkg/errors"
)

const activeListKey = cache.PrefixCategories + "active"

type Actor struct {
	ID   uuid.UUID
	Role enums.UserRole
	IP   string
}

type Service interface {
	List(ctx context.Context) ([]models.Category, error)
	ListActive(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, actor Actor, input CreateInput) (*models.Category, error)
	Update(ctx context.Context, actor Actor, input UpdateInput) (*models.Category, error)
	Publish(ctx context.Context, actor Actor, id uuid.UUID) (*models.Category, error)
	Unpublish(ctx context.Context, actor Actor, id uuid.UUID) (*models.Category, error)
}

type service struct {
	repo     Repository
	store    cache.Store
	recorder *audit.Recorder
	now      func() time.Time
}

func NewService(repo Repository, store cache.Store, recorder *audit.Recorder) Service {
	return &service{repo: repo, store: store, recorder: recorder, now: time.Now}
}

func (s *service) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing categories")
	}
	return categories, nil
}

// ListActive serves the storefront's category menu through the cache,
// treating entries older than the category window as misses.
func (s *service) ListActive(ctx context.Context) ([]models.Category, error) {
	if entry, ok := s.store.Get(activeListKey); ok && entry.Fresh(cache.TTLCategories, s.now()) {
		if cached, ok := entry.Value.([]models.Category); ok {
			return cached, nil
		}
	}

	categories, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing active categories")
	}
	s.store.Set(activeListKey, categories)
	return categories, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading category")
	}
	return category, nil
}

func (s *service) Create(ctx context.Context, actor Actor, input CreateInput) (*models.Category, error) {
	category := &models.Category{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}

	created, err := s.repo.Create(ctx, category)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a category with this slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating category")
	}

	s.invalidate()
	s.audit(ctx, actor, "category.create", created.ID, map[string]any{"name": created.Name})
	return created, nil
}

func (s *service) Update(ctx context.Context, actor Actor, input UpdateInput) (*models.Category, error) {
	category, err := s.Get(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if input.Name != nil {
		changes["name"] = *input.Name
		category.Name = *input.Name
	}
	if input.Slug != nil {
		changes["slug"] = *input.Slug
		category.Slug = *input.Slug
	}
	if input.Description != nil {
		category.Description = input.Description
	}
	if input.ImageURL != nil {
		category.ImageURL = input.ImageURL
	}
	if input.SortOrder != nil {
		changes["sortOrder"] = *input.SortOrder
		category.SortOrder = *input.SortOrder
	}

	if err := s.repo.Update(ctx, category); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a category with this slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating category")
	}

	s.invalidate()
	s.audit(ctx, actor, "category.update", category.ID, changes)
	return category, nil
}

func (s *service) Publish(ctx context.Context, actor Actor, id uuid.UUID) (*models.Category, error) {
	return s.setPublished(ctx, actor, id, true)
}

func (s *service) Unpublish(ctx context.Context, actor Actor, id uuid.UUID) (*models.Category, error) {
	return s.setPublished(ctx, actor, id, false)
}

// setPublished stamps who/when on publish and clears both on unpublish.
func (s *service) setPublished(ctx context.Context, actor Actor, id uuid.UUID, published bool) (*models.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	category.IsPublished = published
	action := "category.unpublish"
	if published {
		now := s.now()
		category.PublishedAt = &now
		category.PublishedBy = &actor.ID
		action = "category.publish"
	} else {
		category.PublishedAt = nil
		category.PublishedBy = nil
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating category")
	}

	s.invalidate()
	s.audit(ctx, actor, action, category.ID, map[string]any{"isPublished": published})
	return category, nil
}

// invalidate clears both menus: category visibility changes what product
// listings show too.
func (s *service) invalidate() {
	s.store.ClearPrefix(cache.PrefixCategories)
	s.store.ClearPrefix(cache.PrefixProducts)
}

func (s *service) audit(ctx context.Context, actor Actor, action string, entityID uuid.UUID, changes map[string]any) {
	s.recorder.Async(ctx, audit.Entry{
		ActorID:    &actor.ID,
		Action:     action,
		EntityType: "category",
		EntityID:   &entityID,
		Changes:    changes,
		IPAddress:  actor.IP,
	})
}
