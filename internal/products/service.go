package products

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hamzasiddiqui/bazaarline-backend/internal/audit"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/cache"
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
	ListActive(ctx context.Context, filter ListFilter) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, actor Actor, input CreateInput) (*models.Product, error)
	Update(ctx context.Context, actor Actor, input UpdateInput) (*models.Product, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	Publish(ctx context.Context, actor Actor, id uuid.UUID) (*models.Product, error)
	Unpublish(ctx context.Context, actor Actor, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	store    cache.Store
	recorder *audit.Recorder
	now      func() time.Time
}

func NewService(repo Repository, tx txRunner, store cache.Store, recorder *audit.Recorder) Service {
	return &service{repo: repo, tx: tx, store: store, recorder: recorder, now: time.Now}
}

func (s *service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	return &ListResult{
		Products:   products,
		Pagination: pagination.NewSummary(filter.Pagination, total),
	}, nil
}

// ListActive serves the storefront catalog through the cache, keyed by the
// filter, treating entries older than the product window as misses.
func (s *service) ListActive(ctx context.Context, filter ListFilter) (*ListResult, error) {
	key := activeListKey(filter)
	if entry, ok := s.store.Get(key); ok && entry.Fresh(cache.TTLProducts, s.now()) {
		if cached, ok := entry.Value.(*ListResult); ok {
			return cached, nil
		}
	}

	products, total, err := s.repo.ListActive(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing active products")
	}
	result := &ListResult{
		Products:   products,
		Pagination: pagination.NewSummary(filter.Pagination, total),
	}
	s.store.Set(key, result)
	return result, nil
}

func activeListKey(filter ListFilter) string {
	featured := ""
	if filter.IsFeatured != nil {
		featured = fmt.Sprintf("%t", *filter.IsFeatured)
	}
	return fmt.Sprintf("%slist:%s:%s:%s:%d:%d",
		cache.PrefixProducts,
		filter.CategoryID, featured, filter.Search,
		filter.Pagination.Page, filter.Pagination.PageSize)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return product, nil
}

func (s *service) Create(ctx context.Context, actor Actor, input CreateInput) (*models.Product, error) {
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	product := &models.Product{
		Name:             input.Name,
		Slug:             input.Slug,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		Price:            input.Price,
		ComparePrice:     input.ComparePrice,
		CostPrice:        input.CostPrice,
		SKU:              input.SKU,
		Quantity:         input.Quantity,
		TrackQuantity:    input.TrackQuantity,
		MinQuantity:      input.MinQuantity,
		Weight:           input.Weight,
		Dimensions:       input.Dimensions,
		Tags:             input.Tags,
		MetaTitle:        input.MetaTitle,
		MetaDescription:  input.MetaDescription,
		CategoryID:       input.CategoryID,
		IsActive:         true,
		IsFeatured:       input.IsFeatured,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		created, err := repo.Create(ctx, product)
		if err != nil {
			return err
		}
		if len(input.Images) > 0 {
			return repo.ReplaceImages(ctx, created.ID, buildImages(input.Images))
		}
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a product with this slug or sku already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}

	s.store.ClearPrefix(cache.PrefixProducts)
	s.audit(ctx, actor, "product.create", product.ID, map[string]any{"name": product.Name})
	return s.Get(ctx, product.ID)
}

func (s *service) Update(ctx context.Context, actor Actor, input UpdateInput) (*models.Product, error) {
	product, err := s.Get(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if input.Name != nil {
		changes["name"] = *input.Name
		product.Name = *input.Name
	}
	if input.Slug != nil {
		changes["slug"] = *input.Slug
		product.Slug = *input.Slug
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.ShortDescription != nil {
		product.ShortDescription = input.ShortDescription
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		changes["price"] = input.Price.String()
		product.Price = *input.Price
	}
	if input.ComparePrice != nil {
		product.ComparePrice = input.ComparePrice
	}
	if input.CostPrice != nil {
		product.CostPrice = input.CostPrice
	}
	if input.SKU != nil {
		changes["sku"] = *input.SKU
		product.SKU = input.SKU
	}
	if input.Quantity != nil {
		changes["quantity"] = *input.Quantity
		product.Quantity = *input.Quantity
	}
	if input.TrackQuantity != nil {
		changes["trackQuantity"] = *input.TrackQuantity
		product.TrackQuantity = *input.TrackQuantity
	}
	if input.MinQuantity != nil {
		changes["minQuantity"] = *input.MinQuantity
		product.MinQuantity = *input.MinQuantity
	}
	if input.Weight != nil {
		product.Weight = input.Weight
	}
	if input.Dimensions != nil {
		product.Dimensions = input.Dimensions
	}
	if input.TagsSet {
		changes["tags"] = input.Tags
		product.Tags = input.Tags
	}
	if input.MetaTitle != nil {
		product.MetaTitle = input.MetaTitle
	}
	if input.MetaDescription != nil {
		product.MetaDescription = input.MetaDescription
	}
	if input.CategoryID != nil {
		changes["categoryId"] = input.CategoryID.String()
		product.CategoryID = *input.CategoryID
	}
	if input.IsFeatured != nil {
		changes["isFeatured"] = *input.IsFeatured
		product.IsFeatured = *input.IsFeatured
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Update(ctx, product); err != nil {
			return err
		}
		if input.ImagesSet {
			changes["images"] = len(input.Images)
			return repo.ReplaceImages(ctx, product.ID, buildImages(input.Images))
		}
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a product with this slug or sku already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating product")
	}

	s.store.ClearPrefix(cache.PrefixProducts)
	s.audit(ctx, actor, "product.update", product.ID, changes)
	return s.Get(ctx, product.ID)
}

func (s *service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivating product")
	}

	s.store.ClearPrefix(cache.PrefixProducts)
	s.audit(ctx, actor, "product.delete", id, map[string]any{"isActive": false})
	return nil
}

func (s *service) Publish(ctx context.Context, actor Actor, id uuid.UUID) (*models.Product, error) {
	return s.setPublished(ctx, actor, id, true)
}

func (s *service) Unpublish(ctx context.Context, actor Actor, id uuid.UUID) (*models.Product, error) {
	return s.setPublished(ctx, actor, id, false)
}

// setPublished stamps who/when on publish and clears both on unpublish.
func (s *service) setPublished(ctx context.Context, actor Actor, id uuid.UUID, published bool) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	product.IsPublished = published
	action := "product.unpublish"
	if published {
		now := s.now()
		product.PublishedAt = &now
		product.PublishedBy = &actor.ID
		action = "product.publish"
	} else {
		product.PublishedAt = nil
		product.PublishedBy = nil
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating product")
	}

	s.store.ClearPrefix(cache.PrefixProducts)
	s.audit(ctx, actor, action, product.ID, map[string]any{"isPublished": published})
	return s.Get(ctx, product.ID)
}

// buildImages maps inputs to rows, first image primary.
func buildImages(inputs []ImageInput) []models.ProductImage {
	images := make([]models.ProductImage, 0, len(inputs))
	for i, in := range inputs {
		images = append(images, models.ProductImage{
			URL:       in.URL,
			AltText:   in.AltText,
			IsPrimary: i == 0,
			SortOrder: i,
		})
	}
	return images
}

func (s *service) audit(ctx context.Context, actor Actor, action string, entityID uuid.UUID, changes map[string]any) {
	s.recorder.Async(ctx, audit.Entry{
		ActorID:    &actor.ID,
		Action:     action,
		EntityType: "product",
		EntityID:   &entityID,
		Changes:    changes,
		IPAddress:  actor.IP,
	})
}
