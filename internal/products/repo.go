package products

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Product, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.Product{}), filter)
}

func (r *repository) ListActive(ctx context.Context, filter ListFilter) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("products.is_active = ?", true)
	return r.list(ctx, query, filter)
}

func (r *repository) list(ctx context.Context, query *gorm.DB, filter ListFilter) ([]models.Product, int64, error) {
	if filter.CategoryID != uuid.Nil {
		query = query.Where("products.category_id = ?", filter.CategoryID)
	}
	if filter.IsActive != nil {
		query = query.Where("products.is_active = ?", *filter.IsActive)
	}
	if filter.IsFeatured != nil {
		query = query.Where("products.is_featured = ?", *filter.IsFeatured)
	}
	if filter.IsPublished != nil {
		query = query.Where("products.is_published = ?", *filter.IsPublished)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("lower(products.name) LIKE ? OR lower(products.sku) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := query.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("products.created_at DESC").
		Offset(filter.Pagination.Offset()).
		Limit(filter.Pagination.Limit()).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *repository) Update(ctx context.Context, product *models.Product) error {
	// column list avoids upserting preloaded associations
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":              product.Name,
			"slug":              product.Slug,
			"description":       product.Description,
			"short_description": product.ShortDescription,
			"price":             product.Price,
			"compare_price":     product.ComparePrice,
			"cost_price":        product.CostPrice,
			"sku":               product.SKU,
			"quantity":          product.Quantity,
			"track_quantity":    product.TrackQuantity,
			"min_quantity":      product.MinQuantity,
			"weight":            product.Weight,
			"dimensions":        product.Dimensions,
			"tags":              tagsJSON(product.Tags),
			"meta_title":        product.MetaTitle,
			"meta_description":  product.MetaDescription,
			"category_id":       product.CategoryID,
			"is_active":         product.IsActive,
			"is_featured":       product.IsFeatured,
			"is_published":      product.IsPublished,
			"published_at":      product.PublishedAt,
			"published_by":      product.PublishedBy,
		}).Error
}

// ReplaceImages drops the product's gallery and recreates it wholesale.
func (r *repository) ReplaceImages(ctx context.Context, productID uuid.UUID, images []models.ProductImage) error {
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.ProductImage{}).Error; err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}
	for i := range images {
		images[i].ProductID = productID
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

// Deactivate is the only removal path; the row stays so historical orders
// keep a valid product reference.
func (r *repository) Deactivate(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Update("is_active", false).Error
}

// tagsJSON mirrors the model's json serializer for map-based updates, which
// bypass gorm's field serialization.
func tagsJSON(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	b, _ := json.Marshal(tags)
	return string(b)
}
