// internal/repository/product_gorm.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pixelarium/backend/internal/models"
	"github.com/pixelarium/backend/internal/utils"
)

var productSortFields = []string{"created_at", "name", "price", "stock", "category"}

type productGormRepository struct {
	db *gorm.DB
}

func (r *productGormRepository) Create(ctx context.Context, product *models.Product) error {
	return translateError(r.db.WithContext(ctx).Create(product).Error)
}

func (r *productGormRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Model(product).
		Select("name", "description", "price", "sale_price", "image_path", "stock", "category").
		Updates(product)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productGormRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

func (r *productGormRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{}).Where("name = ?", name)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *productGormRepository) List(ctx context.Context, params utils.PaginationParams) ([]models.Product, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Product{})
	if params.Search != "" {
		base = base.Where("LOWER(name) LIKE ? ESCAPE '\\'", containsPattern(params.Search))
	}
	if params.Category != "" {
		base = base.Where("category = ?", params.Category)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	q := utils.ApplySort(base.Session(&gorm.Session{}), params, productSortFields)
	if err := utils.ApplyPagination(q, params).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productGormRepository) SearchByName(ctx context.Context, fragment string) ([]models.Product, error) {
	return r.find(r.db.WithContext(ctx).Where("LOWER(name) LIKE ? ESCAPE '\\'", containsPattern(fragment)))
}

func (r *productGormRepository) FindByPrice(ctx context.Context, price decimal.Decimal) ([]models.Product, error) {
	return r.find(r.db.WithContext(ctx).Where("price = ?", price))
}

func (r *productGormRepository) FindByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]models.Product, error) {
	return r.find(r.db.WithContext(ctx).Where("price BETWEEN ? AND ?", min, max))
}

func (r *productGormRepository) FindBySalePrice(ctx context.Context, price decimal.Decimal) ([]models.Product, error) {
	return r.find(r.db.WithContext(ctx).Where("sale_price = ?", price))
}

func (r *productGormRepository) FindOnSale(ctx context.Context) ([]models.Product, error) {
	return r.find(r.db.WithContext(ctx).Where("sale_price IS NOT NULL"))
}

func (r *productGormRepository) FindByCategory(ctx context.Context, category models.Category) ([]models.Product, error) {
	return r.find(r.db.WithContext(ctx).Where("category = ?", category))
}

func (r *productGormRepository) FindByCategoryAndPrice(ctx context.Context, category models.Category, price decimal.Decimal) ([]models.Product, error) {
	return r.find(r.db.WithContext(ctx).Where("category = ? AND price = ?", category, price))
}

func (r *productGormRepository) FindByCategoryAndPriceRange(ctx context.Context, category models.Category, min, max decimal.Decimal) ([]models.Product, error) {
	return r.find(r.db.WithContext(ctx).Where("category = ? AND price BETWEEN ? AND ?", category, min, max))
}

func (r *productGormRepository) find(q *gorm.DB) ([]models.Product, error) {
	products := []models.Product{}
	if err := q.Order("name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
