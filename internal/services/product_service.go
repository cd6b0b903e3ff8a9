// internal/services/product_service.go
package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/pixelarium/backend/internal/i18n"
	"github.com/pixelarium/backend/internal/models"
	"github.com/pixelarium/backend/internal/repository"
	"github.com/pixelarium/backend/internal/utils"
)

type ProductService struct {
	store   repository.Store
	cache   CatalogCache
	storage *StorageService
}

// ProductRequest is the payload for both creating and replacing a product.
type ProductRequest struct {
	Name        string              `json:"name" validate:"required,max=200"`
	Description string              `json:"description" validate:"required"`
	Price       *decimal.Decimal    `json:"price" validate:"required"`
	SalePrice   decimal.NullDecimal `json:"salePrice"`
	ImagePath   string              `json:"imagePath" validate:"max=255"`
	Stock       *int                `json:"stock" validate:"required"`
	Category    models.Category     `json:"category" validate:"required,category"`
}

func NewProductService(store repository.Store, cache CatalogCache, storage *StorageService) *ProductService {
	if cache == nil {
		cache = NoopCatalogCache{}
	}
	return &ProductService{
		store:   store,
		cache:   cache,
		storage: storage,
	}
}

// CreateProduct checks every business rule before writing anything.
func (s *ProductService) CreateProduct(ctx context.Context, req *ProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationFailed(err)
	}

	product := &models.Product{}
	err := s.store.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := checkProductRules(ctx, r, req, nil); err != nil {
			return err
		}
		applyProductRequest(product, req)
		if err := r.Products().Create(ctx, product); err != nil {
			return uniquenessRace(err, "product")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"name":       product.Name,
		"category":   product.Category,
	}).Info("Product created")

	return product, nil
}

// UpdateProduct replaces a product's fields under the same rules as creation.
// Orders already placed keep their snapshot prices.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *ProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationFailed(err)
	}

	var product *models.Product
	err := s.store.WithinTx(ctx, func(r repository.TxRepos) error {
		var err error
		product, err = r.Products().FindByID(ctx, id)
		if err != nil {
			return lookupError(err, i18n.KeyProductNotFound, "product", id)
		}
		if err := checkProductRules(ctx, r, req, &id); err != nil {
			return err
		}
		applyProductRequest(product, req)
		if err := r.Products().Update(ctx, product); err != nil {
			return uniquenessRace(err, "product")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return product, nil
}

// DeleteProduct refuses to remove products that order items still reference.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := s.store.WithinTx(ctx, func(r repository.TxRepos) error {
		if _, err := r.Products().FindByID(ctx, id); err != nil {
			return lookupError(err, i18n.KeyProductNotFound, "product", id)
		}

		count, err := r.Orders().CountItemsForProduct(ctx, id)
		if err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if count > 0 {
			return conflict(i18n.KeyProductInUse, "product %s is referenced by %d order item(s)", id, count)
		}

		if err := r.Products().Delete(ctx, id); err != nil {
			return lookupError(err, i18n.KeyProductNotFound, "product", id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	return nil
}

// SetProductImage uploads an image and points the product at it.
func (s *ProductService) SetProductImage(ctx context.Context, id uuid.UUID, file multipart.File, header *multipart.FileHeader) (*models.Product, error) {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return nil, err
	}
	if s.storage == nil {
		return nil, fmt.Errorf("image storage is not configured")
	}

	result, err := s.storage.UploadProductImage(file, header)
	if err != nil {
		return nil, err
	}

	var product *models.Product
	err = s.store.WithinTx(ctx, func(r repository.TxRepos) error {
		var err error
		product, err = r.Products().FindByID(ctx, id)
		if err != nil {
			return lookupError(err, i18n.KeyProductNotFound, "product", id)
		}
		product.ImagePath = result.URL
		if err := r.Products().Update(ctx, product); err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		return nil
	})
	if err != nil {
		if delErr := s.storage.DeleteFile(result.Key); delErr != nil {
			logrus.WithError(delErr).WithField("key", result.Key).Warn("Failed to remove orphaned image")
		}
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return product, nil
}

func checkProductRules(ctx context.Context, r repository.TxRepos, req *ProductRequest, excludeID *uuid.UUID) error {
	if !models.IsWholeCents(*req.Price) {
		return invalidInput(i18n.KeyProductPriceScale, "price %s has more than %d decimal places", req.Price, models.MoneyPlaces)
	}
	if req.SalePrice.Valid && !models.IsWholeCents(req.SalePrice.Decimal) {
		return invalidInput(i18n.KeyProductPriceScale, "sale price %s has more than %d decimal places", req.SalePrice.Decimal, models.MoneyPlaces)
	}

	taken, err := r.Products().ExistsByName(ctx, req.Name, excludeID)
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if taken {
		return invalidInput(i18n.KeyProductNameTaken, "product name %q already exists", req.Name)
	}

	if req.Price.IsNegative() {
		return invalidInput(i18n.KeyProductNegativePrice, "price %s is negative", req.Price)
	}
	if *req.Stock < 0 {
		return invalidInput(i18n.KeyProductNegativeStock, "stock %d is negative", *req.Stock)
	}
	if req.SalePrice.Valid {
		if req.SalePrice.Decimal.GreaterThanOrEqual(*req.Price) {
			return invalidInput(i18n.KeyProductSaleNotBelowPrice, "sale price %s is not below price %s", req.SalePrice.Decimal, req.Price)
		}
		if req.SalePrice.Decimal.IsNegative() {
			return invalidInput(i18n.KeyProductNegativeSalePrice, "sale price %s is negative", req.SalePrice.Decimal)
		}
	}
	return nil
}

func applyProductRequest(p *models.Product, req *ProductRequest) {
	p.Name = req.Name
	p.Description = req.Description
	p.Price = req.Price.Round(models.MoneyPlaces)
	p.SalePrice = req.SalePrice
	if p.SalePrice.Valid {
		p.SalePrice.Decimal = p.SalePrice.Decimal.Round(models.MoneyPlaces)
	}
	p.ImagePath = req.ImagePath
	p.Stock = *req.Stock
	p.Category = req.Category
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, i18n.KeyProductNotFound, "product", id)
	}
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, params utils.PaginationParams) ([]models.Product, int64, error) {
	if params.Category != "" {
		category, err := models.ParseCategory(params.Category)
		if err != nil {
			return nil, 0, invalidInput(i18n.KeyProductInvalidCategory, "%v", err)
		}
		params.Category = string(category)
	}

	products, total, err := s.store.Products().List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("database error: %w", err)
	}
	return products, total, nil
}

// SearchProductsByName matches a case-insensitive substring of the name.
func (s *ProductService) SearchProductsByName(ctx context.Context, fragment string) ([]models.Product, error) {
	return dbResult(s.store.Products().SearchByName(ctx, fragment))
}

func (s *ProductService) FindProductsByPrice(ctx context.Context, price decimal.Decimal) ([]models.Product, error) {
	return dbResult(s.store.Products().FindByPrice(ctx, price))
}

// FindProductsByPriceRange includes both bounds.
func (s *ProductService) FindProductsByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]models.Product, error) {
	return dbResult(s.store.Products().FindByPriceRange(ctx, min, max))
}

func (s *ProductService) FindProductsBySalePrice(ctx context.Context, price decimal.Decimal) ([]models.Product, error) {
	return dbResult(s.store.Products().FindBySalePrice(ctx, price))
}

func (s *ProductService) FindSaleOffers(ctx context.Context) ([]models.Product, error) {
	return s.cached(ctx, saleOffersCacheKey, func() ([]models.Product, error) {
		return s.store.Products().FindOnSale(ctx)
	})
}

func (s *ProductService) FindProductsByCategory(ctx context.Context, category models.Category) ([]models.Product, error) {
	if !category.IsValid() {
		return nil, invalidInput(i18n.KeyProductInvalidCategory, "unknown category %q", category)
	}
	return s.cached(ctx, categoryCacheKey(category), func() ([]models.Product, error) {
		return s.store.Products().FindByCategory(ctx, category)
	})
}

func (s *ProductService) FindProductsByCategoryAndPrice(ctx context.Context, category models.Category, price decimal.Decimal) ([]models.Product, error) {
	if !category.IsValid() {
		return nil, invalidInput(i18n.KeyProductInvalidCategory, "unknown category %q", category)
	}
	return dbResult(s.store.Products().FindByCategoryAndPrice(ctx, category, price))
}

func (s *ProductService) FindProductsByCategoryAndPriceRange(ctx context.Context, category models.Category, min, max decimal.Decimal) ([]models.Product, error) {
	if !category.IsValid() {
		return nil, invalidInput(i18n.KeyProductInvalidCategory, "unknown category %q", category)
	}
	return dbResult(s.store.Products().FindByCategoryAndPriceRange(ctx, category, min, max))
}

func (s *ProductService) cached(ctx context.Context, key string, load func() ([]models.Product, error)) ([]models.Product, error) {
	if products, ok := s.cache.GetProducts(ctx, key); ok {
		return products, nil
	}

	generation := s.cache.Generation(ctx)
	products, err := dbResult(load())
	if err != nil {
		return nil, err
	}
	s.cache.SetProducts(ctx, key, generation, products)
	return products, nil
}

func dbResult[T any](items []T, err error) ([]T, error) {
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return items, nil
}
