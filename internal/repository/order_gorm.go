// internal/repository/order_gorm.go
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pixelarium/backend/internal/models"
	"github.com/pixelarium/backend/internal/utils"
)

var orderSortFields = []string{"created_at", "order_date", "total_price", "status"}

type orderGormRepository struct {
	db *gorm.DB
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *orderGormRepository) Create(ctx context.Context, order *models.Order) error {
	return translateError(r.db.WithContext(ctx).Create(order).Error)
}

func (r *orderGormRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	return r.updateOrderColumn(ctx, id, "status", status)
}

func (r *orderGormRepository) UpdateOwner(ctx context.Context, id, userID uuid.UUID) error {
	return r.updateOrderColumn(ctx, id, "user_id", userID)
}

func (r *orderGormRepository) updateOrderColumn(ctx context.Context, id uuid.UUID, column string, value interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderGormRepository) UpdateItemQuantity(ctx context.Context, orderID, itemID uuid.UUID, quantity int) error {
	res := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Where("id = ? AND order_id = ?", itemID, orderID).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}

	res := db.Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderGormRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	db := r.db.WithContext(ctx)
	orderIDs := db.Model(&models.Order{}).Select("id").Where("user_id = ?", userID)
	if err := db.Where("order_id IN (?)", orderIDs).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	return db.Where("user_id = ?", userID).Delete(&models.Order{}).Error
}

func (r *orderGormRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items", preloadItems).First(&order, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

func (r *orderGormRepository) List(ctx context.Context, params utils.PaginationParams) ([]models.Order, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	q := utils.ApplySort(r.db.WithContext(ctx).Preload("Items", preloadItems), params, orderSortFields)
	if err := utils.ApplyPagination(q, params).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderGormRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *orderGormRepository) FindByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	return r.find(r.db.WithContext(ctx).Where("status = ?", status))
}

func (r *orderGormRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	return r.find(r.db.WithContext(ctx).Where("order_date >= ? AND order_date < ?", from.UTC(), to.UTC()))
}

func (r *orderGormRepository) FindByTotalPrice(ctx context.Context, total decimal.Decimal) ([]models.Order, error) {
	return r.find(r.db.WithContext(ctx).Where("total_price = ?", total))
}

func (r *orderGormRepository) CountItemsForProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}

func (r *orderGormRepository) find(q *gorm.DB) ([]models.Order, error) {
	orders := []models.Order{}
	if err := q.Preload("Items", preloadItems).Order("order_date ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
