// internal/repository/user_gorm.go
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pixelarium/backend/internal/models"
	"github.com/pixelarium/backend/internal/utils"
)

var userSortFields = []string{"created_at", "user_name", "email", "register_date"}

type userGormRepository struct {
	db *gorm.DB
}

func (r *userGormRepository) Create(ctx context.Context, user *models.User) error {
	return translateError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userGormRepository) Update(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).Model(user).
		Select("user_name", "password_hash", "first_name", "last_name", "email").
		Updates(user)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userGormRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userGormRepository) FindByUserName(ctx context.Context, userName string) (*models.User, error) {
	return r.first(ctx, "user_name = ?", userName)
}

func (r *userGormRepository) first(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userGormRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	return r.exists(ctx, "email = ?", email, excludeID)
}

func (r *userGormRepository) ExistsByUserName(ctx context.Context, userName string, excludeID *uuid.UUID) (bool, error) {
	return r.exists(ctx, "user_name = ?", userName, excludeID)
}

func (r *userGormRepository) exists(ctx context.Context, query string, value string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.User{}).Where(query, value)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userGormRepository) List(ctx context.Context, params utils.PaginationParams) ([]models.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	q := utils.ApplySort(r.db.WithContext(ctx), params, userSortFields)
	if err := utils.ApplyPagination(q, params).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userGormRepository) FindRegisteredBetween(ctx context.Context, from, to time.Time) ([]models.User, error) {
	q := r.db.WithContext(ctx)
	if !from.IsZero() {
		q = q.Where("register_date >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("register_date < ?", to)
	}

	users := []models.User{}
	if err := q.Order("register_date ASC, user_name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
