// internal/services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pixelarium/backend/internal/i18n"
	"github.com/pixelarium/backend/internal/models"
	"github.com/pixelarium/backend/internal/repository"
	"github.com/pixelarium/backend/internal/utils"
)

type UserService struct {
	store repository.Store
	now   func() time.Time
}

type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,account_email"`
	Password  string `json:"password" validate:"required,max=72"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	UserName  string `json:"userName" validate:"required,username"`
}

type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,account_email"`
	Password  *string `json:"password,omitempty" validate:"omitempty,min=1,max=72"`
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	UserName  *string `json:"userName,omitempty" validate:"omitempty,username"`
}

func NewUserService(store repository.Store) *UserService {
	return &UserService{
		store: store,
		now:   time.Now,
	}
}

// CreateUser registers a new account. Email is checked before username.
func (s *UserService) CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationFailed(err)
	}

	user := &models.User{
		UserName:     req.UserName,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		RegisterDate: models.StartOfDay(s.now()),
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, invalidInput(i18n.KeyUserPasswordHash, "password cannot be hashed: %v", err)
	}

	err := s.store.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := s.checkUnique(ctx, r, req.Email, req.UserName, nil); err != nil {
			return err
		}
		if err := r.Users().Create(ctx, user); err != nil {
			return uniquenessRace(err, "user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"user_name": user.UserName,
	}).Info("User created")

	return user, nil
}

func (s *UserService) checkUnique(ctx context.Context, r repository.TxRepos, email, userName string, excludeID *uuid.UUID) error {
	if email != "" {
		taken, err := r.Users().ExistsByEmail(ctx, email, excludeID)
		if err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if taken {
			return invalidInput(i18n.KeyUserEmailTaken, "email %s is already registered", email)
		}
	}

	if userName != "" {
		taken, err := r.Users().ExistsByUserName(ctx, userName, excludeID)
		if err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if taken {
			return invalidInput(i18n.KeyUserUserNameTaken, "username %s is already taken", userName)
		}
	}

	return nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, i18n.KeyUserNotFound, "user", id)
	}
	return user, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return nil, lookupError(err, i18n.KeyUserNotFound, "user with email", email)
	}
	return user, nil
}

func (s *UserService) GetUserByUserName(ctx context.Context, userName string) (*models.User, error) {
	user, err := s.store.Users().FindByUserName(ctx, userName)
	if err != nil {
		return nil, lookupError(err, i18n.KeyUserNotFound, "user with username", userName)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, params utils.PaginationParams) ([]models.User, int64, error) {
	users, total, err := s.store.Users().List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("database error: %w", err)
	}
	return users, total, nil
}

// UpdateUser changes account fields. The registration date is never touched.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationFailed(err)
	}

	var user *models.User
	err := s.store.WithinTx(ctx, func(r repository.TxRepos) error {
		var err error
		user, err = r.Users().FindByID(ctx, id)
		if err != nil {
			return lookupError(err, i18n.KeyUserNotFound, "user", id)
		}

		var email, userName string
		if req.Email != nil && *req.Email != user.Email {
			email = *req.Email
		}
		if req.UserName != nil && *req.UserName != user.UserName {
			userName = *req.UserName
		}
		if err := s.checkUnique(ctx, r, email, userName, &id); err != nil {
			return err
		}

		if req.Email != nil {
			user.Email = *req.Email
		}
		if req.UserName != nil {
			user.UserName = *req.UserName
		}
		if req.FirstName != nil {
			user.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			user.LastName = *req.LastName
		}
		if req.Password != nil {
			if err := user.SetPassword(*req.Password); err != nil {
				return invalidInput(i18n.KeyUserPasswordHash, "password cannot be hashed: %v", err)
			}
		}

		if err := r.Users().Update(ctx, user); err != nil {
			return uniquenessRace(err, "user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes the account together with all of its orders.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.store.WithinTx(ctx, func(r repository.TxRepos) error {
		if _, err := r.Users().FindByID(ctx, id); err != nil {
			return lookupError(err, i18n.KeyUserNotFound, "user", id)
		}
		if err := r.Orders().DeleteByUser(ctx, id); err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if err := r.Users().Delete(ctx, id); err != nil {
			return lookupError(err, i18n.KeyUserNotFound, "user", id)
		}
		return nil
	})
}

func (s *UserService) FindUsersRegisteredOn(ctx context.Context, day time.Time) ([]models.User, error) {
	from := models.StartOfDay(day)
	return s.findRegistered(ctx, from, from.AddDate(0, 0, 1))
}

// FindUsersRegisteredAfter returns users registered strictly after day.
func (s *UserService) FindUsersRegisteredAfter(ctx context.Context, day time.Time) ([]models.User, error) {
	return s.findRegistered(ctx, models.StartOfDay(day).AddDate(0, 0, 1), time.Time{})
}

// FindUsersRegisteredBefore returns users registered strictly before day.
func (s *UserService) FindUsersRegisteredBefore(ctx context.Context, day time.Time) ([]models.User, error) {
	return s.findRegistered(ctx, time.Time{}, models.StartOfDay(day))
}

// FindUsersRegisteredBetween includes both boundary days.
func (s *UserService) FindUsersRegisteredBetween(ctx context.Context, from, to time.Time) ([]models.User, error) {
	return s.findRegistered(ctx, models.StartOfDay(from), models.StartOfDay(to).AddDate(0, 0, 1))
}

func (s *UserService) findRegistered(ctx context.Context, from, to time.Time) ([]models.User, error) {
	users, err := s.store.Users().FindRegisteredBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return users, nil
}

// uniquenessRace reports a unique index violation that slipped past the
// existence checks as invalid input.
func uniquenessRace(err error, what string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return invalidInput(i18n.KeyDuplicate, "%s violates a uniqueness constraint", what)
	}
	return fmt.Errorf("database error: %w", err)
}
