// internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pixelarium/backend/internal/models"
	"github.com/pixelarium/backend/internal/utils"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUserName(ctx context.Context, userName string) (*models.User, error)
	// excludeID skips one user, used when re-checking uniqueness on update.
	ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)
	ExistsByUserName(ctx context.Context, userName string, excludeID *uuid.UUID) (bool, error)

	List(ctx context.Context, params utils.PaginationParams) ([]models.User, int64, error)
	// FindRegisteredBetween returns users whose register date lies in [from, to).
	// A zero bound is open.
	FindRegisteredBetween(ctx context.Context, from, to time.Time) ([]models.User, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
	List(ctx context.Context, params utils.PaginationParams) ([]models.Product, int64, error)

	SearchByName(ctx context.Context, fragment string) ([]models.Product, error)
	FindByPrice(ctx context.Context, price decimal.Decimal) ([]models.Product, error)
	FindByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]models.Product, error)
	FindBySalePrice(ctx context.Context, price decimal.Decimal) ([]models.Product, error)
	FindOnSale(ctx context.Context) ([]models.Product, error)
	FindByCategory(ctx context.Context, category models.Category) ([]models.Product, error)
	FindByCategoryAndPrice(ctx context.Context, category models.Category, price decimal.Decimal) ([]models.Product, error)
	FindByCategoryAndPriceRange(ctx context.Context, category models.Category, min, max decimal.Decimal) ([]models.Product, error)
}

type OrderRepository interface {
	// Create inserts the order together with its items.
	Create(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	UpdateOwner(ctx context.Context, id, userID uuid.UUID) error
	UpdateItemQuantity(ctx context.Context, orderID, itemID uuid.UUID, quantity int) error
	// Delete removes the order and its items.
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, params utils.PaginationParams) ([]models.Order, int64, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	FindByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	// FindByDateRange returns orders placed in [from, to).
	FindByDateRange(ctx context.Context, from, to time.Time) ([]models.Order, error)
	FindByTotalPrice(ctx context.Context, total decimal.Decimal) ([]models.Order, error)
	CountItemsForProduct(ctx context.Context, productID uuid.UUID) (int64, error)
}

// TxRepos is the set of repositories bound to one unit of work.
type TxRepos interface {
	Users() UserRepository
	Products() ProductRepository
	Orders() OrderRepository
}

// TransactionManager runs fn inside a transaction. The transaction commits when
// fn returns nil and rolls back when it returns an error or panics.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}

// Store gives non-transactional repository access plus scoped transactions.
type Store interface {
	TxRepos
	TransactionManager
}
