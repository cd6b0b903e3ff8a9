// internal/repository/store_gorm.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type gormRepos struct {
	users    UserRepository
	products ProductRepository
	orders   OrderRepository
}

func newGormRepos(db *gorm.DB) *gormRepos {
	return &gormRepos{
		users:    &userGormRepository{db: db},
		products: &productGormRepository{db: db},
		orders:   &orderGormRepository{db: db},
	}
}

func (r *gormRepos) Users() UserRepository       { return r.users }
func (r *gormRepos) Products() ProductRepository { return r.products }
func (r *gormRepos) Orders() OrderRepository     { return r.orders }

// GormStore is the gorm backed Store.
type GormStore struct {
	*gormRepos
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		gormRepos: newGormRepos(db),
		db:        db,
	}
}

func (s *GormStore) WithinTx(ctx context.Context, fn func(r TxRepos) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newGormRepos(tx))
	})
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern matching fragment anywhere.
func containsPattern(fragment string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(fragment)) + "%"
}
