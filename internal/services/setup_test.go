package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pixelarium/backend/internal/config"
	"github.com/pixelarium/backend/internal/database"
	"github.com/pixelarium/backend/internal/models"
	"github.com/pixelarium/backend/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Initialize(config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		LogLevel:   "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	t.Cleanup(func() { database.Close(db) })
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(i int) *int {
	return &i
}

func strPtr(s string) *string {
	return &s
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func productRequest(name, price string, stock int) *ProductRequest {
	return &ProductRequest{
		Name:        name,
		Description: name + " description",
		Price:       decPtr(price),
		Stock:       intPtr(stock),
		Category:    models.CategoryAccessories,
	}
}

func withSale(req *ProductRequest, sale string) *ProductRequest {
	req.SalePrice = decimal.NewNullDecimal(dec(sale))
	return req
}

func userRequest(userName, email string) *CreateUserRequest {
	return &CreateUserRequest{
		Email:     email,
		Password:  "correct horse battery staple",
		FirstName: "Ada",
		LastName:  "Lovelace",
		UserName:  userName,
	}
}

func requireKind(t *testing.T, err error, kind error) *Error {
	t.Helper()

	require.Error(t, err)
	require.ErrorIs(t, err, kind)

	var domainErr *Error
	require.True(t, errors.As(err, &domainErr), "expected *services.Error, got %T", err)
	return domainErr
}

var bg = context.Background()

// failingStore wraps a store and fails every write after the transaction body ran,
// to check that the transaction rolls back.
type failingStore struct {
	repository.Store
}

var errInjected = errors.New("injected failure")

func (s failingStore) WithinTx(ctx context.Context, fn func(r repository.TxRepos) error) error {
	return s.Store.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := fn(r); err != nil {
			return err
		}
		return errInjected
	})
}
