// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pixelarium/backend/internal/config"
	"github.com/pixelarium/backend/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
		TranslateError: true,
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN())
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	// Connect to database
	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	if cfg.Driver == config.DriverSQLite {
		// single writer; the connection must also outlive idle periods for in-memory databases
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)
	}

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.WithField("driver", cfg.Driver).Info("Database connection established")
	return db, nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	} else {
		logrus.Info("Database connection closed")
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Database migrations completed")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_category_price ON products(category, price)",
		"CREATE INDEX IF NOT EXISTS idx_products_sale_price ON products(sale_price)",
		"CREATE INDEX IF NOT EXISTS idx_orders_user_date ON orders(user_id, order_date)",
		"CREATE INDEX IF NOT EXISTS idx_orders_total_price ON orders(total_price)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order_position ON order_items(order_id, position)",
	}

	if db.Dialector.Name() == "postgres" {
		indexes = append(indexes,
			"CREATE INDEX IF NOT EXISTS idx_products_name_lower ON products(LOWER(name))",
		)
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			// secondary indexes are best effort
			logrus.WithError(err).WithField("statement", index).Warn("Failed to create index")
		}
	}

	return nil
}

// SeedDemoData fills an empty catalog with a few products so a fresh
// development database is usable straight away.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	logrus.Info("Seeding demo catalog...")

	products := []models.Product{
		{
			Name:        "MacBook Air 13 M3",
			Description: "13-inch laptop, 8-core CPU, 16GB RAM, 256GB SSD",
			Price:       decimal.RequireFromString("1199.00"),
			SalePrice:   decimal.NewNullDecimal(decimal.RequireFromString("1099.00")),
			Stock:       12,
			Category:    models.CategoryApple,
		},
		{
			Name:        "Nintendo Switch OLED",
			Description: "7-inch OLED handheld console with dock",
			Price:       decimal.RequireFromString("349.99"),
			Stock:       30,
			Category:    models.CategoryNintendoSwitch,
		},
		{
			Name:        "Nintendo Switch 2",
			Description: "Next generation hybrid console",
			Price:       decimal.RequireFromString("469.99"),
			Stock:       8,
			Category:    models.CategoryNintendoSwitch2,
		},
		{
			Name:        "Gaming PC Ryzen 7",
			Description: "Ryzen 7 7800X3D, RTX 4070 Super, 32GB DDR5",
			Price:       decimal.RequireFromString("1899.00"),
			SalePrice:   decimal.NewNullDecimal(decimal.RequireFromString("1749.00")),
			Stock:       4,
			Category:    models.CategoryPC,
		},
		{
			Name:        "Pro Controller",
			Description: "Wireless controller with motion controls",
			Price:       decimal.RequireFromString("69.99"),
			Stock:       50,
			Category:    models.CategoryAccessories,
		},
	}

	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	logrus.WithField("products", len(products)).Info("Demo catalog seeded")
	return nil
}
