package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("RATE_LIMIT_BURST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/shop.db")
	t.Setenv("REDIS_ENABLED", "TRUE")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/shop.db", cfg.Database.DSN())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.Driver = "oracle"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production requires db password", func(t *testing.T) {
		cfg := validConfig()
		cfg.Environment = "production"
		assert.Error(t, cfg.Validate())

		cfg.Database.Password = "secret"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("sqlite needs no password", func(t *testing.T) {
		cfg := validConfig()
		cfg.Environment = "production"
		cfg.Database.Driver = DriverSQLite
		assert.NoError(t, cfg.Validate())
	})

	t.Run("rate limits must be positive", func(t *testing.T) {
		cfg := validConfig()
		cfg.RateLimit.Burst = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestPostgresDSN(t *testing.T) {
	d := DatabaseConfig{
		Driver:   DriverPostgres,
		Host:     "db",
		Port:     "5432",
		User:     "shop",
		Password: "pw",
		Database: "pixelarium",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=shop password=pw dbname=pixelarium sslmode=disable", d.DSN())
}

func validConfig() *Config {
	return &Config{
		Environment: "development",
		Database:    DatabaseConfig{Driver: DriverPostgres},
		RateLimit:   RateLimitConfig{RequestsPerSecond: 10, Burst: 20, UploadsPerMinute: 10},
		Storage:     StorageConfig{MaxImageSize: 1024},
	}
}
