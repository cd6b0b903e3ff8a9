// internal/services/catalog_cache.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/pixelarium/backend/internal/config"
	"github.com/pixelarium/backend/internal/models"
)

const (
	catalogKeyPrefix     = "catalog:"
	saleOffersCacheKey   = catalogKeyPrefix + "sale-offers"
	catalogGenerationKey = catalogKeyPrefix + "generation"
)

var errStaleGeneration = errors.New("catalog generation changed")

func categoryCacheKey(category models.Category) string {
	return catalogKeyPrefix + "category:" + string(category)
}

// allCatalogKeys lists every key the product service ever writes.
func allCatalogKeys() []string {
	keys := []string{saleOffersCacheKey}
	for _, c := range models.Categories() {
		keys = append(keys, categoryCacheKey(c))
	}
	return keys
}

// CatalogCache caches product list reads. Misses and backend failures both
// report ok=false so callers fall through to the database.
//
// Every Invalidate bumps the generation. SetProducts only stores a list when
// the generation still matches the one read before the list was loaded, so a
// read that raced a product write cannot put the old list back.
type CatalogCache interface {
	GetProducts(ctx context.Context, key string) ([]models.Product, bool)
	Generation(ctx context.Context) int64
	SetProducts(ctx context.Context, key string, generation int64, products []models.Product)
	Invalidate(ctx context.Context)
	Close() error
}

// NewCatalogCache connects to Redis when enabled, and falls back to a no-op cache otherwise.
func NewCatalogCache(cfg config.RedisConfig) CatalogCache {
	if !cfg.Enabled {
		return NoopCatalogCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Warn("Redis unavailable, catalog cache disabled")
		client.Close()
		return NoopCatalogCache{}
	}

	logrus.WithField("addr", client.Options().Addr).Info("Catalog cache connected to Redis")
	return NewRedisCatalogCache(client, time.Duration(cfg.CacheTTL)*time.Second)
}

type NoopCatalogCache struct{}

func (NoopCatalogCache) GetProducts(context.Context, string) ([]models.Product, bool) { return nil, false }
func (NoopCatalogCache) Generation(context.Context) int64                             { return 0 }
func (NoopCatalogCache) SetProducts(context.Context, string, int64, []models.Product) {}
func (NoopCatalogCache) Invalidate(context.Context)                                   {}
func (NoopCatalogCache) Close() error                                                 { return nil }

type RedisCatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCatalogCache(client *redis.Client, ttl time.Duration) *RedisCatalogCache {
	return &RedisCatalogCache{client: client, ttl: ttl}
}

func (c *RedisCatalogCache) GetProducts(ctx context.Context, key string) ([]models.Product, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logrus.WithError(err).WithField("key", key).Warn("Catalog cache read failed")
		}
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Catalog cache entry is corrupt")
		return nil, false
	}
	return products, true
}

// Generation returns -1 when Redis cannot be read, which SetProducts never stores under.
func (c *RedisCatalogCache) Generation(ctx context.Context) int64 {
	generation, err := c.client.Get(ctx, catalogGenerationKey).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		return 0
	case err != nil:
		logrus.WithError(err).Warn("Catalog cache generation read failed")
		return -1
	}
	return generation
}

func (c *RedisCatalogCache) SetProducts(ctx context.Context, key string, generation int64, products []models.Product) {
	if generation < 0 {
		return
	}

	data, err := json.Marshal(products)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Catalog cache encode failed")
		return
	}

	// WATCH aborts the write if an Invalidate lands between the check and EXEC
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, catalogGenerationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, c.ttl)
			return nil
		})
		return err
	}, catalogGenerationKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		logrus.WithField("key", key).Debug("Catalog cache write skipped, catalog changed during load")
	default:
		logrus.WithError(err).WithField("key", key).Warn("Catalog cache write failed")
	}
}

func (c *RedisCatalogCache) Invalidate(ctx context.Context) {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, catalogGenerationKey)
		pipe.Del(ctx, allCatalogKeys()...)
		return nil
	})
	if err != nil {
		logrus.WithError(err).Warn("Catalog cache invalidation failed")
	}
}

func (c *RedisCatalogCache) Close() error {
	return c.client.Close()
}
