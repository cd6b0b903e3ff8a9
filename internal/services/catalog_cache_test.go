package services

import (
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelarium/backend/internal/models"
)

// newRedisCatalogCache connects to REDIS_TEST_ADDR, skipping the test when it is unset.
func newRedisCatalogCache(t *testing.T) *RedisCatalogCache {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	require.NoError(t, client.Ping(bg).Err())

	cache := NewRedisCatalogCache(client, time.Minute)
	cache.Invalidate(bg)
	t.Cleanup(func() {
		cache.Invalidate(bg)
		cache.Close()
	})
	return cache
}

func TestRedisCatalogCacheRoundTrip(t *testing.T) {
	cache := newRedisCatalogCache(t)

	products := []models.Product{{Name: "Console X", Price: dec("500.00")}}
	cache.SetProducts(bg, saleOffersCacheKey, cache.Generation(bg), products)

	got, ok := cache.GetProducts(bg, saleOffersCacheKey)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Console X", got[0].Name)
	assert.True(t, got[0].Price.Equal(dec("500.00")))

	cache.Invalidate(bg)
	_, ok = cache.GetProducts(bg, saleOffersCacheKey)
	assert.False(t, ok)
}

func TestRedisCatalogCacheDropsListsLoadedBeforeInvalidate(t *testing.T) {
	cache := newRedisCatalogCache(t)

	generation := cache.Generation(bg)
	// a product write commits and invalidates while the list is loading
	cache.Invalidate(bg)
	assert.Equal(t, generation+1, cache.Generation(bg))

	cache.SetProducts(bg, categoryCacheKey(models.CategoryPC), generation, []models.Product{{Name: "stale"}})
	_, ok := cache.GetProducts(bg, categoryCacheKey(models.CategoryPC))
	assert.False(t, ok)

	cache.SetProducts(bg, categoryCacheKey(models.CategoryPC), -1, []models.Product{{Name: "unknown generation"}})
	_, ok = cache.GetProducts(bg, categoryCacheKey(models.CategoryPC))
	assert.False(t, ok)
}
