package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YelzhanWeb/basecart/internal/domain"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestIdempotencyStore_Claim(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	store := NewIdempotencyStore(client)

	key := "test-" + time.Now().Format(time.RFC3339Nano)
	t.Cleanup(func() { client.Del(ctx, idempotencyKeyPrefix+key) })

	ok, err := store.Claim(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Claim(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIdempotencyStore_Release(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	store := NewIdempotencyStore(client)

	key := "release-" + time.Now().Format(time.RFC3339Nano)
	t.Cleanup(func() { client.Del(ctx, idempotencyKeyPrefix+key) })

	ok, err := store.Claim(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.Release(ctx, key))

	ok, err = store.Claim(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Release(ctx, "never-claimed-"+key))
}

func TestStorefrontCache_RoundTripAndInvalidate(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	cache := NewStorefrontCache(client, time.Minute)

	const businessID = int64(987654)
	sf := &domain.Storefront{ID: businessID, Name: "Cache Test", Slug: "cache-test-987654"}
	items := []*domain.MenuItem{{ID: 1, BusinessID: businessID, Name: "Latte", Price: decimal.RequireFromString("4.50"), Category: "Coffee"}}
	t.Cleanup(func() { _ = cache.Invalidate(ctx, sf.Slug, businessID) })

	_, ok, err := cache.GetStorefront(ctx, sf.Slug)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.SetStorefront(ctx, sf))
	require.NoError(t, cache.SetMenu(ctx, businessID, items))

	got, ok, err := cache.GetStorefront(ctx, sf.Slug)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Cache Test", got.Name)

	menu, ok, err := cache.GetMenu(ctx, businessID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, menu, 1)
	assert.True(t, menu[0].Price.Equal(decimal.RequireFromString("4.50")))

	require.NoError(t, cache.Invalidate(ctx, sf.Slug, businessID))
	_, ok, err = cache.GetMenu(ctx, businessID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNopCacheNeverHits(t *testing.T) {
	var cache NopCache
	ctx := context.Background()
	require.NoError(t, cache.SetStorefront(ctx, &domain.Storefront{Slug: "x"}))
	_, ok, err := cache.GetStorefront(ctx, "x")
	require.NoError(t, err)
	assert.False(t, ok)
}
