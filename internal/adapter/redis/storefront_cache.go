package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/YelzhanWeb/basecart/internal/domain"
)

const (
	storefrontKeyPrefix = "storefront:"
	menuKeyPrefix       = "menu:"
)

type StorefrontCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStorefrontCache(client *redis.Client, ttl time.Duration) *StorefrontCache {
	return &StorefrontCache{client: client, ttl: ttl}
}

func menuKey(businessID int64) string {
	return menuKeyPrefix + strconv.FormatInt(businessID, 10)
}

func (c *StorefrontCache) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *StorefrontCache) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *StorefrontCache) GetStorefront(ctx context.Context, slug string) (*domain.Storefront, bool, error) {
	var sf domain.Storefront
	ok, err := c.get(ctx, storefrontKeyPrefix+slug, &sf)
	if !ok || err != nil {
		return nil, false, err
	}
	return &sf, true, nil
}

func (c *StorefrontCache) SetStorefront(ctx context.Context, sf *domain.Storefront) error {
	return c.set(ctx, storefrontKeyPrefix+sf.Slug, sf)
}

func (c *StorefrontCache) GetMenu(ctx context.Context, businessID int64) ([]*domain.MenuItem, bool, error) {
	var items []*domain.MenuItem
	ok, err := c.get(ctx, menuKey(businessID), &items)
	if !ok || err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (c *StorefrontCache) SetMenu(ctx context.Context, businessID int64, items []*domain.MenuItem) error {
	return c.set(ctx, menuKey(businessID), items)
}

func (c *StorefrontCache) Invalidate(ctx context.Context, slug string, businessID int64) error {
	keys := []string{menuKey(businessID)}
	if slug != "" {
		keys = append(keys, storefrontKeyPrefix+slug)
	}
	return c.client.Del(ctx, keys...).Err()
}

// NopCache never hits. It stands in when redis is disabled.
type NopCache struct{}

func (NopCache) GetStorefront(context.Context, string) (*domain.Storefront, bool, error) {
	return nil, false, nil
}
func (NopCache) SetStorefront(context.Context, *domain.Storefront) error { return nil }
func (NopCache) GetMenu(context.Context, int64) ([]*domain.MenuItem, bool, error) {
	return nil, false, nil
}
func (NopCache) SetMenu(context.Context, int64, []*domain.MenuItem) error { return nil }
func (NopCache) Invalidate(context.Context, string, int64) error          { return nil }
