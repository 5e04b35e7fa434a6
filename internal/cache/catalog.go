// Package cache keeps catalog listings in Redis so the landing page does not
// hit Postgres on every request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"voucher-topup-api/internal/config"
	"voucher-topup-api/internal/model"
)

// CatalogCache stores catalog reads as JSON with a fixed TTL.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache connects to Redis and verifies the connection.
func NewCatalogCache(ctx context.Context, cfg config.RedisConfig) (*CatalogCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &CatalogCache{client: client, ttl: ttl}, nil
}

// Close closes the Redis client.
func (c *CatalogCache) Close() error {
	return c.client.Close()
}

// get decodes key into dst. It reports false on a cache miss.
func (c *CatalogCache) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (c *CatalogCache) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Landing returns the cached landing list.
func (c *CatalogCache) Landing(ctx context.Context) ([]model.Voucher, bool, error) {
	var vouchers []model.Voucher
	ok, err := c.get(ctx, KeyLanding, &vouchers)
	return vouchers, ok, err
}

// SetLanding caches the landing list.
func (c *CatalogCache) SetLanding(ctx context.Context, vouchers []model.Voucher) error {
	return c.set(ctx, KeyLanding, vouchers)
}

// Categories returns the cached category list.
func (c *CatalogCache) Categories(ctx context.Context) ([]model.Category, bool, error) {
	var categories []model.Category
	ok, err := c.get(ctx, KeyCategories, &categories)
	return categories, ok, err
}

// SetCategories caches the category list.
func (c *CatalogCache) SetCategories(ctx context.Context, categories []model.Category) error {
	return c.set(ctx, KeyCategories, categories)
}

// Voucher returns a cached voucher detail.
func (c *CatalogCache) Voucher(ctx context.Context, id uuid.UUID) (*model.Voucher, bool, error) {
	var v model.Voucher
	ok, err := c.get(ctx, fmt.Sprintf(KeyVoucher, id), &v)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &v, true, nil
}

// SetVoucher caches a voucher detail.
func (c *CatalogCache) SetVoucher(ctx context.Context, v *model.Voucher) error {
	return c.set(ctx, fmt.Sprintf(KeyVoucher, v.ID), v)
}

// Invalidate drops the listings and the given voucher details.
func (c *CatalogCache) Invalidate(ctx context.Context, voucherIDs ...uuid.UUID) error {
	keys := []string{KeyLanding, KeyCategories}
	for _, id := range voucherIDs {
		keys = append(keys, fmt.Sprintf(KeyVoucher, id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	return nil
}
