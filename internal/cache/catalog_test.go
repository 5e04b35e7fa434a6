package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voucher-topup-api/internal/config"
	"voucher-topup-api/internal/model"
)

func newTestCache(t *testing.T) *CatalogCache {
	t.Helper()
	c, err := NewCatalogCache(context.Background(), config.RedisConfig{
		Addr: "localhost:6379",
		DB:   15,
		TTL:  time.Minute,
	})
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Invalidate(context.Background())
		_ = c.Close()
	})
	return c
}

func TestCatalogCache_Landing(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.Invalidate(ctx))

	_, ok, err := c.Landing(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	vouchers := []model.Voucher{{
		ID:       uuid.New(),
		Name:     "Mobile Legends",
		Status:   model.VoucherStatusActive,
		Category: &model.Category{ID: uuid.New(), Name: "Mobile"},
	}}
	require.NoError(t, c.SetLanding(ctx, vouchers))

	got, ok, err := c.Landing(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Mobile Legends", got[0].Name)
	assert.Equal(t, "Mobile", got[0].Category.Name)
}

func TestCatalogCache_VoucherAndInvalidate(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	v := &model.Voucher{
		ID:       uuid.New(),
		Name:     "Genshin",
		Nominals: []model.Nominal{{ID: uuid.New(), CoinName: "Primo", CoinQuantity: 60, Price: decimal.RequireFromString("15000.50")}},
	}
	require.NoError(t, c.SetVoucher(ctx, v))
	require.NoError(t, c.SetCategories(ctx, []model.Category{{ID: uuid.New(), Name: "RPG"}}))

	got, ok, err := c.Voucher(ctx, v.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Nominals, 1)
	assert.True(t, got.Nominals[0].Price.Equal(decimal.RequireFromString("15000.50")))

	require.NoError(t, c.Invalidate(ctx, v.ID))

	_, ok, err = c.Voucher(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = c.Categories(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
