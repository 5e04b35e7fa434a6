package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voucher-topup-api/internal/model"
	"voucher-topup-api/internal/pkg/apperr"
)

type memCache struct {
	landing    []model.Voucher
	categories []model.Category
	vouchers   map[uuid.UUID]*model.Voucher
	err        error
	writes     int
}

func (m *memCache) Landing(context.Context) ([]model.Voucher, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	return m.landing, m.landing != nil, nil
}

func (m *memCache) SetLanding(_ context.Context, v []model.Voucher) error {
	m.writes++
	if m.err != nil {
		return m.err
	}
	m.landing = v
	return nil
}

func (m *memCache) Categories(context.Context) ([]model.Category, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	return m.categories, m.categories != nil, nil
}

func (m *memCache) SetCategories(_ context.Context, c []model.Category) error {
	m.writes++
	if m.err != nil {
		return m.err
	}
	m.categories = c
	return nil
}

func (m *memCache) Voucher(_ context.Context, id uuid.UUID) (*model.Voucher, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	v, ok := m.vouchers[id]
	return v, ok, nil
}

func (m *memCache) SetVoucher(_ context.Context, v *model.Voucher) error {
	m.writes++
	if m.err != nil {
		return m.err
	}
	if m.vouchers == nil {
		m.vouchers = map[uuid.UUID]*model.Voucher{}
	}
	m.vouchers[v.ID] = v
	return nil
}

func TestCatalog_WithoutCache(t *testing.T) {
	w := newWorld()
	svc := NewCatalogService(w.vouchers, w.catalog, nil)
	ctx := context.Background()

	landing, err := svc.Landing(ctx)
	require.NoError(t, err)
	assert.Len(t, landing, 1)

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Category{*w.category}, categories)

	v, err := svc.Detail(ctx, w.voucher.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mobile Legends", v.Name)
}

func TestCatalog_DetailNotFound(t *testing.T) {
	w := newWorld()
	_, err := NewCatalogService(w.vouchers, w.catalog, nil).Detail(context.Background(), uuid.New())

	var nf *apperr.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "voucher game not found", err.Error())
}

func TestCatalog_CacheAside(t *testing.T) {
	w := newWorld()
	cache := &memCache{}
	svc := NewCatalogService(w.vouchers, w.catalog, cache)
	ctx := context.Background()

	_, err := svc.Landing(ctx)
	require.NoError(t, err)
	_, err = svc.Landing(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, w.vouchers.calls, "second read is served from cache")

	_, err = svc.Detail(ctx, w.voucher.ID)
	require.NoError(t, err)
	_, err = svc.Detail(ctx, w.voucher.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, w.vouchers.calls)

	_, err = svc.Categories(ctx)
	require.NoError(t, err)
	_, err = svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"categories"}, w.catalog.calls)
	assert.Equal(t, 3, cache.writes)
}

func TestCatalog_CacheFailureFallsBack(t *testing.T) {
	w := newWorld()
	cache := &memCache{err: errors.New("redis down")}
	svc := NewCatalogService(w.vouchers, w.catalog, cache)

	landing, err := svc.Landing(context.Background())
	require.NoError(t, err)
	assert.Len(t, landing, 1)

	v, err := svc.Detail(context.Background(), w.voucher.ID)
	require.NoError(t, err)
	assert.Equal(t, w.voucher.ID, v.ID)
}
