package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"voucher-topup-api/internal/model"
	"voucher-topup-api/internal/pkg/apperr"
	"voucher-topup-api/internal/repository"
)

// CatalogService serves voucher and category listings. When a cache is set,
// reads go through it; cache failures are logged and fall back to storage.
type CatalogService struct {
	vouchers VoucherStore
	catalog  CatalogStore
	cache    CatalogCache
}

// NewCatalogService creates a new CatalogService. cache may be nil.
func NewCatalogService(vouchers VoucherStore, catalog CatalogStore, cache CatalogCache) *CatalogService {
	return &CatalogService{vouchers: vouchers, catalog: catalog, cache: cache}
}

// Landing returns every voucher with its category.
func (s *CatalogService) Landing(ctx context.Context) ([]model.Voucher, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Landing(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Catalog cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	vouchers, err := s.vouchers.ListLanding(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetLanding(ctx, vouchers); err != nil {
			log.Warn().Err(err).Msg("Catalog cache write failed")
		}
	}
	return vouchers, nil
}

// Detail returns a voucher with category, nominals and owner contact.
func (s *CatalogService) Detail(ctx context.Context, id uuid.UUID) (*model.Voucher, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Voucher(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("voucher_id", id.String()).Msg("Catalog cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	v, err := s.vouchers.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVoucherNotFound) {
			return nil, apperr.NotFound("voucher game")
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetVoucher(ctx, v); err != nil {
			log.Warn().Err(err).Str("voucher_id", id.String()).Msg("Catalog cache write failed")
		}
	}
	return v, nil
}

// Categories returns every category.
func (s *CatalogService) Categories(ctx context.Context) ([]model.Category, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Categories(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Catalog cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetCategories(ctx, categories); err != nil {
			log.Warn().Err(err).Msg("Catalog cache write failed")
		}
	}
	return categories, nil
}
