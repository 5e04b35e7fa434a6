// Package service implements the storefront use cases: checkout, history,
// catalog browsing and profile editing.
package service

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"voucher-topup-api/internal/model"
	"voucher-topup-api/internal/pkg/apperr"
	"voucher-topup-api/internal/repository"
)

// VoucherStore loads vouchers and their relations.
type VoucherStore interface {
	GetWithRelations(ctx context.Context, id uuid.UUID) (*model.Voucher, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*model.Voucher, error)
	ListLanding(ctx context.Context) ([]model.Voucher, error)
}

// CatalogStore loads the reference data a checkout points at.
type CatalogStore interface {
	GetNominal(ctx context.Context, id uuid.UUID) (*model.Nominal, error)
	GetPayment(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	GetBank(ctx context.Context, id uuid.UUID) (*model.Bank, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}

// TransactionStore persists and queries checkout records.
type TransactionStore interface {
	Create(ctx context.Context, tx *model.Transaction) (*model.Transaction, error)
	Find(ctx context.Context, f model.TransactionFilter) ([]model.Transaction, error)
	SumValue(ctx context.Context, f model.TransactionFilter) (decimal.Decimal, error)
	SumByCategory(ctx context.Context, playerID uuid.UUID) ([]model.CategoryValue, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	ListByPlayerWithCategory(ctx context.Context, playerID uuid.UUID) ([]model.Transaction, error)
}

// PlayerStore loads and updates players.
type PlayerStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Player, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, u model.ProfileUpdate) (*model.Player, error)
}

// CatalogCache is a read-through cache for catalog listings.
type CatalogCache interface {
	Landing(ctx context.Context) ([]model.Voucher, bool, error)
	SetLanding(ctx context.Context, vouchers []model.Voucher) error
	Categories(ctx context.Context) ([]model.Category, bool, error)
	SetCategories(ctx context.Context, categories []model.Category) error
	Voucher(ctx context.Context, id uuid.UUID) (*model.Voucher, bool, error)
	SetVoucher(ctx context.Context, v *model.Voucher) error
}

// FileStore holds uploaded avatar files.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) (int64, error)
	Exists(name string) (bool, error)
	Remove(name string) error
}

// notFoundKinds maps repository sentinels to the entity names reported to clients.
var notFoundKinds = []struct {
	err  error
	kind string
}{
	{repository.ErrVoucherNotFound, "voucher"},
	{repository.ErrNominalNotFound, "nominal"},
	{repository.ErrPaymentNotFound, "payment"},
	{repository.ErrBankNotFound, "bank"},
	{repository.ErrPlayerNotFound, "player"},
	{repository.ErrTransactionNotFound, "history"},
}

// translate turns repository not-found sentinels into apperr.NotFoundError.
// Other errors pass through unchanged.
func translate(err error) error {
	for _, k := range notFoundKinds {
		if errors.Is(err, k.err) {
			return apperr.NotFound(k.kind)
		}
	}
	return err
}
