package service

import (
	"context"
	"errors"
	"fmt"

	"voucher-topup-api/internal/model"
	"voucher-topup-api/internal/pkg/apperr"
)

// References are the entities a checkout request points at.
type References struct {
	Voucher *model.Voucher
	Nominal *model.Nominal
	Payment *model.Payment
	Bank    *model.Bank
}

// Resolver loads the four references of a checkout request.
type Resolver struct {
	vouchers VoucherStore
	catalog  CatalogStore
}

// NewResolver creates a new Resolver instance.
func NewResolver(vouchers VoucherStore, catalog CatalogStore) *Resolver {
	return &Resolver{vouchers: vouchers, catalog: catalog}
}

// Resolve looks up voucher, nominal, payment and bank in that order and stops
// at the first one that is missing, returning *apperr.NotFoundError naming it.
func (r *Resolver) Resolve(ctx context.Context, req model.CheckoutRequest) (*References, error) {
	voucher, err := r.vouchers.GetWithRelations(ctx, req.VoucherID)
	if err != nil {
		return nil, wrapLookup("voucher", err)
	}

	nominal, err := r.catalog.GetNominal(ctx, req.NominalID)
	if err != nil {
		return nil, wrapLookup("nominal", err)
	}

	payment, err := r.catalog.GetPayment(ctx, req.PaymentID)
	if err != nil {
		return nil, wrapLookup("payment", err)
	}

	bank, err := r.catalog.GetBank(ctx, req.BankID)
	if err != nil {
		return nil, wrapLookup("bank", err)
	}

	return &References{Voucher: voucher, Nominal: nominal, Payment: payment, Bank: bank}, nil
}

func wrapLookup(what string, err error) error {
	translated := translate(err)
	var nf *apperr.NotFoundError
	if errors.As(translated, &nf) {
		return translated
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}
