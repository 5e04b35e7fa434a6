package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"voucher-topup-api/internal/model"
	"voucher-topup-api/internal/pkg/apperr"
	"voucher-topup-api/internal/pricing"
)

// CheckoutInput is the raw checkout body as received from the client.
type CheckoutInput struct {
	Voucher     string `json:"voucher" form:"voucher"`
	Nominal     string `json:"nominal" form:"nominal"`
	Payment     string `json:"payment" form:"payment"`
	Bank        string `json:"bank" form:"bank"`
	Name        string `json:"name" form:"name"`
	AccountUser string `json:"accountUser" form:"accountUser"`
}

// Parse validates the input shape and returns a typed request.
// Every rejected field is reported in one *apperr.ValidationError.
func (in CheckoutInput) Parse() (model.CheckoutRequest, error) {
	v := apperr.NewValidation("Checkout validation failed")

	parseID := func(path, raw string) uuid.UUID {
		if raw == "" {
			v.Add(path, "required", path+" is required", nil)
			return uuid.Nil
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			v.Add(path, "ObjectId", path+" is not a valid id", raw)
			return uuid.Nil
		}
		return id
	}

	req := model.CheckoutRequest{
		VoucherID:   parseID("voucher", in.Voucher),
		NominalID:   parseID("nominal", in.Nominal),
		PaymentID:   parseID("payment", in.Payment),
		BankID:      parseID("bank", in.Bank),
		Name:        sanitizeText(in.Name),
		AccountUser: sanitizeText(in.AccountUser),
	}

	if req.Name == "" {
		v.Add("name", "required", "name is required", nil)
	}
	if req.AccountUser == "" {
		v.Add("accountUser", "required", "account user is required", nil)
	}

	if err := v.Err(); err != nil {
		return model.CheckoutRequest{}, err
	}
	return req, nil
}

// CheckoutService turns a checkout request into a stored transaction.
type CheckoutService struct {
	resolver      *Resolver
	calculator    *pricing.Calculator
	txs           TransactionStore
	defaultStatus string
}

// NewCheckoutService creates a new CheckoutService instance.
func NewCheckoutService(resolver *Resolver, calculator *pricing.Calculator, txs TransactionStore, defaultStatus string) *CheckoutService {
	if defaultStatus == "" {
		defaultStatus = model.TxStatusPending
	}
	return &CheckoutService{
		resolver:      resolver,
		calculator:    calculator,
		txs:           txs,
		defaultStatus: defaultStatus,
	}
}

// Checkout validates in, resolves its references, prices the nominal and
// stores the resulting transaction. Nothing is written when any step before
// the final insert fails.
func (s *CheckoutService) Checkout(ctx context.Context, playerID uuid.UUID, in CheckoutInput) (*model.Transaction, error) {
	req, err := in.Parse()
	if err != nil {
		return nil, err
	}

	refs, err := s.resolver.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	quote, err := s.calculator.Quote(refs.Nominal.Price)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidPrice) {
			return nil, apperr.NewValidation("Checkout validation failed").
				Add("nominal", "min", err.Error(), refs.Nominal.Price.String()).
				Err()
		}
		return nil, err
	}

	tx := BuildTransaction(refs, quote, playerID, req.Name, req.AccountUser)
	tx.Status = s.defaultStatus

	created, err := s.txs.Create(ctx, tx)
	if err != nil {
		var ve *apperr.ValidationError
		if errors.As(err, &ve) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to store transaction: %w", err)
	}

	log.Info().
		Str("transaction_id", created.ID.String()).
		Str("player_id", playerID.String()).
		Str("voucher", created.HistoryVoucherTopup.GameName).
		Str("value", created.Value.String()).
		Msg("Checkout completed")

	return created, nil
}
