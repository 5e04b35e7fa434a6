package service

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"voucher-topup-api/internal/model"
	"voucher-topup-api/internal/repository"
)

type fakeVouchers struct {
	byID  map[uuid.UUID]*model.Voucher
	err   error
	calls int
}

func (f *fakeVouchers) GetWithRelations(_ context.Context, id uuid.UUID) (*model.Voucher, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrVoucherNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVouchers) GetDetail(ctx context.Context, id uuid.UUID) (*model.Voucher, error) {
	return f.GetWithRelations(ctx, id)
}

func (f *fakeVouchers) ListLanding(context.Context) ([]model.Voucher, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Voucher{}
	for _, v := range f.byID {
		out = append(out, *v)
	}
	return out, nil
}

type fakeCatalog struct {
	nominals   map[uuid.UUID]*model.Nominal
	payments   map[uuid.UUID]*model.Payment
	banks      map[uuid.UUID]*model.Bank
	categories []model.Category
	nominalErr error
	calls      []string
}

func (f *fakeCatalog) GetNominal(_ context.Context, id uuid.UUID) (*model.Nominal, error) {
	f.calls = append(f.calls, "nominal")
	if f.nominalErr != nil {
		return nil, f.nominalErr
	}
	n, ok := f.nominals[id]
	if !ok {
		return nil, repository.ErrNominalNotFound
	}
	cp := *n
	return &cp, nil
}

func (f *fakeCatalog) GetPayment(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	f.calls = append(f.calls, "payment")
	p, ok := f.payments[id]
	if !ok {
		return nil, repository.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeCatalog) GetBank(_ context.Context, id uuid.UUID) (*model.Bank, error) {
	f.calls = append(f.calls, "bank")
	b, ok := f.banks[id]
	if !ok {
		return nil, repository.ErrBankNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeCatalog) ListCategories(context.Context) ([]model.Category, error) {
	f.calls = append(f.calls, "categories")
	return f.categories, nil
}

type fakeTxs struct {
	mu        sync.Mutex
	stored    []model.Transaction
	createErr error
}

func (f *fakeTxs) Create(_ context.Context, tx *model.Transaction) (*model.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *tx
	cp.ID = uuid.New()
	f.stored = append(f.stored, cp)
	return &cp, nil
}

func (f *fakeTxs) matching(flt model.TransactionFilter) []model.Transaction {
	out := []model.Transaction{}
	for _, tx := range f.stored {
		if flt.Status != "" && !strings.Contains(strings.ToLower(tx.Status), strings.ToLower(flt.Status)) {
			continue
		}
		if flt.PlayerID != nil && tx.PlayerID != *flt.PlayerID {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func (f *fakeTxs) Find(_ context.Context, flt model.TransactionFilter) ([]model.Transaction, error) {
	return f.matching(flt), nil
}

func (f *fakeTxs) SumValue(_ context.Context, flt model.TransactionFilter) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, tx := range f.matching(flt) {
		total = total.Add(tx.Value)
	}
	return total, nil
}

func (f *fakeTxs) SumByCategory(_ context.Context, playerID uuid.UUID) ([]model.CategoryValue, error) {
	sums := map[uuid.UUID]decimal.Decimal{}
	var order []uuid.UUID
	for _, tx := range f.matching(model.TransactionFilter{PlayerID: &playerID}) {
		key := uuid.Nil
		if tx.CategoryID != nil {
			key = *tx.CategoryID
		}
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] = sums[key].Add(tx.Value)
	}

	out := []model.CategoryValue{}
	for _, key := range order {
		g := model.CategoryValue{Value: sums[key]}
		if key != uuid.Nil {
			id := key
			g.CategoryID = &id
		}
		out = append(out, g)
	}
	return out, nil
}

func (f *fakeTxs) GetByID(_ context.Context, id uuid.UUID) (*model.Transaction, error) {
	for _, tx := range f.stored {
		if tx.ID == id {
			cp := tx
			return &cp, nil
		}
	}
	return nil, repository.ErrTransactionNotFound
}

func (f *fakeTxs) ListByPlayerWithCategory(_ context.Context, playerID uuid.UUID) ([]model.Transaction, error) {
	return f.matching(model.TransactionFilter{PlayerID: &playerID}), nil
}

type fakePlayers struct {
	mu        sync.Mutex
	byID      map[uuid.UUID]*model.Player
	updateErr error
	updates   int
}

func (f *fakePlayers) GetByID(_ context.Context, id uuid.UUID) (*model.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlayers) UpdateProfile(_ context.Context, id uuid.UUID, u model.ProfileUpdate) (*model.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrPlayerNotFound
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.PhoneNumber != nil {
		p.PhoneNumber = *u.PhoneNumber
	}
	if u.Avatar != nil {
		p.Avatar = *u.Avatar
	}
	cp := *p
	return &cp, nil
}

// world is a consistent set of catalog fixtures for checkout tests.
type world struct {
	category *model.Category
	owner    *model.User
	voucher  *model.Voucher
	nominal  *model.Nominal
	payment  *model.Payment
	bank     *model.Bank
	vouchers *fakeVouchers
	catalog  *fakeCatalog
	txs      *fakeTxs
}

func newWorld() *world {
	category := &model.Category{ID: uuid.New(), Name: "Mobile"}
	owner := &model.User{ID: uuid.New(), Name: "Admin", PhoneNumber: "0812345678"}
	nominal := &model.Nominal{ID: uuid.New(), CoinName: "Gold", CoinQuantity: 100, Price: decimal.NewFromInt(100000)}
	voucher := &model.Voucher{
		ID:         uuid.New(),
		Name:       "Mobile Legends",
		Thumbnail:  "ml.png",
		Status:     model.VoucherStatusActive,
		CategoryID: &category.ID,
		Category:   category,
		UserID:     &owner.ID,
		User:       owner,
	}
	payment := &model.Payment{ID: uuid.New(), Type: "Transfer", Status: "Y"}
	bank := &model.Bank{ID: uuid.New(), Name: "Jane", BankName: "BCA", AccountNumber: "123"}

	return &world{
		category: category,
		owner:    owner,
		voucher:  voucher,
		nominal:  nominal,
		payment:  payment,
		bank:     bank,
		vouchers: &fakeVouchers{byID: map[uuid.UUID]*model.Voucher{voucher.ID: voucher}},
		catalog: &fakeCatalog{
			nominals:   map[uuid.UUID]*model.Nominal{nominal.ID: nominal},
			payments:   map[uuid.UUID]*model.Payment{payment.ID: payment},
			banks:      map[uuid.UUID]*model.Bank{bank.ID: bank},
			categories: []model.Category{*category},
		},
		txs: &fakeTxs{},
	}
}

func (w *world) input() CheckoutInput {
	return CheckoutInput{
		Voucher:     w.voucher.ID.String(),
		Nominal:     w.nominal.ID.String(),
		Payment:     w.payment.ID.String(),
		Bank:        w.bank.ID.String(),
		Name:        "Jane",
		AccountUser: "12345",
	}
}
