package service

import (
	"github.com/google/uuid"

	"voucher-topup-api/internal/model"
	"voucher-topup-api/internal/pricing"
)

// BuildTransaction assembles a pending transaction from resolved references
// and a price quote. Snapshots are copied by value so later changes to the
// voucher, nominal, bank or owner never reach the record. A voucher without
// category or owner yields an empty category name and owner snapshot.
func BuildTransaction(refs *References, quote pricing.Quote, playerID uuid.UUID, name, accountUser string) *model.Transaction {
	v := refs.Voucher

	topup := model.VoucherTopupSnapshot{
		GameName:     v.Name,
		Thumbnail:    v.Thumbnail,
		CoinName:     refs.Nominal.CoinName,
		CoinQuantity: refs.Nominal.CoinQuantity,
		Price:        quote.Price,
	}

	tx := &model.Transaction{
		PlayerID:            playerID,
		Name:                name,
		AccountUser:         accountUser,
		Tax:                 quote.Tax,
		Value:               quote.Value,
		Status:              model.TxStatusPending,
		HistoryVoucherTopup: topup,
		HistoryPayment: model.PaymentSnapshot{
			Name:          refs.Bank.Name,
			Type:          refs.Payment.Type,
			BankName:      refs.Bank.BankName,
			AccountNumber: refs.Bank.AccountNumber,
		},
	}

	if v.Category != nil {
		id := v.Category.ID
		tx.CategoryID = &id
		tx.HistoryVoucherTopup.Category = v.Category.Name
	}

	if v.User != nil {
		id := v.User.ID
		tx.UserID = &id
		tx.HistoryUser = model.OwnerSnapshot{
			Name:        v.User.Name,
			PhoneNumber: v.User.PhoneNumber,
		}
	}

	return tx
}
