// Property-based tests for the transaction snapshot builder.
package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"pgregory.net/rapid"

	"voucher-topup-api/internal/model"
	"voucher-topup-api/internal/pricing"
)

// TestSnapshotIsolatedFromSourcesProperty checks that a built transaction
// keeps the values it was built from after every source entity changes.
func TestSnapshotIsolatedFromSourcesProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		price := decimal.NewFromInt(rapid.Int64Range(0, 10_000_000).Draw(t, "price"))
		gameName := rapid.StringMatching(`[A-Za-z ]{1,20}`).Draw(t, "gameName")
		categoryName := rapid.StringMatching(`[A-Za-z]{1,10}`).Draw(t, "category")
		ownerName := rapid.StringMatching(`[A-Za-z]{1,10}`).Draw(t, "owner")
		withCategory := rapid.Bool().Draw(t, "withCategory")
		withOwner := rapid.Bool().Draw(t, "withOwner")

		voucher := &model.Voucher{ID: uuid.New(), Name: gameName, Thumbnail: "t.png"}
		if withCategory {
			voucher.Category = &model.Category{ID: uuid.New(), Name: categoryName}
		}
		if withOwner {
			voucher.User = &model.User{ID: uuid.New(), Name: ownerName, PhoneNumber: "0812345678"}
		}
		refs := &References{
			Voucher: voucher,
			Nominal: &model.Nominal{ID: uuid.New(), CoinName: "Gold", CoinQuantity: 10, Price: price},
			Payment: &model.Payment{ID: uuid.New(), Type: "Transfer"},
			Bank:    &model.Bank{ID: uuid.New(), Name: "Jane", BankName: "BCA", AccountNumber: "123"},
		}

		quote, err := pricing.Default().Quote(price)
		if err != nil {
			t.Fatalf("quote: %v", err)
		}
		tx := BuildTransaction(refs, quote, uuid.New(), "Jane", "acc")

		var categoryID *uuid.UUID
		if withCategory {
			id := voucher.Category.ID
			categoryID = &id
			voucher.Category.Name = "changed"
			voucher.Category.ID = uuid.New()
		}
		if withOwner {
			voucher.User.Name = "changed"
		}
		voucher.Name = "changed"
		refs.Nominal.Price = price.Add(decimal.NewFromInt(1))
		refs.Bank.AccountNumber = "999"

		if !tx.HistoryVoucherTopup.Price.Equal(price) {
			t.Fatalf("price changed: %s != %s", tx.HistoryVoucherTopup.Price, price)
		}
		if tx.HistoryVoucherTopup.GameName != gameName {
			t.Fatalf("game name changed: %q", tx.HistoryVoucherTopup.GameName)
		}
		if tx.HistoryPayment.AccountNumber != "123" {
			t.Fatalf("account number changed: %q", tx.HistoryPayment.AccountNumber)
		}
		if withCategory {
			if tx.HistoryVoucherTopup.Category != categoryName || tx.CategoryID == nil || *tx.CategoryID != *categoryID {
				t.Fatalf("category snapshot changed: %q %v", tx.HistoryVoucherTopup.Category, tx.CategoryID)
			}
		} else if tx.HistoryVoucherTopup.Category != "" || tx.CategoryID != nil {
			t.Fatalf("expected empty category, got %q %v", tx.HistoryVoucherTopup.Category, tx.CategoryID)
		}
		if withOwner {
			if tx.HistoryUser.Name != ownerName || tx.UserID == nil {
				t.Fatalf("owner snapshot changed: %+v", tx.HistoryUser)
			}
		} else if tx.HistoryUser != (model.OwnerSnapshot{}) || tx.UserID != nil {
			t.Fatalf("expected empty owner, got %+v", tx.HistoryUser)
		}
		if !tx.Tax.Add(tx.Value).Equal(price) {
			t.Fatalf("tax + value != price: %s + %s != %s", tx.Tax, tx.Value, price)
		}
	})
}
