package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction statuses. Only pending is written at checkout; the others are
// set by payment confirmation outside this service.
const (
	TxStatusPending = "pending"
	TxStatusSuccess = "success"
	TxStatusFailed  = "failed"
)

// VoucherTopupSnapshot freezes the purchased voucher and nominal at checkout time.
type VoucherTopupSnapshot struct {
	GameName     string          `json:"gameName"`
	Category     string          `json:"category"`
	Thumbnail    string          `json:"thumbnail"`
	CoinName     string          `json:"coinName"`
	CoinQuantity int64           `json:"coinQuantity"`
	Price        decimal.Decimal `json:"price"`
}

// PaymentSnapshot freezes the payment method and destination bank.
type PaymentSnapshot struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"noRekening"`
}

// OwnerSnapshot freezes the voucher owner's contact details.
// Both fields are empty when the voucher had no owner.
type OwnerSnapshot struct {
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// Transaction is an immutable checkout record. The embedded snapshots are
// copies taken at creation and are never re-read from their sources.
// CategoryID and UserID point at the voucher's category and owner, not at the
// purchasing player.
type Transaction struct {
	ID                  uuid.UUID            `json:"id" db:"id"`
	PlayerID            uuid.UUID            `json:"player" db:"player_id"`
	Name                string               `json:"name" db:"name"`
	AccountUser         string               `json:"accountUser" db:"account_user"`
	Tax                 decimal.Decimal      `json:"tax" db:"tax"`
	Value               decimal.Decimal      `json:"value" db:"value"`
	Status              string               `json:"status" db:"status"`
	HistoryVoucherTopup VoucherTopupSnapshot `json:"historyVoucherTopup" db:"history_voucher_topup"`
	HistoryPayment      PaymentSnapshot      `json:"historyPayment" db:"history_payment"`
	HistoryUser         OwnerSnapshot        `json:"historyUser" db:"history_user"`
	CategoryID          *uuid.UUID           `json:"categoryId,omitempty" db:"category_id"`
	Category            *Category            `json:"category,omitempty"`
	UserID              *uuid.UUID           `json:"user,omitempty" db:"user_id"`
	CreatedAt           time.Time            `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time            `json:"updatedAt" db:"updated_at"`
}

// TransactionFilter narrows transaction queries. Zero values match everything.
type TransactionFilter struct {
	// Status is matched as a case-insensitive substring.
	Status string
	// PlayerID is matched exactly when set.
	PlayerID *uuid.UUID
}

// CategoryValue is the summed transaction value for one voucher category.
// Name is filled in by the caller from the category list and stays empty
// when the category no longer exists.
type CategoryValue struct {
	CategoryID *uuid.UUID      `json:"_id"`
	Name       string          `json:"name,omitempty"`
	Value      decimal.Decimal `json:"value"`
}

// CheckoutRequest is the validated body of a checkout call.
type CheckoutRequest struct {
	VoucherID   uuid.UUID
	NominalID   uuid.UUID
	PaymentID   uuid.UUID
	BankID      uuid.UUID
	Name        string
	AccountUser string
}
