// Package model defines the data models for the voucher top-up storefront.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts go out as JSON numbers, matching what storefront clients expect.
	decimal.MarshalJSONWithoutQuotes = true
}

// Category groups vouchers by game genre.
type Category struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// User is the back-office account that owns a voucher.
// It is distinct from Player, the storefront customer.
type User struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email,omitempty" db:"email"`
	PhoneNumber string    `json:"phoneNumber" db:"phone_number"`
}

// Nominal is a priced top-up tier (e.g. a coin package) for a voucher.
type Nominal struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	CoinName     string          `json:"coinName" db:"coin_name"`
	CoinQuantity int64           `json:"coinQuantity" db:"coin_quantity"`
	Price        decimal.Decimal `json:"price" db:"price"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
}

// Voucher is a game that can be topped up.
// Category, User and Nominals are only populated by queries that load relations.
type Voucher struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	Name       string      `json:"name" db:"name"`
	Status     string      `json:"status" db:"status"`
	Thumbnail  string      `json:"thumbnail" db:"thumbnail"`
	CategoryID *uuid.UUID  `json:"-" db:"category_id"`
	Category   *Category   `json:"category"`
	UserID     *uuid.UUID  `json:"-" db:"user_id"`
	User       *User       `json:"user,omitempty"`
	NominalIDs []uuid.UUID `json:"-"`
	Nominals   []Nominal   `json:"nominals,omitempty"`
	CreatedAt  time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time   `json:"updatedAt" db:"updated_at"`
}

// Voucher statuses.
const (
	VoucherStatusActive   = "Y"
	VoucherStatusInactive = "N"
)

// Payment is a payment method label (e.g. "Transfer").
type Payment struct {
	ID     uuid.UUID `json:"id" db:"id"`
	Type   string    `json:"type" db:"type"`
	Status string    `json:"status" db:"status"`
}

// Bank is a destination account a player pays into.
type Bank struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	BankName      string    `json:"bankName" db:"bank_name"`
	AccountNumber string    `json:"noRekening" db:"account_number"`
}

// Player is the authenticated storefront customer.
type Player struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Username    string    `json:"username" db:"username"`
	Email       string    `json:"email" db:"email"`
	Name        string    `json:"name" db:"name"`
	Avatar      string    `json:"avatar" db:"avatar"`
	PhoneNumber string    `json:"phoneNumber" db:"phone_number"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// PlayerProfile is the public projection returned by the profile endpoint.
type PlayerProfile struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Avatar      string    `json:"avatar"`
	PhoneNumber string    `json:"phoneNumber"`
}

// PlayerSummary is the subset returned after a profile edit.
type PlayerSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneNumber"`
	Avatar      string    `json:"avatar"`
}

// Profile returns the public projection of the player.
func (p *Player) Profile() PlayerProfile {
	return PlayerProfile{
		ID:          p.ID,
		Username:    p.Username,
		Email:       p.Email,
		Name:        p.Name,
		Avatar:      p.Avatar,
		PhoneNumber: p.PhoneNumber,
	}
}

// Summary returns the subset of fields exposed after a profile edit.
func (p *Player) Summary() PlayerSummary {
	return PlayerSummary{
		ID:          p.ID,
		Name:        p.Name,
		PhoneNumber: p.PhoneNumber,
		Avatar:      p.Avatar,
	}
}

// ProfileUpdate carries the profile fields a player may change.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name        *string
	PhoneNumber *string
	Avatar      *string
}

// IsEmpty reports whether the update changes nothing.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.PhoneNumber == nil && u.Avatar == nil
}
