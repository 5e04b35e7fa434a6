// Package pricing splits a nominal's price into tax and net value.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// DefaultTaxPercent is the checkout tax rate applied to every nominal price.
const DefaultTaxPercent = 10

// ErrInvalidPrice is returned for prices below zero.
var ErrInvalidPrice = errors.New("price must be a non-negative number")

// Quote is the result of pricing a single nominal.
// Tax + Value always equals Price exactly.
type Quote struct {
	Price decimal.Decimal
	Tax   decimal.Decimal
	Value decimal.Decimal
}

// Calculator applies a fixed percentage tax. The rate is set once at
// construction and cannot be changed per call.
type Calculator struct {
	rate decimal.Decimal
}

// New creates a Calculator charging percent/100 of the price as tax.
func New(percent int64) *Calculator {
	return &Calculator{rate: decimal.New(percent, -2)}
}

// Default creates a Calculator with DefaultTaxPercent.
func Default() *Calculator {
	return New(DefaultTaxPercent)
}

// Rate returns the tax rate as a fraction (0.1 for 10%).
func (c *Calculator) Rate() decimal.Decimal {
	return c.rate
}

// Quote computes tax = price * rate and value = price - tax.
func (c *Calculator) Quote(price decimal.Decimal) (Quote, error) {
	if price.IsNegative() {
		return Quote{}, ErrInvalidPrice
	}

	tax := price.Mul(c.rate)
	return Quote{
		Price: price,
		Tax:   tax,
		Value: price.Sub(tax),
	}, nil
}
