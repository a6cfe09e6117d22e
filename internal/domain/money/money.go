// Package money provides the Money value object used for all order amounts.
//
// Money is immutable: every operation returns a new value. Amounts are
// decimal (never floats) and can never be negative.
package money

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency code is given.
const DefaultCurrency = "USD"

// Sentinel errors for money operations.
var (
	ErrNegativeAmount   = errors.New("amount cannot be negative")
	ErrCurrencyMismatch = errors.New("cannot add money with different currencies")
)

// Money is an amount in a single currency.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// New creates a Money value. An empty currency defaults to DefaultCurrency.
// It fails with ErrNegativeAmount when amount is below zero.
func New(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{amount: amount, currency: currency}, nil
}

// FromString creates a Money value from a decimal string like "10.99".
func FromString(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errors.Wrapf(err, "parse amount %q", amount)
	}
	return New(d, currency)
}

// Zero returns the zero amount in the given currency.
func Zero(currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() string {
	return m.currency
}

// Add returns the sum of m and other. It fails with ErrCurrencyMismatch when
// the currency codes differ.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Mul returns m scaled by quantity. Quantity zero yields the zero amount;
// a negative quantity fails with ErrNegativeAmount since the result could
// not be represented.
func (m Money) Mul(quantity int64) (Money, error) {
	if quantity < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{
		amount:   m.amount.Mul(decimal.NewFromInt(quantity)),
		currency: m.currency,
	}, nil
}

// Equal reports whether two Money values have the same currency and amount.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// String renders the value as "<currency> <amount>" with two decimal places,
// e.g. "USD 38.45".
func (m Money) String() string {
	return m.currency + " " + m.amount.StringFixed(2)
}
