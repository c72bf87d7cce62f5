package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with precise decimal arithmetic.
// Money is immutable - all operations return new instances.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a new Money instance from an integer amount and an exponent.
// For example: NewMoney(1999, -2) represents $19.99
func NewMoney(value int64, exp int32) Money {
	return Money{amount: decimal.New(value, exp)}
}

// NewMoneyFromDecimal parses Money from a decimal string.
// For example: "19.99", "100", "0.01". Surrounding whitespace is ignored.
func NewMoneyFromDecimal(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, err
	}
	return Money{amount: d}, nil
}

// Zero returns a Money instance representing zero.
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// IsZero returns true if the money amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative returns true if the money amount is negative.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Equals returns true if m equals other.
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// HasCents reports whether m is representable with at most two fractional
// digits. Trailing zeros do not count: 19.990 has cents, 19.999 does not.
func (m Money) HasCents() bool {
	return m.amount.Equal(m.amount.Truncate(2))
}

// String returns the amount with two fractional digits, the format the
// remote catalog expects for variant prices. Callers check HasCents first;
// String never rounds a value that passed validation.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
