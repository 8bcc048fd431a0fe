package kernel

import (
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNegative indicates an attempt to construct a negative monetary amount.
var ErrMoneyIsNegative = errs.NewValueIsInvalidError("money amount cannot be negative")

// Money is a value object that represents a non-negative monetary amount.
// It wraps github.com/shopspring/decimal to keep price arithmetic exact; float
// rounding must never leak into balances or order totals.
//
// The zero value of Money is a valid zero amount. All arithmetic returns new
// values; Money is immutable and thread-safe.
//
// Example usage:
//
//	price, _ := kernel.MoneyFromString("299.00")
//	total := price.MulInt(2) // 598.00
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns the zero monetary amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney creates a Money from a decimal amount.
// Returns ErrMoneyIsNegative for negative amounts.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrMoneyIsNegative
	}
	return Money{amount: amount}, nil
}

// MoneyFromString parses a Money from its decimal string representation,
// e.g. "1197" or "299.50". Used when reading amounts from configuration and
// request payloads.
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount", err)
	}
	return NewMoney(amount)
}

// MoneyFromInt creates a Money from a whole number of currency units.
func MoneyFromInt(units int64) (Money, error) {
	return NewMoney(decimal.NewFromInt(units))
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of two amounts.
// Returns ErrMoneyIsNegative if the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, ErrMoneyIsNegative
	}
	return Money{amount: result}, nil
}

// MulInt returns the amount multiplied by a non-negative integer factor,
// e.g. a unit price times a line quantity.
func (m Money) MulInt(factor int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(factor)))}
}

// GreaterThanOrEqual reports whether m >= other.
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two amounts for numeric equality regardless of exponent.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal returns the underlying decimal amount for persistence mapping.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String returns the amount formatted with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
