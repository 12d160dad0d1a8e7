// Package money holds the decimal helpers shared by pricing and payouts.
// Amounts are never represented as floats.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits every monetary amount is rounded to.
const Places int32 = 2

var (
	ErrInvalidAmount  = errors.New("amount must be a decimal number")
	ErrNegativeAmount = errors.New("amount must not be negative")
)

// RoundHalfUp rounds d to the given number of places. Exact halves move away from zero, which is
// half up for the non-negative amounts this package deals in.
func RoundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// Round rounds d to cents.
func Round(d decimal.Decimal) decimal.Decimal {
	return RoundHalfUp(d, Places)
}

// Format renders an amount with exactly two fractional digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// Parse reads a non-negative decimal amount.
func Parse(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNegativeAmount, value)
	}

	return d, nil
}
