// Package model holds the pure price computation used for quotes and booking snapshots.
package model

import (
	"stayengine/shared/money"

	"github.com/shopspring/decimal"
)

type PriceBreakdown struct {
	Nights      int
	NightlyRate decimal.Decimal
	Subtotal    decimal.Decimal
	CleaningFee decimal.Decimal
	ServiceFee  decimal.Decimal
	Total       decimal.Decimal
	Currency    string
}

// Quote prices a stay. The cleaning fee is charged once per stay and the service fee
// is the subtotal times feeRate, rounded half-up to cents.
func Quote(nightlyRate, cleaningFee decimal.Decimal, nights int, feeRate decimal.Decimal, currency string) PriceBreakdown {
	subtotal := nightlyRate.Mul(decimal.NewFromInt(int64(nights)))
	serviceFee := money.Round(subtotal.Mul(feeRate))

	return PriceBreakdown{
		Nights:      nights,
		NightlyRate: nightlyRate,
		Subtotal:    subtotal,
		CleaningFee: cleaningFee,
		ServiceFee:  serviceFee,
		Total:       subtotal.Add(cleaningFee).Add(serviceFee),
		Currency:    currency,
	}
}
