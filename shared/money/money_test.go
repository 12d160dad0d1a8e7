package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayengine/shared/money"
)

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "21", want: "21.00"},
		{in: "0.005", want: "0.01"},
		{in: "0.004", want: "0.00"},
		{in: "1.2345", want: "1.23"},
		{in: "1.235", want: "1.24"},
		{in: "7.7", want: "7.70"},
		{in: "2.675", want: "2.68"},
		{in: "-1.235", want: "-1.24"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := money.RoundHalfUp(decimal.RequireFromString(tt.in), 2)
			assert.Equal(t, tt.want, money.Format(got))
		})
	}
}

func TestRound_ServiceFeeOnOddSubtotal(t *testing.T) {
	// 7% of 150.50 is 10.535, which must round up to 10.54.
	fee := money.Round(decimal.RequireFromString("150.50").Mul(decimal.RequireFromString("0.07")))

	assert.True(t, fee.Equal(decimal.RequireFromString("10.54")), fee.String())
}

func TestParse(t *testing.T) {
	d, err := money.Parse("100.10")
	require.NoError(t, err)
	assert.Equal(t, "100.10", money.Format(d))

	_, err = money.Parse("abc")
	assert.ErrorIs(t, err, money.ErrInvalidAmount)

	_, err = money.Parse("-1")
	assert.ErrorIs(t, err, money.ErrNegativeAmount)
}
