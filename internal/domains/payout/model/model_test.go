package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingModel "stayengine/internal/domains/booking/model"
	"stayengine/internal/domains/payout/model"
)

func TestAmounts(t *testing.T) {
	snapshot := bookingModel.PriceSnapshot{
		NightlyRate: decimal.NewFromInt(100),
		TotalNights: 3,
		Subtotal:    decimal.NewFromInt(300),
		CleaningFee: decimal.NewFromInt(20),
		ServiceFee:  decimal.RequireFromString("21.00"),
		TotalAmount: decimal.RequireFromString("341.00"),
	}

	gross, fee, net := model.Amounts(snapshot)

	assert.Equal(t, "320.00", gross.StringFixed(2))
	assert.Equal(t, "21.00", fee.StringFixed(2))
	assert.Equal(t, "299.00", net.StringFixed(2))
}

func TestNewFromBooking(t *testing.T) {
	now := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	booking := bookingModel.Booking{
		ID:         "booking-1",
		PropertyID: "property-1",
		HostID:     "host-1",
		PriceSnapshot: bookingModel.PriceSnapshot{
			Subtotal:    decimal.RequireFromString("150.50"),
			CleaningFee: decimal.Zero,
			ServiceFee:  decimal.RequireFromString("10.54"),
			Currency:    "USDT",
		},
	}

	payout := model.NewFromBooking(booking, "system", now)

	assert.NotEmpty(t, payout.ID)
	assert.Equal(t, model.StatusPending, payout.Status)
	assert.Equal(t, "host-1", payout.HostID)
	assert.Equal(t, "150.50", payout.GrossAmount.StringFixed(2))
	assert.Equal(t, "139.96", payout.NetAmount.StringFixed(2))
	assert.Equal(t, "USDT", payout.Currency)
}

func TestStatus(t *testing.T) {
	status, err := model.ParseStatus("approved")
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, status)

	_, err = model.ParseStatus("settled")
	assert.Error(t, err)

	assert.True(t, model.StatusPending.CanTransitionTo(model.StatusApproved))
	assert.True(t, model.StatusPending.CanTransitionTo(model.StatusRejected))
	assert.True(t, model.StatusApproved.CanTransitionTo(model.StatusPaid))
	assert.False(t, model.StatusPending.CanTransitionTo(model.StatusPaid))
	assert.False(t, model.StatusPaid.CanTransitionTo(model.StatusRejected))
}
