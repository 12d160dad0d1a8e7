package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayengine/internal/domains/booking/model"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from model.Status
		to   model.Status
		want bool
	}{
		{from: model.StatusPending, to: model.StatusConfirmed, want: true},
		{from: model.StatusPending, to: model.StatusRejected, want: true},
		{from: model.StatusPending, to: model.StatusCancelled, want: true},
		{from: model.StatusPending, to: model.StatusPaid, want: false},
		{from: model.StatusConfirmed, to: model.StatusPaid, want: true},
		{from: model.StatusConfirmed, to: model.StatusCancelled, want: true},
		{from: model.StatusConfirmed, to: model.StatusRejected, want: false},
		{from: model.StatusPaid, to: model.StatusCompleted, want: true},
		{from: model.StatusPaid, to: model.StatusCancelled, want: false},
		{from: model.StatusRejected, to: model.StatusConfirmed, want: false},
		{from: model.StatusCancelled, to: model.StatusPending, want: false},
		{from: model.StatusCompleted, to: model.StatusPaid, want: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_Classification(t *testing.T) {
	assert.True(t, model.StatusRejected.IsTerminal())
	assert.True(t, model.StatusCancelled.IsTerminal())
	assert.True(t, model.StatusCompleted.IsTerminal())
	assert.False(t, model.StatusPaid.IsTerminal())

	assert.True(t, model.StatusPending.HoldsDates())
	assert.True(t, model.StatusConfirmed.HoldsDates())
	assert.True(t, model.StatusPaid.HoldsDates())
	assert.False(t, model.StatusCancelled.HoldsDates())
	assert.False(t, model.StatusCompleted.HoldsDates())

	assert.True(t, model.StatusRejected.RequiresReason())
	assert.False(t, model.StatusConfirmed.RequiresReason())
	assert.ElementsMatch(t, []string{"pending", "confirmed", "paid"}, model.HoldingStatuses())
}

func TestParseStatus(t *testing.T) {
	status, err := model.ParseStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, status)

	_, err = model.ParseStatus("archived")
	assert.Error(t, err)
}

func TestBooking_Range(t *testing.T) {
	booking := model.Booking{
		CheckInDate:  time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, 3, booking.Range().Nights())
	assert.Equal(t, "[2024-06-10, 2024-06-13)", booking.Range().String())
}

func TestBooking_Participants(t *testing.T) {
	booking := model.Booking{GuestID: "guest-1", HostID: "host-1"}

	assert.True(t, booking.IsGuest("guest-1"))
	assert.True(t, booking.IsHost("host-1"))
	assert.True(t, booking.IsParticipant("host-1"))
	assert.False(t, booking.IsParticipant("someone"))
	assert.False(t, booking.IsParticipant(""))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, model.StatusConfirmed, model.InitialStatus(true))
	assert.Equal(t, model.StatusPending, model.InitialStatus(false))
}
