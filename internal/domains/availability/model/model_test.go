package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayengine/internal/domains/availability/model"
	"stayengine/shared/daterange"
)

func rng(t *testing.T, start, end string) daterange.DateRange {
	t.Helper()

	dr, err := daterange.Parse(start, end)
	require.NoError(t, err)

	return dr
}

func TestConflicts(t *testing.T) {
	booked := model.Block{Range: rng(t, "2024-06-10", "2024-06-13"), Source: model.SourceBooking, Reference: "booking-1"}

	tests := []struct {
		name      string
		blocks    []model.Block
		candidate daterange.DateRange
		want      []string
	}{
		{
			name:      "partial overlap is clipped to the candidate",
			blocks:    []model.Block{booked},
			candidate: rng(t, "2024-06-12", "2024-06-15"),
			want:      []string{"[2024-06-12, 2024-06-13)"},
		},
		{
			name:      "checkout day equals next check-in",
			blocks:    []model.Block{booked},
			candidate: rng(t, "2024-06-13", "2024-06-16"),
			want:      []string{},
		},
		{
			name:      "stay ending on an existing check-in",
			blocks:    []model.Block{booked},
			candidate: rng(t, "2024-06-08", "2024-06-10"),
			want:      []string{},
		},
		{
			name: "adjacent blocks are merged",
			blocks: []model.Block{
				booked,
				{Range: rng(t, "2024-06-13", "2024-06-14"), Source: model.SourceBlock, Reason: "cleaning"},
				{Range: rng(t, "2024-06-20", "2024-06-22"), Source: model.SourceBlock},
			},
			candidate: rng(t, "2024-06-11", "2024-06-21"),
			want:      []string{"[2024-06-11, 2024-06-14)", "[2024-06-20, 2024-06-21)"},
		},
		{
			name:      "no blocks",
			candidate: rng(t, "2024-06-11", "2024-06-21"),
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.Conflicts(tt.blocks, tt.candidate)

			rendered := make([]string, len(got))
			for i, r := range got {
				rendered[i] = r.String()
			}

			assert.Equal(t, tt.want, rendered)
		})
	}
}

func TestUnavailableDates_HostBlock(t *testing.T) {
	blocks := []model.Block{
		{Range: rng(t, "2024-07-01", "2024-07-05"), Source: model.SourceBlock, Reason: "maintenance"},
	}

	dates := model.UnavailableDates(blocks, rng(t, "2024-07-01", "2024-08-01"))

	require.Len(t, dates, 4)

	for i, want := range []string{"2024-07-01", "2024-07-02", "2024-07-03", "2024-07-04"} {
		assert.Equal(t, want, dates[i].Date.Format(daterange.Layout))
		assert.Equal(t, "maintenance", dates[i].Reason)
	}
}

func TestUnavailableDates_MixedSources(t *testing.T) {
	blocks := []model.Block{
		{Range: rng(t, "2024-06-28", "2024-07-02"), Source: model.SourceBooking},
		{Range: rng(t, "2024-07-01", "2024-07-03"), Source: model.SourceBlock},
	}

	dates := model.UnavailableDates(blocks, rng(t, "2024-07-01", "2024-08-01"))

	require.Len(t, dates, 2)
	assert.Equal(t, "2024-07-01", dates[0].Date.Format(daterange.Layout))
	assert.Equal(t, model.ReasonBlocked, dates[0].Reason)
	assert.Equal(t, "2024-07-02", dates[1].Date.Format(daterange.Layout))
	assert.Equal(t, model.ReasonBlocked, dates[1].Reason)
}

func TestUnavailableDates_BookingOnly(t *testing.T) {
	blocks := []model.Block{{Range: rng(t, "2024-06-10", "2024-06-13"), Source: model.SourceBooking}}

	dates := model.UnavailableDates(blocks, rng(t, "2024-06-11", "2024-06-30"))

	require.Len(t, dates, 2)
	assert.Equal(t, model.ReasonReserved, dates[0].Reason)
	assert.Equal(t, "2024-06-11", dates[0].Date.Format(daterange.Layout))
}
