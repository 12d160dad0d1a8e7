// Package model derives the effective unavailable set of a property from its
// host blocks and the bookings that still hold dates.
package model

import (
	"slices"
	"time"

	"stayengine/shared/daterange"
)

const (
	SourceBlock   = "block"
	SourceBooking = "booking"

	ReasonReserved = "reserved"
	ReasonBlocked  = "blocked"
)

// Block is one entry of the effective unavailable set.
type Block struct {
	Range     daterange.DateRange
	Reason    string
	Source    string
	Reference string
}

// Label is the reason shown on a calendar date covered by the block.
func (b Block) Label() string {
	if b.Source == SourceBooking {
		return ReasonReserved
	}

	if b.Reason == "" {
		return ReasonBlocked
	}

	return b.Reason
}

// Conflicts returns the parts of candidate covered by blocks, sorted and merged.
func Conflicts(blocks []Block, candidate daterange.DateRange) []daterange.DateRange {
	ranges := make([]daterange.DateRange, 0, len(blocks))

	for _, block := range blocks {
		if shared, ok := block.Range.Intersect(candidate); ok {
			ranges = append(ranges, shared)
		}
	}

	return daterange.Normalize(ranges)
}

type UnavailableDate struct {
	Date   time.Time
	Reason string
}

// UnavailableDates expands blocks into one entry per date inside window.
// A host block's reason wins over a booking on the same date.
func UnavailableDates(blocks []Block, window daterange.DateRange) []UnavailableDate {
	labels := map[time.Time]string{}

	for _, block := range blocks {
		shared, ok := block.Range.Intersect(window)
		if !ok {
			continue
		}

		for _, date := range shared.Dates() {
			current, seen := labels[date]
			if !seen || (current == ReasonReserved && block.Source == SourceBlock) {
				labels[date] = block.Label()
			}
		}
	}

	dates := make([]UnavailableDate, 0, len(labels))
	for date, reason := range labels {
		dates = append(dates, UnavailableDate{Date: date, Reason: reason})
	}

	slices.SortFunc(dates, func(a, b UnavailableDate) int {
		return a.Date.Compare(b.Date)
	})

	return dates
}
