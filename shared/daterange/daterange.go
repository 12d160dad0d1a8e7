// Package daterange models half-open calendar date intervals [Start, End).
//
// Dates are normalised to midnight UTC so that night counts and overlap checks
// never drift across daylight saving changes. A range is only constructed through
// New or Parse, which guarantee End is after Start.
package daterange

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"
)

const (
	Layout = time.DateOnly

	day = 24 * time.Hour
)

var (
	ErrInvalidRange = errors.New("end date must be after start date")
	ErrInvalidDate  = errors.New("date must use the YYYY-MM-DD format")
)

type DateRange struct {
	Start time.Time
	End   time.Time
}

// Day truncates t to its calendar date, keeping the wall clock date of t's location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into a calendar date.
func ParseDay(value string) (time.Time, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}

	return t, nil
}

func New(start, end time.Time) (DateRange, error) {
	dr := DateRange{Start: Day(start), End: Day(end)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}

	return dr, nil
}

func Parse(start, end string) (DateRange, error) {
	startDay, err := ParseDay(start)
	if err != nil {
		return DateRange{}, err
	}

	endDay, err := ParseDay(end)
	if err != nil {
		return DateRange{}, err
	}

	return New(startDay, endDay)
}

func (dr DateRange) Validate() error {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ErrInvalidRange
	}

	if !dr.End.After(dr.Start) {
		return ErrInvalidRange
	}

	return nil
}

func (dr DateRange) IsZero() bool {
	return dr.Start.IsZero() && dr.End.IsZero()
}

// Nights is the number of nights covered, which is also the number of dates in the range.
func (dr DateRange) Nights() int {
	return int(dr.End.Sub(dr.Start) / day)
}

// Overlaps uses half-open semantics: a range ending on d does not overlap one starting on d.
func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.Start.Before(other.End) && other.Start.Before(dr.End)
}

func (dr DateRange) Contains(other DateRange) bool {
	return !other.Start.Before(dr.Start) && !other.End.After(dr.End)
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	d := Day(t)

	return !d.Before(dr.Start) && d.Before(dr.End)
}

func (dr DateRange) Adjacent(other DateRange) bool {
	return dr.End.Equal(other.Start) || dr.Start.Equal(other.End)
}

// Intersect returns the shared part of two ranges, if any.
func (dr DateRange) Intersect(other DateRange) (DateRange, bool) {
	if !dr.Overlaps(other) {
		return DateRange{}, false
	}

	start := dr.Start
	if other.Start.After(start) {
		start = other.Start
	}

	end := dr.End
	if other.End.Before(end) {
		end = other.End
	}

	return DateRange{Start: start, End: end}, true
}

func (dr DateRange) Merge(other DateRange) (DateRange, bool) {
	if !dr.Overlaps(other) && !dr.Adjacent(other) {
		return DateRange{}, false
	}

	start := dr.Start
	if other.Start.Before(start) {
		start = other.Start
	}

	end := dr.End
	if other.End.After(end) {
		end = other.End
	}

	return DateRange{Start: start, End: end}, true
}

// Dates lists every calendar date in the range, excluding End.
func (dr DateRange) Dates() []time.Time {
	dates := make([]time.Time, 0, max(dr.Nights(), 0))

	for d := dr.Start; d.Before(dr.End); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}

	return dates
}

func (dr DateRange) String() string {
	return fmt.Sprintf("[%s, %s)", dr.Start.Format(Layout), dr.End.Format(Layout))
}

type rangeJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (dr DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(rangeJSON{Start: dr.Start.Format(Layout), End: dr.End.Format(Layout)}) //nolint:wrapcheck
}

func (dr *DateRange) UnmarshalJSON(data []byte) error {
	var raw rangeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode date range: %w", err)
	}

	parsed, err := Parse(raw.Start, raw.End)
	if err != nil {
		return err
	}

	*dr = parsed

	return nil
}

// Normalize sorts ranges by start date and merges overlapping or adjacent ones.
func Normalize(ranges []DateRange) []DateRange {
	if len(ranges) == 0 {
		return []DateRange{}
	}

	sorted := slices.Clone(ranges)
	slices.SortFunc(sorted, func(a, b DateRange) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}

		return a.End.Compare(b.End)
	})

	merged := []DateRange{sorted[0]}

	for _, current := range sorted[1:] {
		last := merged[len(merged)-1]

		if m, ok := last.Merge(current); ok {
			merged[len(merged)-1] = m

			continue
		}

		merged = append(merged, current)
	}

	return merged
}
