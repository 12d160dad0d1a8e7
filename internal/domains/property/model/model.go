package model

import (
	"fmt"
	"time"

	"stayengine/shared/daterange"
	"stayengine/shared/failure"
	"stayengine/shared/model"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	TableName  = "rental_properties"
	EntityName = "property"

	FieldID             = "id"
	FieldOwnerID        = "owner_id"
	FieldTitle          = "title"
	FieldLocation       = "location"
	FieldNightlyRate    = "nightly_rate"
	FieldMaxGuests      = "max_guests"
	FieldInstantBooking = "instant_booking"
	FieldActive         = "active"
	FieldCreatedAt      = "created_at"

	DefaultMinimumNights = 1
	DefaultMaximumNights = 30
	DefaultCheckInTime   = "15:00"
	DefaultCheckOutTime  = "11:00"
)

type Property struct {
	ID             string          `db:"id"`
	OwnerID        string          `db:"owner_id"`
	Title          string          `db:"title"`
	Description    string          `db:"description"`
	Location       string          `db:"location"`
	NightlyRate    decimal.Decimal `db:"nightly_rate"`
	CleaningFee    decimal.Decimal `db:"cleaning_fee"`
	Currency       string          `db:"currency"`
	MaxGuests      int             `db:"max_guests"`
	Bedrooms       int             `db:"bedrooms"`
	Bathrooms      int             `db:"bathrooms"`
	Amenities      pq.StringArray  `db:"amenities"`
	CheckInTime    string          `db:"check_in_time"`
	CheckOutTime   string          `db:"check_out_time"`
	MinimumNights  int             `db:"minimum_nights"`
	MaximumNights  int             `db:"maximum_nights"`
	InstantBooking bool            `db:"instant_booking"`
	Active         bool            `db:"active"`
	model.Metadata
}

func (p Property) IsOwnedBy(userID string) bool {
	return p.OwnerID != "" && p.OwnerID == userID
}

// ValidateStay checks the range against the stay rules of the property.
// today is the caller's current date; check-in must fall strictly after it.
func (p Property) ValidateStay(stay daterange.DateRange, today time.Time) error {
	if err := stay.Validate(); err != nil {
		return failure.InvalidDateRange("check-out date must be after check-in date")
	}

	if !stay.Start.After(daterange.Day(today)) {
		return failure.InvalidDateRange("check-in date must be in the future")
	}

	nights := stay.Nights()

	if nights < p.MinimumNights {
		return failure.InvalidDateRange(fmt.Sprintf("stay must be at least %d nights", p.MinimumNights))
	}

	if p.MaximumNights > 0 && nights > p.MaximumNights {
		return failure.InvalidDateRange(fmt.Sprintf("stay must be at most %d nights", p.MaximumNights))
	}

	return nil
}
