package model

import (
	"time"

	pricingModel "stayengine/internal/domains/pricing/model"
	"stayengine/shared/daterange"
	"stayengine/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "rental_bookings"
	EntityName = "booking"

	FieldID                 = "id"
	FieldPropertyID         = "property_id"
	FieldGuestID            = "guest_id"
	FieldHostID             = "host_id"
	FieldCheckInDate        = "check_in_date"
	FieldCheckOutDate       = "check_out_date"
	FieldStatus             = "status"
	FieldCancellationReason = "cancellation_reason"
	FieldConfirmedAt        = "confirmed_at"
	FieldCancelledAt        = "cancelled_at"
	FieldPaidAt             = "paid_at"
	FieldCompletedAt        = "completed_at"
	FieldCreatedAt          = "created_at"

	// ConstraintNoOverlap is the exclusion constraint guarding overlapping active bookings.
	ConstraintNoOverlap = "rental_bookings_no_overlap"
)

// PriceSnapshot is the price breakdown frozen into a booking when it is created.
type PriceSnapshot struct {
	NightlyRate decimal.Decimal `db:"nightly_rate"`
	TotalNights int             `db:"total_nights"`
	Subtotal    decimal.Decimal `db:"subtotal"`
	CleaningFee decimal.Decimal `db:"cleaning_fee"`
	ServiceFee  decimal.Decimal `db:"service_fee"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	Currency    string          `db:"currency"`
}

func NewPriceSnapshot(breakdown pricingModel.PriceBreakdown) PriceSnapshot {
	return PriceSnapshot{
		NightlyRate: breakdown.NightlyRate,
		TotalNights: breakdown.Nights,
		Subtotal:    breakdown.Subtotal,
		CleaningFee: breakdown.CleaningFee,
		ServiceFee:  breakdown.ServiceFee,
		TotalAmount: breakdown.Total,
		Currency:    breakdown.Currency,
	}
}

type Booking struct {
	ID                 string     `db:"id"`
	PropertyID         string     `db:"property_id"`
	GuestID            string     `db:"guest_id"`
	HostID             string     `db:"host_id"`
	CheckInDate        time.Time  `db:"check_in_date"`
	CheckOutDate       time.Time  `db:"check_out_date"`
	GuestsCount        int        `db:"guests_count"`
	SpecialRequests    string     `db:"special_requests"`
	Status             Status     `db:"status"`
	CancellationReason *string    `db:"cancellation_reason"`
	ConfirmedAt        *time.Time `db:"confirmed_at"`
	CancelledAt        *time.Time `db:"cancelled_at"`
	PaidAt             *time.Time `db:"paid_at"`
	CompletedAt        *time.Time `db:"completed_at"`
	PriceSnapshot
	model.Metadata
}

// Range is the stay as a half-open date range.
func (b Booking) Range() daterange.DateRange {
	return daterange.DateRange{Start: daterange.Day(b.CheckInDate), End: daterange.Day(b.CheckOutDate)}
}

func (b Booking) IsGuest(userID string) bool {
	return userID != "" && b.GuestID == userID
}

func (b Booking) IsHost(userID string) bool {
	return userID != "" && b.HostID == userID
}

func (b Booking) IsParticipant(userID string) bool {
	return b.IsGuest(userID) || b.IsHost(userID)
}

// InitialStatus is confirmed for instant-booking properties and pending otherwise.
func InitialStatus(instantBooking bool) Status {
	if instantBooking {
		return StatusConfirmed
	}

	return StatusPending
}
