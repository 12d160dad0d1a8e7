package model

import (
	"fmt"
	"slices"
	"time"

	bookingModel "stayengine/internal/domains/booking/model"
	"stayengine/shared/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TableName  = "rental_owner_payouts"
	EntityName = "payout"

	FieldID           = "id"
	FieldBookingID    = "booking_id"
	FieldHostID       = "host_id"
	FieldStatus       = "status"
	FieldStatusReason = "status_reason"
	FieldExportedAt   = "exported_at"
	FieldCreatedAt    = "created_at"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusPaid     Status = "paid"
	StatusRejected Status = "rejected"
)

var statuses = []Status{StatusPending, StatusApproved, StatusPaid, StatusRejected}

var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusPaid, StatusRejected},
	StatusPaid:     {},
	StatusRejected: {},
}

func ParseStatus(value string) (Status, error) {
	status := Status(value)
	if !slices.Contains(statuses, status) {
		return "", fmt.Errorf("unknown payout status %q", value)
	}

	return status, nil
}

func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

type Payout struct {
	ID           string          `db:"id"`
	BookingID    string          `db:"booking_id"`
	PropertyID   string          `db:"property_id"`
	HostID       string          `db:"host_id"`
	GrossAmount  decimal.Decimal `db:"gross_amount"`
	ServiceFee   decimal.Decimal `db:"service_fee"`
	NetAmount    decimal.Decimal `db:"net_amount"`
	Currency     string          `db:"currency"`
	Status       Status          `db:"status"`
	StatusReason *string         `db:"status_reason"`
	ExportedAt   *time.Time      `db:"exported_at"`
	model.Metadata
}

// Amounts derives the host payout from a booking's frozen price snapshot.
// gross covers the nightly subtotal and the cleaning fee; the service fee is reused as-is.
func Amounts(snapshot bookingModel.PriceSnapshot) (gross, serviceFee, net decimal.Decimal) {
	gross = snapshot.Subtotal.Add(snapshot.CleaningFee)
	serviceFee = snapshot.ServiceFee
	net = gross.Sub(serviceFee)

	return gross, serviceFee, net
}

func NewFromBooking(booking bookingModel.Booking, user string, now time.Time) Payout {
	gross, serviceFee, net := Amounts(booking.PriceSnapshot)

	return Payout{
		ID:          uuid.NewString(),
		BookingID:   booking.ID,
		PropertyID:  booking.PropertyID,
		HostID:      booking.HostID,
		GrossAmount: gross,
		ServiceFee:  serviceFee,
		NetAmount:   net,
		Currency:    booking.Currency,
		Status:      StatusPending,
		Metadata:    model.NewMetadata(user, now),
	}
}
