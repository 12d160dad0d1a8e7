package model

import (
	"time"

	"stayengine/shared/daterange"
	"stayengine/shared/money"
)

const (
	EventCreated   = "booking.created"
	EventConfirmed = "booking.confirmed"
	EventRejected  = "booking.rejected"
	EventCancelled = "booking.cancelled"
	EventPaid      = "booking.paid"
	EventCompleted = "booking.completed"
)

var statusEvents = map[Status]string{
	StatusConfirmed: EventConfirmed,
	StatusRejected:  EventRejected,
	StatusCancelled: EventCancelled,
	StatusPaid:      EventPaid,
	StatusCompleted: EventCompleted,
}

type Event struct {
	Type        string    `json:"type"`
	BookingID   string    `json:"booking_id"`
	PropertyID  string    `json:"property_id"`
	GuestID     string    `json:"guest_id"`
	HostID      string    `json:"host_id"`
	Status      string    `json:"status"`
	CheckIn     string    `json:"check_in"`
	CheckOut    string    `json:"check_out"`
	TotalAmount string    `json:"total_amount"`
	Currency    string    `json:"currency"`
	Reason      string    `json:"reason,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// EventFor returns the event published when a booking enters status.
func EventFor(status Status) string {
	return statusEvents[status]
}

func NewEvent(eventType string, booking Booking, at time.Time) Event {
	event := Event{
		Type:        eventType,
		BookingID:   booking.ID,
		PropertyID:  booking.PropertyID,
		GuestID:     booking.GuestID,
		HostID:      booking.HostID,
		Status:      string(booking.Status),
		CheckIn:     booking.CheckInDate.Format(daterange.Layout),
		CheckOut:    booking.CheckOutDate.Format(daterange.Layout),
		TotalAmount: money.Format(booking.TotalAmount),
		Currency:    booking.Currency,
		OccurredAt:  at,
	}

	if booking.CancellationReason != nil {
		event.Reason = *booking.CancellationReason
	}

	return event
}
