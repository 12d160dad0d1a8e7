package model

import (
	"time"

	"stayengine/shared/money"
)

const (
	EventRecorded      = "payout.recorded"
	EventStatusChanged = "payout.status_changed"
	EventExported      = "payout.exported"
)

type Event struct {
	Type       string    `json:"type"`
	PayoutID   string    `json:"payout_id"`
	BookingID  string    `json:"booking_id"`
	HostID     string    `json:"host_id"`
	Status     string    `json:"status"`
	NetAmount  string    `json:"net_amount"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(eventType string, payout Payout, at time.Time) Event {
	return Event{
		Type:       eventType,
		PayoutID:   payout.ID,
		BookingID:  payout.BookingID,
		HostID:     payout.HostID,
		Status:     string(payout.Status),
		NetAmount:  money.Format(payout.NetAmount),
		Currency:   payout.Currency,
		OccurredAt: at,
	}
}
