package model

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"stayengine/shared/model"
	"stayengine/shared/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TableName  = "rental_invoices"
	EntityName = "invoice"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldStatus    = "status"
	FieldPaidAt    = "paid_at"
)

type Status string

const (
	StatusCreated   Status = "created"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
	StatusRefunded  Status = "refunded"
)

var transitions = map[Status][]Status{
	StatusCreated:   {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusRefunded},
	StatusCancelled: {},
	StatusRefunded:  {},
}

func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

type Invoice struct {
	ID                  string          `db:"id"`
	BookingID           string          `db:"booking_id"`
	Amount              decimal.Decimal `db:"amount"`
	Currency            string          `db:"currency"`
	PaymentInstructions string          `db:"payment_instructions"`
	Status              Status          `db:"status"`
	PaidAt              *time.Time      `db:"paid_at"`
	model.Metadata
}

// New issues the invoice for a freshly created booking. template may reference
// {amount}, {currency} and {invoice_id}.
func New(bookingID string, amount decimal.Decimal, currency, template, user string, now time.Time) Invoice {
	id := uuid.NewString()

	instructions := strings.NewReplacer(
		"{amount}", money.Format(amount),
		"{currency}", currency,
		"{invoice_id}", id,
	).Replace(template)

	if instructions == "" {
		instructions = fmt.Sprintf("Transfer %s %s referencing invoice %s", money.Format(amount), currency, id)
	}

	return Invoice{
		ID:                  id,
		BookingID:           bookingID,
		Amount:              amount,
		Currency:            currency,
		PaymentInstructions: instructions,
		Status:              StatusCreated,
		Metadata:            model.NewMetadata(user, now),
	}
}
