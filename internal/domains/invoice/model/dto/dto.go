package dto

import (
	"stayengine/internal/domains/invoice/model"
	gDto "stayengine/shared/dto"
	"stayengine/shared/money"
)

type InvoiceResponse struct {
	ID                  string `json:"id"`
	BookingID           string `json:"booking_id"`
	Amount              string `json:"amount"`
	Currency            string `json:"currency"`
	PaymentInstructions string `json:"payment_instructions"`
	Status              string `json:"status"`
	PaidAt              string `json:"paid_at,omitempty"`
	gDto.Metadata
}

func (r *InvoiceResponse) FromModel(model model.Invoice) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.Amount = money.Format(model.Amount)
	r.Currency = model.Currency
	r.PaymentInstructions = model.PaymentInstructions
	r.Status = string(model.Status)

	r.PaidAt = gDto.Timestamp(model.PaidAt)

	r.Metadata.FromModel(model.Metadata)
}
