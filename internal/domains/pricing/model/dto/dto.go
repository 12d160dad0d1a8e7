package dto

import (
	"stayengine/internal/domains/pricing/model"
	"stayengine/shared/money"
)

type QuoteResponse struct {
	Nights      int    `json:"nights"`
	NightlyRate string `json:"nightly_rate"`
	Subtotal    string `json:"subtotal"`
	CleaningFee string `json:"cleaning_fee"`
	ServiceFee  string `json:"service_fee"`
	Total       string `json:"total"`
	Currency    string `json:"currency"`
}

func (q *QuoteResponse) FromModel(breakdown model.PriceBreakdown) {
	q.Nights = breakdown.Nights
	q.NightlyRate = money.Format(breakdown.NightlyRate)
	q.Subtotal = money.Format(breakdown.Subtotal)
	q.CleaningFee = money.Format(breakdown.CleaningFee)
	q.ServiceFee = money.Format(breakdown.ServiceFee)
	q.Total = money.Format(breakdown.Total)
	q.Currency = breakdown.Currency
}
