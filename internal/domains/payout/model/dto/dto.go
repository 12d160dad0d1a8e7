package dto

import (
	"time"

	"stayengine/internal/domains/payout/model"
	"stayengine/shared"
	gDto "stayengine/shared/dto"
	"stayengine/shared/money"

	"github.com/shopspring/decimal"
)

type UpdatePayoutStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved paid rejected"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type PayoutResponse struct {
	ID           string `json:"id"`
	BookingID    string `json:"booking_id"`
	PropertyID   string `json:"property_id"`
	HostID       string `json:"host_id"`
	GrossAmount  string `json:"gross_amount"`
	ServiceFee   string `json:"service_fee"`
	NetAmount    string `json:"net_amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
	StatusReason string `json:"status_reason,omitempty"`
	ExportedAt   string `json:"exported_at,omitempty"`
	gDto.Metadata
}

func (r *PayoutResponse) FromModel(model model.Payout) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.PropertyID = model.PropertyID
	r.HostID = model.HostID
	r.GrossAmount = money.Format(model.GrossAmount)
	r.ServiceFee = money.Format(model.ServiceFee)
	r.NetAmount = money.Format(model.NetAmount)
	r.Currency = model.Currency
	r.Status = string(model.Status)

	if model.StatusReason != nil {
		r.StatusReason = *model.StatusReason
	}

	r.ExportedAt = gDto.Timestamp(model.ExportedAt)

	r.Metadata.FromModel(model.Metadata)
}

type GetPayoutsResponse struct {
	Payouts   []PayoutResponse `json:"payouts"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetPayoutsResponse) FromModels(models []model.Payout, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.TotalPages(totalData, limit)

	r.Payouts = make([]PayoutResponse, len(models))
	for i, mod := range models {
		r.Payouts[i].FromModel(mod)
	}
}

// ExportLine is one instruction of a settlement batch.
type ExportLine struct {
	PayoutID  string `json:"payout_id"`
	BookingID string `json:"booking_id"`
	HostID    string `json:"host_id"`
	NetAmount string `json:"net_amount"`
	Currency  string `json:"currency"`
}

// ExportBatch is the document handed to the external settlement process.
type ExportBatch struct {
	BatchID     string            `json:"batch_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Totals      map[string]string `json:"totals"`
	Payouts     []ExportLine      `json:"payouts"`
}

func NewExportBatch(batchID string, generatedAt time.Time, payouts []model.Payout) ExportBatch {
	batch := ExportBatch{
		BatchID:     batchID,
		GeneratedAt: generatedAt,
		Totals:      map[string]string{},
		Payouts:     make([]ExportLine, len(payouts)),
	}

	totals := map[string]decimal.Decimal{}

	for i, payout := range payouts {
		batch.Payouts[i] = ExportLine{
			PayoutID:  payout.ID,
			BookingID: payout.BookingID,
			HostID:    payout.HostID,
			NetAmount: money.Format(payout.NetAmount),
			Currency:  payout.Currency,
		}

		totals[payout.Currency] = totals[payout.Currency].Add(payout.NetAmount)
	}

	for currency, total := range totals {
		batch.Totals[currency] = money.Format(total)
	}

	return batch
}

type ExportResponse struct {
	BatchID string            `json:"batch_id,omitempty"`
	URL     string            `json:"url,omitempty"`
	Count   int               `json:"count"`
	Totals  map[string]string `json:"totals"`
}
