package dto

import (
	"strings"
	"time"

	"stayengine/internal/domains/booking/model"
	pricingModel "stayengine/internal/domains/pricing/model"
	propertyModel "stayengine/internal/domains/property/model"
	"stayengine/shared"
	"stayengine/shared/daterange"
	gDto "stayengine/shared/dto"
	gModel "stayengine/shared/model"
	"stayengine/shared/money"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	PropertyID      string `json:"property_id"      validate:"required,uuid"`
	CheckInDate     string `json:"check_in_date"    validate:"required,date"`
	CheckOutDate    string `json:"check_out_date"   validate:"required,date"`
	GuestsCount     int    `json:"guests_count"     validate:"required,min=1"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=1000"`
}

func (c *CreateBookingRequest) Range() (daterange.DateRange, error) {
	return daterange.Parse(c.CheckInDate, c.CheckOutDate) //nolint:wrapcheck
}

// ToModel builds the booking with the price frozen at creation time.
func (c *CreateBookingRequest) ToModel(property propertyModel.Property, guestID string, stay daterange.DateRange, breakdown pricingModel.PriceBreakdown, now time.Time) model.Booking {
	status := model.InitialStatus(property.InstantBooking)

	booking := model.Booking{
		ID:              uuid.NewString(),
		PropertyID:      property.ID,
		GuestID:         guestID,
		HostID:          property.OwnerID,
		CheckInDate:     stay.Start,
		CheckOutDate:    stay.End,
		GuestsCount:     c.GuestsCount,
		SpecialRequests: strings.TrimSpace(c.SpecialRequests),
		Status:          status,
		PriceSnapshot:   model.NewPriceSnapshot(breakdown),
		Metadata:        gModel.NewMetadata(guestID, now),
	}

	if status == model.StatusConfirmed {
		booking.ConfirmedAt = &now
	}

	return booking
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type PriceResponse struct {
	NightlyRate string `json:"nightly_rate"`
	TotalNights int    `json:"total_nights"`
	Subtotal    string `json:"subtotal"`
	CleaningFee string `json:"cleaning_fee"`
	ServiceFee  string `json:"service_fee"`
	TotalAmount string `json:"total_amount"`
	Currency    string `json:"currency"`
}

func (r *PriceResponse) FromModel(snapshot model.PriceSnapshot) {
	r.NightlyRate = money.Format(snapshot.NightlyRate)
	r.TotalNights = snapshot.TotalNights
	r.Subtotal = money.Format(snapshot.Subtotal)
	r.CleaningFee = money.Format(snapshot.CleaningFee)
	r.ServiceFee = money.Format(snapshot.ServiceFee)
	r.TotalAmount = money.Format(snapshot.TotalAmount)
	r.Currency = snapshot.Currency
}

type BookingResponse struct {
	ID                 string        `json:"id"`
	PropertyID         string        `json:"property_id"`
	GuestID            string        `json:"guest_id"`
	HostID             string        `json:"host_id"`
	CheckInDate        string        `json:"check_in_date"`
	CheckOutDate       string        `json:"check_out_date"`
	GuestsCount        int           `json:"guests_count"`
	SpecialRequests    string        `json:"special_requests,omitempty"`
	Status             string        `json:"status"`
	CancellationReason string        `json:"cancellation_reason,omitempty"`
	ConfirmedAt        string        `json:"confirmed_at,omitempty"`
	CancelledAt        string        `json:"cancelled_at,omitempty"`
	PaidAt             string        `json:"paid_at,omitempty"`
	CompletedAt        string        `json:"completed_at,omitempty"`
	Price              PriceResponse `json:"price"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.PropertyID = model.PropertyID
	r.GuestID = model.GuestID
	r.HostID = model.HostID
	r.CheckInDate = model.CheckInDate.Format(daterange.Layout)
	r.CheckOutDate = model.CheckOutDate.Format(daterange.Layout)
	r.GuestsCount = model.GuestsCount
	r.SpecialRequests = model.SpecialRequests
	r.Status = string(model.Status)

	if model.CancellationReason != nil {
		r.CancellationReason = *model.CancellationReason
	}

	r.ConfirmedAt = gDto.Timestamp(model.ConfirmedAt)
	r.CancelledAt = gDto.Timestamp(model.CancelledAt)
	r.PaidAt = gDto.Timestamp(model.PaidAt)
	r.CompletedAt = gDto.Timestamp(model.CompletedAt)
	r.Price.FromModel(model.PriceSnapshot)
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.TotalPages(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
