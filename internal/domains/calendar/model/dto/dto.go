package dto

import (
	"strings"
	"time"

	"stayengine/internal/domains/calendar/model"
	"stayengine/shared/daterange"
	gDto "stayengine/shared/dto"
	gModel "stayengine/shared/model"

	"github.com/google/uuid"
)

type BlockDatesRequest struct {
	StartDate string `json:"start_date" validate:"required,date"`
	EndDate   string `json:"end_date"   validate:"required,date"`
	Reason    string `json:"reason"     validate:"omitempty,max=200"`
}

func (b *BlockDatesRequest) Range() (daterange.DateRange, error) {
	return daterange.Parse(b.StartDate, b.EndDate) //nolint:wrapcheck
}

func (b *BlockDatesRequest) ToModel(propertyID string, block daterange.DateRange, user string, now time.Time) model.Unavailability {
	return model.Unavailability{
		ID:         uuid.NewString(),
		PropertyID: propertyID,
		StartDate:  block.Start,
		EndDate:    block.End,
		Reason:     strings.TrimSpace(b.Reason),
		Metadata:   gModel.NewMetadata(user, now),
	}
}

type UnavailabilityResponse struct {
	ID         string `json:"id"`
	PropertyID string `json:"property_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason,omitempty"`
	gDto.Metadata
}

func (r *UnavailabilityResponse) FromModel(model model.Unavailability) {
	r.ID = model.ID
	r.PropertyID = model.PropertyID
	r.StartDate = model.StartDate.Format(daterange.Layout)
	r.EndDate = model.EndDate.Format(daterange.Layout)
	r.Reason = model.Reason
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Unavailability) []UnavailabilityResponse {
	res := make([]UnavailabilityResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
