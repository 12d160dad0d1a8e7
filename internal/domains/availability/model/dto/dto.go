package dto

import (
	"stayengine/internal/domains/availability/model"
	"stayengine/shared/daterange"
)

type AvailabilityResponse struct {
	Available bool                  `json:"available"`
	Conflicts []daterange.DateRange `json:"conflicts"`
}

func NewAvailabilityResponse(conflicts []daterange.DateRange) AvailabilityResponse {
	if conflicts == nil {
		conflicts = []daterange.DateRange{}
	}

	return AvailabilityResponse{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}
}

type UnavailableDateResponse struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

func FromUnavailableDates(dates []model.UnavailableDate) []UnavailableDateResponse {
	res := make([]UnavailableDateResponse, len(dates))
	for i, date := range dates {
		res[i] = UnavailableDateResponse{
			Date:   date.Date.Format(daterange.Layout),
			Reason: date.Reason,
		}
	}

	return res
}
