package model

import (
	"time"

	"stayengine/shared/daterange"
	"stayengine/shared/model"
)

const (
	TableName  = "rental_unavailabilities"
	EntityName = "unavailability"

	FieldID         = "id"
	FieldPropertyID = "property_id"
	FieldStartDate  = "start_date"
	FieldEndDate    = "end_date"
)

// Unavailability is a host-imposed block covering [StartDate, EndDate).
type Unavailability struct {
	ID         string    `db:"id"`
	PropertyID string    `db:"property_id"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
	Reason     string    `db:"reason"`
	model.Metadata
}

func (u Unavailability) Range() daterange.DateRange {
	return daterange.DateRange{Start: daterange.Day(u.StartDate), End: daterange.Day(u.EndDate)}
}
