package dto

import (
	"stayengine/internal/domains/property/model"
	"stayengine/shared"
	gDto "stayengine/shared/dto"
	gModel "stayengine/shared/model"
	"stayengine/shared/money"
	"stayengine/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type CreatePropertyRequest struct {
	Title          string   `json:"title"           validate:"required,max=200"`
	Description    string   `json:"description"     validate:"omitempty,max=5000"`
	Location       string   `json:"location"        validate:"omitempty,max=200"`
	NightlyRate    string   `json:"nightly_rate"    validate:"required,decimal"`
	CleaningFee    string   `json:"cleaning_fee"    validate:"omitempty,decimal"`
	MaxGuests      int      `json:"max_guests"      validate:"required,min=1"`
	Bedrooms       int      `json:"bedrooms"        validate:"omitempty,min=0"`
	Bathrooms      int      `json:"bathrooms"       validate:"omitempty,min=0"`
	Amenities      []string `json:"amenities"       validate:"omitempty,max=50,dive,required,max=50"`
	CheckInTime    string   `json:"check_in_time"   validate:"omitempty,datetime=15:04"`
	CheckOutTime   string   `json:"check_out_time"  validate:"omitempty,datetime=15:04"`
	MinimumNights  int      `json:"minimum_nights"  validate:"omitempty,min=1"`
	MaximumNights  int      `json:"maximum_nights"  validate:"omitempty,min=1,gtefield=MinimumNights"`
	InstantBooking bool     `json:"instant_booking"`
}

// ToModel fills defaults for omitted stay rules. Amounts were checked by the decimal validator.
func (c *CreatePropertyRequest) ToModel(ownerID, currency string) model.Property {
	now := timezone.Now()

	nightlyRate, _ := money.Parse(c.NightlyRate)

	cleaningFee := decimal.Zero
	if c.CleaningFee != "" {
		cleaningFee, _ = money.Parse(c.CleaningFee)
	}

	minimumNights := c.MinimumNights
	if minimumNights == 0 {
		minimumNights = model.DefaultMinimumNights
	}

	maximumNights := c.MaximumNights
	if maximumNights == 0 {
		maximumNights = max(model.DefaultMaximumNights, minimumNights)
	}

	checkIn := c.CheckInTime
	if checkIn == "" {
		checkIn = model.DefaultCheckInTime
	}

	checkOut := c.CheckOutTime
	if checkOut == "" {
		checkOut = model.DefaultCheckOutTime
	}

	amenities := pq.StringArray{}
	if c.Amenities != nil {
		amenities = pq.StringArray(c.Amenities)
	}

	return model.Property{
		ID:             uuid.NewString(),
		OwnerID:        ownerID,
		Title:          c.Title,
		Description:    c.Description,
		Location:       c.Location,
		NightlyRate:    money.Round(nightlyRate),
		CleaningFee:    money.Round(cleaningFee),
		Currency:       currency,
		MaxGuests:      c.MaxGuests,
		Bedrooms:       c.Bedrooms,
		Bathrooms:      c.Bathrooms,
		Amenities:      amenities,
		CheckInTime:    checkIn,
		CheckOutTime:   checkOut,
		MinimumNights:  minimumNights,
		MaximumNights:  maximumNights,
		InstantBooking: c.InstantBooking,
		Active:         true,
		Metadata:       gModel.NewMetadata(ownerID, now),
	}
}

// UpdatePropertyRequest only touches the rate card; existing booking snapshots are never rewritten.
type UpdatePropertyRequest struct {
	Title          string         `db:"title"           json:"title"           validate:"omitempty,max=200"`
	Description    string         `db:"description"     json:"description"     validate:"omitempty,max=5000"`
	Location       string         `db:"location"        json:"location"        validate:"omitempty,max=200"`
	NightlyRate    string         `db:"nightly_rate"    json:"nightly_rate"    validate:"omitempty,decimal"`
	CleaningFee    string         `db:"cleaning_fee"    json:"cleaning_fee"    validate:"omitempty,decimal"`
	MaxGuests      *int           `db:"max_guests"      json:"max_guests"      validate:"omitempty,min=1"`
	Bedrooms       *int           `db:"bedrooms"        json:"bedrooms"        validate:"omitempty,min=0"`
	Bathrooms      *int           `db:"bathrooms"       json:"bathrooms"       validate:"omitempty,min=0"`
	Amenities      pq.StringArray `db:"amenities"       json:"amenities"       validate:"omitempty,max=50,dive,required,max=50"`
	CheckInTime    string         `db:"check_in_time"   json:"check_in_time"   validate:"omitempty,datetime=15:04"`
	CheckOutTime   string         `db:"check_out_time"  json:"check_out_time"  validate:"omitempty,datetime=15:04"`
	MinimumNights  *int           `db:"minimum_nights"  json:"minimum_nights"  validate:"omitempty,min=1"`
	MaximumNights  *int           `db:"maximum_nights"  json:"maximum_nights"  validate:"omitempty,min=1"`
	InstantBooking *bool          `db:"instant_booking" json:"instant_booking"`
	Active         *bool          `db:"active"          json:"active"`
}

// StayRules returns the minimum and maximum nights after applying the update to current.
func (u *UpdatePropertyRequest) StayRules(current model.Property) (minimum, maximum int) {
	minimum, maximum = current.MinimumNights, current.MaximumNights

	if u.MinimumNights != nil {
		minimum = *u.MinimumNights
	}

	if u.MaximumNights != nil {
		maximum = *u.MaximumNights
	}

	return minimum, maximum
}

// Fields converts the request into the column map for the repository update.
func (u *UpdatePropertyRequest) Fields(user string) map[string]any {
	fields := shared.ChangedColumns(u, user)

	if u.NightlyRate != "" {
		rate, _ := money.Parse(u.NightlyRate)
		fields["nightly_rate"] = money.Round(rate)
	}

	if u.CleaningFee != "" {
		fee, _ := money.Parse(u.CleaningFee)
		fields["cleaning_fee"] = money.Round(fee)
	}

	return fields
}

type PropertyResponse struct {
	ID             string   `json:"id"`
	OwnerID        string   `json:"owner_id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	NightlyRate    string   `json:"nightly_rate"`
	CleaningFee    string   `json:"cleaning_fee"`
	Currency       string   `json:"currency"`
	MaxGuests      int      `json:"max_guests"`
	Bedrooms       int      `json:"bedrooms"`
	Bathrooms      int      `json:"bathrooms"`
	Amenities      []string `json:"amenities"`
	CheckInTime    string   `json:"check_in_time"`
	CheckOutTime   string   `json:"check_out_time"`
	MinimumNights  int      `json:"minimum_nights"`
	MaximumNights  int      `json:"maximum_nights"`
	InstantBooking bool     `json:"instant_booking"`
	Active         bool     `json:"active"`
	gDto.Metadata
}

func (r *PropertyResponse) FromModel(model model.Property) {
	r.ID = model.ID
	r.OwnerID = model.OwnerID
	r.Title = model.Title
	r.Description = model.Description
	r.Location = model.Location
	r.NightlyRate = money.Format(model.NightlyRate)
	r.CleaningFee = money.Format(model.CleaningFee)
	r.Currency = model.Currency
	r.MaxGuests = model.MaxGuests
	r.Bedrooms = model.Bedrooms
	r.Bathrooms = model.Bathrooms
	r.Amenities = append([]string{}, model.Amenities...)
	r.CheckInTime = model.CheckInTime
	r.CheckOutTime = model.CheckOutTime
	r.MinimumNights = model.MinimumNights
	r.MaximumNights = model.MaximumNights
	r.InstantBooking = model.InstantBooking
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetPropertiesResponse struct {
	Properties []PropertyResponse `json:"properties"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetPropertiesResponse) FromModels(models []model.Property, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.TotalPages(totalData, limit)

	r.Properties = make([]PropertyResponse, len(models))
	for i, mod := range models {
		r.Properties[i].FromModel(mod)
	}
}
