package dto_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"stayengine/internal/domains/property/model"
	"stayengine/internal/domains/property/model/dto"
	"stayengine/shared/constant"
)

func TestCreatePropertyRequest_ToModel(t *testing.T) {
	req := dto.CreatePropertyRequest{
		Title:       "Beach house",
		NightlyRate: "100",
		MaxGuests:   4,
	}

	property := req.ToModel("host-1", "USDT")

	assert.NotEmpty(t, property.ID)
	assert.Equal(t, "host-1", property.OwnerID)
	assert.True(t, property.NightlyRate.Equal(decimal.NewFromInt(100)))
	assert.True(t, property.CleaningFee.IsZero())
	assert.Equal(t, model.DefaultMinimumNights, property.MinimumNights)
	assert.Equal(t, model.DefaultMaximumNights, property.MaximumNights)
	assert.Equal(t, model.DefaultCheckInTime, property.CheckInTime)
	assert.Equal(t, model.DefaultCheckOutTime, property.CheckOutTime)
	assert.True(t, property.Active)
	assert.NotNil(t, property.Amenities)
	assert.Equal(t, "host-1", property.CreatedBy)
}

func TestCreatePropertyRequest_ToModel_MinimumAboveDefaultMaximum(t *testing.T) {
	req := dto.CreatePropertyRequest{Title: "Cabin", NightlyRate: "80.5", MaxGuests: 2, MinimumNights: 45}

	property := req.ToModel("host-1", "USDT")

	assert.Equal(t, 45, property.MinimumNights)
	assert.Equal(t, 45, property.MaximumNights)
	assert.Equal(t, "80.50", property.NightlyRate.StringFixed(2))
}

func TestUpdatePropertyRequest_Fields(t *testing.T) {
	guests := 6
	req := dto.UpdatePropertyRequest{Title: "Renamed", NightlyRate: "120.456", MaxGuests: &guests}

	fields := req.Fields("host-1")

	assert.Equal(t, "Renamed", fields["title"])
	assert.Equal(t, "120.46", fields["nightly_rate"].(decimal.Decimal).StringFixed(2))
	assert.Equal(t, 6, fields["max_guests"])
	assert.Equal(t, "host-1", fields[constant.FieldModifiedBy])
	assert.NotContains(t, fields, "cleaning_fee")
	assert.NotContains(t, fields, "active")
}

func TestUpdatePropertyRequest_StayRules(t *testing.T) {
	current := model.Property{MinimumNights: 2, MaximumNights: 10}
	minimum := 12

	req := dto.UpdatePropertyRequest{MinimumNights: &minimum}
	lo, hi := req.StayRules(current)

	assert.Equal(t, 12, lo)
	assert.Equal(t, 10, hi)
}

func TestPropertyResponse_FromModel(t *testing.T) {
	var res dto.PropertyResponse
	res.FromModel(model.Property{
		ID:          "p-1",
		NightlyRate: decimal.NewFromInt(100),
		CleaningFee: decimal.RequireFromString("20.5"),
		Amenities:   []string{"wifi"},
	})

	assert.Equal(t, "100.00", res.NightlyRate)
	assert.Equal(t, "20.50", res.CleaningFee)
	assert.Equal(t, []string{"wifi"}, res.Amenities)
}
