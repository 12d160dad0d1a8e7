package validator_test

import (
	"strings"
	"testing"

	"stayengine/shared/failure"
	"stayengine/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stayRequest struct {
	PropertyID string `json:"property_id" validate:"required,uuid"`
	CheckIn    string `json:"check_in"    validate:"required,date"`
	CheckOut   string `json:"check_out"   validate:"required,date"`
	Guests     int    `json:"guests"      validate:"min=1,max=16"`
	Email      string `json:"email"       validate:"omitempty,email"`
	Rate       string `json:"rate"        validate:"omitempty,decimal"`
	Channel    string `json:"-"           validate:"omitempty,oneof=web app"`
}

func validRequest() stayRequest {
	return stayRequest{
		PropertyID: "8c1f5f58-2d7c-4c43-9a51-3f1f4e2a7b10",
		CheckIn:    "2025-03-01",
		CheckOut:   "2025-03-04",
		Guests:     2,
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *stayRequest)
		wantMsg   string
		wantField string
	}{
		{name: "valid", mutate: func(*stayRequest) {}},
		{name: "missing property", mutate: func(r *stayRequest) { r.PropertyID = "" }, wantMsg: "property_id is required", wantField: "property_id"},
		{name: "malformed date", mutate: func(r *stayRequest) { r.CheckIn = "01/03/2025" }, wantMsg: "check_in must be a date in YYYY-MM-DD format", wantField: "check_in"},
		{name: "too many guests", mutate: func(r *stayRequest) { r.Guests = 20 }, wantMsg: "guests must be at most 16", wantField: "guests"},
		{name: "negative amount", mutate: func(r *stayRequest) { r.Rate = "-5" }, wantMsg: "rate must be a non-negative decimal amount", wantField: "rate"},
		{name: "bad email", mutate: func(r *stayRequest) { r.Email = "nope" }, wantMsg: "email must be a valid email address", wantField: "email"},
		{name: "untagged json name falls back to go name", mutate: func(r *stayRequest) { r.Channel = "fax" }, wantMsg: "Channel must be one of web app", wantField: "Channel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.True(t, failure.HasReason(err, failure.ReasonValidation))
			assert.Contains(t, failure.GetDetails(err), tt.wantField)
		})
	}
}

func TestValidateStruct_ReportsEveryField(t *testing.T) {
	req := stayRequest{}

	err := validator.ValidateStruct(&req)
	require.Error(t, err)

	fields, ok := failure.GetDetails(err).(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "property_id is required", fields["property_id"])
	assert.Equal(t, "check_in is required", fields["check_in"])
	assert.Equal(t, "check_out is required", fields["check_out"])
	assert.Equal(t, "guests must be at least 1", fields["guests"])
}

func TestValidate_DecodesBody(t *testing.T) {
	var req stayRequest

	body := `{"property_id":"8c1f5f58-2d7c-4c43-9a51-3f1f4e2a7b10","check_in":"2025-03-01","check_out":"2025-03-04","guests":3}`
	require.NoError(t, validator.Validate(strings.NewReader(body), &req))
	assert.Equal(t, 3, req.Guests)
}

func TestValidate_MalformedBody(t *testing.T) {
	var req stayRequest

	err := validator.Validate(strings.NewReader(`{"guests":`), &req)

	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
	assert.Contains(t, err.Error(), "failed to decode request body")
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("2025-03-01", "date"))

	err := validator.ValidateVar("", "required")
	require.Error(t, err)
	assert.Equal(t, "value is required", err.Error())
}
