package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"stayengine/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantMsg    string
		wantReason string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("bad json")), wantCode: http.StatusBadRequest, wantMsg: "bad json"},
		{name: "bad request from string", err: failure.BadRequestFromString("guests must be positive"), wantCode: http.StatusBadRequest, wantMsg: "guests must be positive"},
		{name: "unauthorized", err: failure.Unauthorized("Missing authorization header"), wantCode: http.StatusUnauthorized, wantMsg: "Missing authorization header"},
		{name: "not found", err: failure.NotFound("booking not found"), wantCode: http.StatusNotFound, wantMsg: "booking not found"},
		{name: "conflict", err: failure.Conflict("property has bookings"), wantCode: http.StatusConflict, wantMsg: "property has bookings"},
		{name: "forbidden", err: failure.Forbidden("owner only"), wantCode: http.StatusForbidden, wantMsg: "owner only"},
		{name: "forbidden sentinel", err: failure.ForbiddenError, wantCode: http.StatusForbidden, wantMsg: "You don't have the required permissions"},
		{
			name:       "validation",
			err:        failure.Validation("check_in is required", map[string]string{"check_in": "check_in is required"}),
			wantCode:   http.StatusBadRequest,
			wantMsg:    "check_in is required",
			wantReason: failure.ReasonValidation,
		},
		{
			name:       "invalid date range",
			err:        failure.InvalidDateRange("stay must be at least 2 nights"),
			wantCode:   http.StatusBadRequest,
			wantMsg:    "stay must be at least 2 nights",
			wantReason: failure.ReasonInvalidDateRange,
		},
		{
			name:       "not authorized",
			err:        failure.NotAuthorized("only the guest can cancel"),
			wantCode:   http.StatusForbidden,
			wantMsg:    "only the guest can cancel",
			wantReason: failure.ReasonNotAuthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
			assert.Equal(t, tt.wantMsg, tt.err.Error())
			assert.Equal(t, tt.wantReason, failure.GetReason(tt.err))
		})
	}
}

func TestBadRequest_Nil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestValidation_OmitsEmptyDetails(t *testing.T) {
	assert.Nil(t, failure.GetDetails(failure.Validation("invalid body", nil)))
}

func TestDateRangeNoLongerAvailable(t *testing.T) {
	conflicts := []string{"2025-03-02/2025-03-04"}
	err := failure.DateRangeNoLongerAvailable(conflicts)

	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.True(t, failure.HasReason(err, failure.ReasonDateRangeNoLongerAvailable))
	assert.Equal(t, conflicts, failure.GetDetails(err))
}

func TestIllegalTransition(t *testing.T) {
	err := failure.IllegalTransition("cancelled", "confirmed")

	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.Equal(t, "cannot change status from cancelled to confirmed", err.Error())
	assert.Equal(t, failure.Transition{From: "cancelled", To: "confirmed"}, failure.GetDetails(err))
}

func TestAccessors_SeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("failed to confirm booking: %w", failure.IllegalTransition("paid", "pending"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.Equal(t, "cannot change status from paid to pending", failure.GetMessage(wrapped))
	assert.True(t, failure.HasReason(wrapped, failure.ReasonIllegalTransition))
}

func TestAccessors_PlainError(t *testing.T) {
	err := errors.New("connection reset")

	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	assert.Empty(t, failure.GetReason(err))
	assert.Equal(t, "Internal Server Error", failure.GetMessage(err))
	assert.Nil(t, failure.GetDetails(err))
	assert.False(t, failure.HasReason(err, ""))
}
