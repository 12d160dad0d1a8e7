package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Reasons let clients branch on a failure without parsing its message.
const (
	ReasonValidation                 = "VALIDATION_FAILED"
	ReasonInvalidDateRange           = "INVALID_DATE_RANGE"
	ReasonDateRangeNoLongerAvailable = "DATE_RANGE_NO_LONGER_AVAILABLE"
	ReasonIllegalTransition          = "ILLEGAL_TRANSITION"
	ReasonNotAuthorized              = "NOT_AUTHORIZED"
)

// Failure is an error that knows its HTTP status. Reason and Details are optional.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Transition describes the rejected state change carried by IllegalTransition.
type Transition struct {
	From string `json:"from"`
	To   string `json:"to"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, msg string) *Failure {
	return &Failure{Code: code, Message: msg}
}

// BadRequest wraps err as a 400. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

// Validation is a 400 carrying the offending fields, keyed by their JSON name.
func Validation(msg string, fields map[string]string) error {
	fail := newFailure(http.StatusBadRequest, msg)
	fail.Reason = ReasonValidation

	if len(fields) > 0 {
		fail.Details = fields
	}

	return fail
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

// NotFound takes the message shown to the client, e.g. "booking not found".
func NotFound(msg string) error {
	return newFailure(http.StatusNotFound, msg)
}

func Conflict(msg string) error {
	return newFailure(http.StatusConflict, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, msg)
}

// InvalidDateRange rejects a stay that breaks the calendar or the property's stay rules.
func InvalidDateRange(msg string) error {
	fail := newFailure(http.StatusBadRequest, msg)
	fail.Reason = ReasonInvalidDateRange

	return fail
}

// DateRangeNoLongerAvailable lists the ranges that block the request.
func DateRangeNoLongerAvailable(conflicts any) error {
	fail := newFailure(http.StatusConflict, "date range is no longer available")
	fail.Reason = ReasonDateRangeNoLongerAvailable
	fail.Details = conflicts

	return fail
}

func IllegalTransition(from, to string) error {
	fail := newFailure(http.StatusConflict, fmt.Sprintf("cannot change status from %s to %s", from, to))
	fail.Reason = ReasonIllegalTransition
	fail.Details = Transition{From: from, To: to}

	return fail
}

// NotAuthorized is a 403 for actors acting outside their role on a specific resource.
func NotAuthorized(msg string) error {
	fail := newFailure(http.StatusForbidden, msg)
	fail.Reason = ReasonNotAuthorized

	return fail
}

func as(err error) (*Failure, bool) {
	var fail *Failure
	ok := errors.As(err, &fail)

	return fail, ok
}

// GetCode returns the HTTP status for err; anything that is not a Failure is a 500.
func GetCode(err error) int {
	if fail, ok := as(err); ok {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetMessage returns the client-facing message of the failure inside err, without any
// wrapping context added on the way up.
func GetMessage(err error) string {
	if fail, ok := as(err); ok {
		return fail.Message
	}

	return http.StatusText(http.StatusInternalServerError)
}

func GetReason(err error) string {
	if fail, ok := as(err); ok {
		return fail.Reason
	}

	return ""
}

func GetDetails(err error) any {
	if fail, ok := as(err); ok {
		return fail.Details
	}

	return nil
}

// HasReason reports whether err is a failure with the given reason.
func HasReason(err error, reason string) bool {
	return reason != "" && GetReason(err) == reason
}
