package response

import (
	"encoding/json"
	"net/http"

	"stayengine/shared/constant"
	"stayengine/shared/failure"
	"stayengine/shared/logger"
)

// Data is the success envelope.
type Data[T any] struct {
	Data T `json:"data"`
}

// Error is the failure envelope. Reason and Details come from failure.Failure.
type Error struct {
	Error   string `json:"error"`
	Reason  string `json:"reason,omitempty"`
	Details any    `json:"details,omitempty"`
}

type Message struct {
	Message string `json:"message"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: payload})
}

// WithError maps err to its status and renders the failure's own message, so context added
// by wrapping stays in the logs. Unclassified errors are reported as a bare 500.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	if code == http.StatusInternalServerError {
		logger.ErrorWithStack(err)
		write(writer, code, Error{Error: http.StatusText(code)})

		return
	}

	write(writer, code, Error{Error: failure.GetMessage(err), Reason: failure.GetReason(err), Details: failure.GetDetails(err)})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		code = http.StatusInternalServerError
		body = []byte(`{"error":"Internal Server Error"}`)
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err := writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
