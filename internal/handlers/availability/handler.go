package availability

import (
	"net/http"

	"stayengine/infras/otel"
	"stayengine/internal/domains/availability/service"
	"stayengine/shared/constant"
	"stayengine/shared/daterange"
	"stayengine/shared/failure"
	"stayengine/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router registers the availability routes relative to the /properties group.
func (handler *Handler) Router(router chi.Router) {
	router.Get("/{id}/availability", handler.CheckAvailability)
	router.Get("/{id}/unavailable-dates", handler.ListUnavailableDates)
}

// CheckAvailability reports whether a stay can be booked right now.
// @Summary Check availability
// @Description Evaluate a stay against the property's stay rules, blocked dates and active bookings.
// @Tags Availability
// @Produce json
// @Param id path string true "Property ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability verdict"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id}/availability [get]
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	stay, err := daterange.Parse(r.URL.Query().Get(constant.RequestParamCheckIn), r.URL.Query().Get(constant.RequestParamCheckOut))
	if err != nil {
		err = failure.InvalidDateRange(err.Error())

		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.CheckAvailability(ctx, id, stay)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("property_id", id).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ListUnavailableDates lists every blocked or booked night inside a window.
// @Summary List unavailable dates
// @Tags Availability
// @Produce json
// @Param id path string true "Property ID"
// @Param from query string true "Window start (YYYY-MM-DD)"
// @Param to query string true "Window end, exclusive (YYYY-MM-DD)"
// @Success 200 {object} response.Data[[]dto.UnavailableDateResponse] "Unavailable nights"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id}/unavailable-dates [get]
func (handler *Handler) ListUnavailableDates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListUnavailableDates")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	window, err := daterange.Parse(r.URL.Query().Get(constant.RequestParamFrom), r.URL.Query().Get(constant.RequestParamTo))
	if err != nil {
		err = failure.InvalidDateRange(err.Error())

		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	dates, err := handler.service.ListUnavailableDates(ctx, id, window)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("property_id", id).Msg("failed to list unavailable dates")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dates)
}
