package pricing

import (
	"net/http"

	"stayengine/infras/otel"
	"stayengine/internal/domains/pricing/service"
	"stayengine/shared/constant"
	"stayengine/shared/daterange"
	"stayengine/shared/failure"
	"stayengine/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Pricing
	otel    otel.Otel
}

func New(service service.Pricing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/{id}/quote", handler.QuotePrice)
}

// QuotePrice prices a stay without reserving it.
// @Summary Quote a stay
// @Description Itemised price for a stay: nightly subtotal, cleaning fee, service fee and total.
// @Tags Pricing
// @Produce json
// @Param id path string true "Property ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.QuoteResponse] "Price breakdown"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id}/quote [get]
func (handler *Handler) QuotePrice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".QuotePrice")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	stay, err := daterange.Parse(r.URL.Query().Get(constant.RequestParamCheckIn), r.URL.Query().Get(constant.RequestParamCheckOut))
	if err != nil {
		err = failure.InvalidDateRange(err.Error())

		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	quote, err := handler.service.QuotePrice(ctx, id, stay)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("property_id", id).Msg("failed to quote price")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, quote)
}
