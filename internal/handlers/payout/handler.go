package payout

import (
	"net/http"

	"stayengine/infras/otel"
	"stayengine/internal/domains/payout/model"
	"stayengine/internal/domains/payout/service"
	"stayengine/shared/constant"
	gDto "stayengine/shared/dto"
	"stayengine/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var sortableFields = []string{model.FieldCreatedAt, model.FieldStatus}

type Handler struct {
	service service.Ledger
	otel    otel.Otel
}

func New(service service.Ledger, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payouts", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPayouts)
		routerGroup.Get("/{id}", handler.GetPayoutByID)
	})
}

// GetPayouts lists the caller's payouts. Admins see every host.
// @Summary Get payouts
// @Tags Payout
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, approved, paid, rejected)"
// @Success 200 {object} response.Data[dto.GetPayoutsResponse] "Payouts"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payouts [get]
// @Security BearerAuth
func (handler *Handler) GetPayouts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayouts")
	defer scope.End()

	queryParams := gDto.ParseQueryParams(r.URL.Query(), sortableFields...)

	payouts, err := handler.service.ListForHost(ctx, gDto.ActorFromContext(ctx), queryParams, r.URL.Query().Get(constant.RequestParamStatus))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payouts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payouts)
}

// GetPayoutByID retrieves one payout.
// @Summary Get a payout by ID
// @Tags Payout
// @Produce json
// @Param id path string true "Payout ID"
// @Success 200 {object} response.Data[dto.PayoutResponse] "Payout"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payouts/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPayoutByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayoutByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	payout, err := handler.service.Get(ctx, gDto.ActorFromContext(ctx), id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("payout_id", id).Msg("failed to get payout")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payout)
}
