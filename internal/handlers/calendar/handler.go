package calendar

import (
	"net/http"

	"stayengine/infras/otel"
	"stayengine/internal/domains/calendar/model/dto"
	"stayengine/internal/domains/calendar/service"
	"stayengine/shared/constant"
	gDto "stayengine/shared/dto"
	"stayengine/shared/validator"
	"stayengine/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Calendar
	otel    otel.Otel
}

func New(service service.Calendar, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// PropertyRouter registers the block routes nested under /properties.
func (handler *Handler) PropertyRouter(router chi.Router) {
	router.Post("/{id}/unavailability", handler.BlockDates)
	router.Get("/{id}/unavailability", handler.ListBlocks)
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/unavailability", func(routerGroup chi.Router) {
		routerGroup.Delete("/{id}", handler.UnblockDates)
	})
}

// BlockDates marks a date range as unavailable.
// @Summary Block dates
// @Description Host blocks a range of nights. Refused when an active booking holds any of them.
// @Tags Calendar
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param request body dto.BlockDatesRequest true "Block Dates Request"
// @Success 201 {object} response.Data[dto.UnavailabilityResponse] "Dates blocked"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id}/unavailability [post]
// @Security BearerAuth
func (handler *Handler) BlockDates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BlockDates")
	defer scope.End()

	propertyID := chi.URLParam(r, constant.RequestParamID)

	req := dto.BlockDatesRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	actor := gDto.ActorFromContext(ctx)

	block, err := handler.service.BlockDates(ctx, actor, propertyID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("property_id", propertyID).Msg("failed to block dates")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dates blocked by user " + actor.UserID)

	response.WithJSON(w, http.StatusCreated, block)
}

// ListBlocks lists the host's blocked ranges of a property.
// @Summary List blocked ranges
// @Tags Calendar
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} response.Data[[]dto.UnavailabilityResponse] "Blocked ranges"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id}/unavailability [get]
// @Security BearerAuth
func (handler *Handler) ListBlocks(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListBlocks")
	defer scope.End()

	propertyID := chi.URLParam(r, constant.RequestParamID)

	blocks, err := handler.service.ListBlocks(ctx, gDto.ActorFromContext(ctx), propertyID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("property_id", propertyID).Msg("failed to list blocks")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, blocks)
}

// UnblockDates removes a blocked range.
// @Summary Unblock dates
// @Tags Calendar
// @Produce json
// @Param id path string true "Unavailability ID"
// @Success 200 {object} response.Message "Dates unblocked successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/unavailability/{id} [delete]
// @Security BearerAuth
func (handler *Handler) UnblockDates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UnblockDates")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	actor := gDto.ActorFromContext(ctx)

	if err := handler.service.UnblockDates(ctx, actor, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("unavailability_id", id).Msg("failed to unblock dates")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dates unblocked by user " + actor.UserID)

	response.WithMessage(w, http.StatusOK, "Dates unblocked successfully")
}
