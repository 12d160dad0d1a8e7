// Package system exposes the service-to-service endpoints. Every route here requires the
// internal API key and runs as the system actor.
package system

import (
	"net/http"

	"stayengine/infras/otel"
	bookingService "stayengine/internal/domains/booking/service"
	"stayengine/internal/domains/payout/model/dto"
	payoutService "stayengine/internal/domains/payout/service"
	"stayengine/shared/constant"
	gDto "stayengine/shared/dto"
	"stayengine/shared/validator"
	"stayengine/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	booking bookingService.Booking
	ledger  payoutService.Ledger
	otel    otel.Otel
}

func New(booking bookingService.Booking, ledger payoutService.Ledger, otel otel.Otel) Handler {
	return Handler{
		booking: booking,
		ledger:  ledger,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/bookings/complete-elapsed", handler.CompleteElapsedBookings)
	router.Post("/bookings/{id}/invoice-paid", handler.InvoicePaid)
	router.Post("/bookings/{id}/payout", handler.RecordPayout)
	router.Patch("/payouts/{id}/status", handler.UpdatePayoutStatus)
	router.Post("/payouts/export", handler.ExportPayouts)
}

// InvoicePaid records a settled invoice: the booking becomes paid and its payout is recorded.
// Redelivery of the same notification is harmless.
// @Summary Invoice paid notification
// @Tags Internal
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.PayoutResponse] "Recorded payout"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/internal/bookings/{id}/invoice-paid [post]
// @Security ApiKeyAuth
func (handler *Handler) InvoicePaid(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".InvoicePaid")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	payout, err := handler.booking.MarkInvoicePaid(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to handle invoice paid")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payout)
}

// RecordPayout records the payout of a booking whose invoice is already paid.
// @Summary Reconcile a payout
// @Tags Internal
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.PayoutResponse] "Payout"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/internal/bookings/{id}/payout [post]
// @Security ApiKeyAuth
func (handler *Handler) RecordPayout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RecordPayout")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	payout, err := handler.ledger.OnInvoicePaid(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to record payout")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payout)
}

// CompleteElapsedBookings runs the completion sweep once.
// @Summary Complete elapsed bookings
// @Tags Internal
// @Produce json
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/internal/bookings/complete-elapsed [post]
// @Security ApiKeyAuth
func (handler *Handler) CompleteElapsedBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompleteElapsedBookings")
	defer scope.End()

	completed, err := handler.booking.CompleteElapsed(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete elapsed bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, map[string]int{"completed": completed})
}

// UpdatePayoutStatus moves a payout through approval and settlement.
// @Summary Update a payout's status
// @Tags Internal
// @Accept json
// @Produce json
// @Param id path string true "Payout ID"
// @Param request body dto.UpdatePayoutStatusRequest true "Update Payout Status Request"
// @Success 200 {object} response.Data[dto.PayoutResponse] "Updated payout"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/internal/payouts/{id}/status [patch]
// @Security ApiKeyAuth
func (handler *Handler) UpdatePayoutStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePayoutStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdatePayoutStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	payout, err := handler.ledger.UpdateStatus(ctx, gDto.ActorFromContext(ctx), id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("payout_id", id).Msg("failed to update payout status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payout)
}

// ExportPayouts writes the approved, not yet exported payouts to a settlement batch.
// @Summary Export approved payouts
// @Tags Internal
// @Produce json
// @Success 200 {object} response.Data[dto.ExportResponse] "Export batch"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/internal/payouts/export [post]
// @Security ApiKeyAuth
func (handler *Handler) ExportPayouts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportPayouts")
	defer scope.End()

	batch, err := handler.ledger.ExportApproved(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export payouts")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payout batch exported")

	response.WithJSON(w, http.StatusOK, batch)
}
