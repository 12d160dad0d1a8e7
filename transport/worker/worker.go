// Package worker runs the asynchronous entry points of the engine: the invoice.paid consumer
// and the periodic completion sweep.
package worker

import (
	"context"
	"net/http"
	"sync"
	"time"

	"stayengine/config"
	"stayengine/infras/kafka"
	"stayengine/infras/otel"
	bookingService "stayengine/internal/domains/booking/service"
	"stayengine/shared/constant"
	"stayengine/shared/failure"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const defaultSweepInterval = time.Hour

// InvoicePaid is the payload published by the payment provider integration.
type InvoicePaid struct {
	BookingID string    `json:"booking_id"`
	InvoiceID string    `json:"invoice_id"`
	PaidAt    time.Time `json:"paid_at"`
}

type Worker struct {
	cfg     *config.Config
	kafka   kafka.Client
	booking bookingService.Booking
	otel    otel.Otel
}

func New(cfg *config.Config, kafka kafka.Client, booking bookingService.Booking, otel otel.Otel) *Worker {
	return &Worker{
		cfg:     cfg,
		kafka:   kafka,
		booking: booking,
		otel:    otel,
	}
}

// Run blocks until ctx is cancelled and both loops have returned.
func (w *Worker) Run(ctx context.Context) {
	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()

		log.Info().Str("topic", w.cfg.Kafka.Topics.InvoicePaid).Msg("Starting invoice paid consumer.")

		w.kafka.Consume(ctx, w.cfg.Kafka.ConsumerGroup, w.cfg.Kafka.Topics.InvoicePaid, w.HandleInvoicePaid)
	}()

	go func() {
		defer wg.Done()

		w.sweep(ctx)
	}()

	wg.Wait()

	if err := w.kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Kafka client")
	}

	log.Info().Msg("Worker stopped.")
}

// HandleInvoicePaid applies one invoice.paid message. Only transient failures are returned, and
// the consumer retries those on the same message; malformed or rejected messages are logged and
// acknowledged.
func (w *Worker) HandleInvoicePaid(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".HandleInvoicePaid")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payload, err := kafka.DecodeKafkaMessage[InvoicePaid](message)
	if err != nil {
		log.Error().Err(err).Str("key", string(message.Key)).Msg("dropping malformed invoice paid message")

		return nil
	}

	if payload.BookingID == constant.Empty {
		log.Error().Str("key", string(message.Key)).Msg("dropping invoice paid message without booking id")

		return nil
	}

	payout, err := w.booking.MarkInvoicePaid(ctx, payload.BookingID)
	if err != nil {
		if failure.GetCode(err) < http.StatusInternalServerError {
			log.Warn().Err(err).Str("booking_id", payload.BookingID).Str("reason", failure.GetReason(err)).
				Msg("invoice paid message rejected")

			return nil
		}

		return err //nolint:wrapcheck
	}

	log.Info().Str("booking_id", payload.BookingID).Str("payout_id", payout.ID).Msg("invoice paid applied")

	return nil
}

// SweepOnce completes every paid booking whose stay has ended.
func (w *Worker) SweepOnce(ctx context.Context) int {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".SweepOnce")
	defer scope.End()

	completed, err := w.booking.CompleteElapsed(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("completion sweep failed")
	}

	return completed
}

func (w *Worker) sweep(ctx context.Context) {
	interval := time.Duration(w.cfg.Rental.CompletionSweepSeconds) * time.Second
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	log.Info().Dur("interval", interval).Msg("Starting completion sweeper.")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.SweepOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.SweepOnce(ctx)
		}
	}
}
