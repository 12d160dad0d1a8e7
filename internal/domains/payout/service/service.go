package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"

	"stayengine/config"
	"stayengine/infras/kafka"
	"stayengine/infras/otel"
	"stayengine/infras/postgres"
	"stayengine/infras/s3"
	bookingModel "stayengine/internal/domains/booking/model"
	bookingRepository "stayengine/internal/domains/booking/repository"
	invoiceModel "stayengine/internal/domains/invoice/model"
	invoiceRepository "stayengine/internal/domains/invoice/repository"
	"stayengine/internal/domains/payout/model"
	"stayengine/internal/domains/payout/model/dto"
	"stayengine/internal/domains/payout/repository"
	"stayengine/shared"
	"stayengine/shared/constant"
	gDto "stayengine/shared/dto"
	"stayengine/shared/failure"
	"stayengine/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	exportContentType = "application/json"
	exportBatchLimit  = 1000
)

// Ledger records what each host is owed once a booking has been paid, and tracks the
// settlement of that amount by the external payment process.
type Ledger interface {
	// RecordTx creates the payout for a paid booking inside sqltx. It reports false and returns
	// the stored payout when one already exists for the booking.
	RecordTx(ctx context.Context, sqltx *sqlx.Tx, booking bookingModel.Booking) (model.Payout, bool, error)
	PublishRecorded(ctx context.Context, payout model.Payout)
	OnInvoicePaid(ctx context.Context, bookingID string) (dto.PayoutResponse, error)
	UpdateStatus(ctx context.Context, actor gDto.Actor, id string, req dto.UpdatePayoutStatusRequest) (dto.PayoutResponse, error)
	Get(ctx context.Context, actor gDto.Actor, id string) (dto.PayoutResponse, error)
	ListForHost(ctx context.Context, actor gDto.Actor, params gDto.QueryParams, status string) (dto.GetPayoutsResponse, error)
	ExportApproved(ctx context.Context) (dto.ExportResponse, error)
}

type serviceImpl struct {
	tx          postgres.Transactor
	repo        repository.Payout
	bookingRepo bookingRepository.Booking
	invoiceRepo invoiceRepository.Invoice
	kafka       kafka.Client
	s3          s3.S3
	cfg         *config.Config
	otel        otel.Otel
	clock       timezone.Clock
}

func New(
	tx postgres.Transactor,
	repo repository.Payout,
	bookingRepo bookingRepository.Booking,
	invoiceRepo invoiceRepository.Invoice,
	kafka kafka.Client,
	s3 s3.S3,
	cfg *config.Config,
	otel otel.Otel,
	clock timezone.Clock,
) Ledger {
	return &serviceImpl{
		tx:          tx,
		repo:        repo,
		bookingRepo: bookingRepo,
		invoiceRepo: invoiceRepo,
		kafka:       kafka,
		s3:          s3,
		cfg:         cfg,
		otel:        otel,
		clock:       clock,
	}
}

func (s *serviceImpl) RecordTx(ctx context.Context, sqltx *sqlx.Tx, booking bookingModel.Booking) (payout model.Payout, created bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payout = model.NewFromBooking(booking, constant.ActorSystem, s.clock.Now())

	created, err = s.repo.InsertIfAbsentTx(ctx, sqltx, payout)
	if err != nil {
		return payout, false, fmt.Errorf("failed to record payout: %w", err)
	}

	if created {
		return payout, true, nil
	}

	existing, err := s.repo.GetTx(ctx, sqltx, shared.FilterByID(booking.ID, model.FieldBookingID, model.TableName))
	if err != nil {
		return payout, false, fmt.Errorf("failed to get payout: %w", err)
	}

	return existing, false, nil
}

func (s *serviceImpl) PublishRecorded(ctx context.Context, payout model.Payout) {
	s.publish(ctx, model.NewEvent(model.EventRecorded, payout, s.clock.Now()))
}

func (s *serviceImpl) OnInvoicePaid(ctx context.Context, bookingID string) (res dto.PayoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".OnInvoicePaid")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var (
		payout  model.Payout
		created bool
	)

	err = s.tx.WithinTx(ctx, func(sqltx *sqlx.Tx) error {
		booking, err := s.bookingRepo.GetForUpdateTx(ctx, sqltx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found") //nolint:wrapcheck
		}

		if booking.Status != bookingModel.StatusPaid && booking.Status != bookingModel.StatusCompleted {
			return failure.Conflict("booking has not been paid") //nolint:wrapcheck
		}

		invoice, err := s.invoiceRepo.GetTx(ctx, sqltx, shared.FilterByID(bookingID, invoiceModel.FieldBookingID, invoiceModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to get invoice: %w", err)
		}

		if invoice.Status != invoiceModel.StatusPaid {
			return failure.Conflict("invoice has not been paid") //nolint:wrapcheck
		}

		payout, created, err = s.RecordTx(ctx, sqltx, booking)

		return err
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to record payout")

		return res, err //nolint:wrapcheck
	}

	if created {
		s.PublishRecorded(ctx, payout)
	}

	res.FromModel(payout)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, actor gDto.Actor, id string, req dto.UpdatePayoutStatusRequest) (res dto.PayoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !actor.IsSystem() && actor.Role != constant.RoleAdmin {
		return res, failure.NotAuthorized("only the settlement process can change payout status") //nolint:wrapcheck
	}

	next, err := model.ParseStatus(req.Status)
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	if next == model.StatusRejected && req.Reason == constant.Empty {
		return res, failure.BadRequestFromString("reason is required to reject a payout") //nolint:wrapcheck
	}

	var payout model.Payout

	err = s.tx.WithinTx(ctx, func(sqltx *sqlx.Tx) error {
		filter := shared.FilterByID(id, model.FieldID, model.TableName)

		locked, err := s.repo.GetForUpdateTx(ctx, sqltx, filter)
		if err != nil {
			return fmt.Errorf("failed to lock payout: %w", err)
		}

		payout = locked
		if payout.ID == constant.Empty {
			return failure.NotFound("payout not found") //nolint:wrapcheck
		}

		if !payout.Status.CanTransitionTo(next) {
			return failure.IllegalTransition(string(payout.Status), string(next)) //nolint:wrapcheck
		}

		now := s.clock.Now()
		fields := map[string]any{
			model.FieldStatus:        next,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: actor.UserID,
		}

		if req.Reason != constant.Empty {
			fields[model.FieldStatusReason] = req.Reason
			payout.StatusReason = &req.Reason
		}

		if err := s.repo.UpdateTx(ctx, sqltx, fields, filter); err != nil {
			return fmt.Errorf("failed to update payout: %w", err)
		}

		payout.Status = next
		payout.ModifiedAt = now
		payout.ModifiedBy = actor.UserID

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("payout_id", id).Msg("failed to update payout status")

		return res, err //nolint:wrapcheck
	}

	s.publish(ctx, model.NewEvent(model.EventStatusChanged, payout, s.clock.Now()))

	res.FromModel(payout)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, actor gDto.Actor, id string) (res dto.PayoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payout, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("payout_id", id).Msg("failed to get payout")

		return res, fmt.Errorf("failed to get payout: %w", err)
	}

	if payout.ID == constant.Empty {
		return res, failure.NotFound("payout not found") //nolint:wrapcheck
	}

	if payout.HostID != actor.UserID && actor.Role != constant.RoleAdmin && !actor.IsSystem() {
		return res, failure.NotAuthorized("payout belongs to another host") //nolint:wrapcheck
	}

	res.FromModel(payout)

	return res, nil
}

func (s *serviceImpl) ListForHost(ctx context.Context, actor gDto.Actor, params gDto.QueryParams, status string) (res dto.GetPayoutsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListForHost")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if actor.Role != constant.RoleAdmin {
		filter.Filters = append(filter.Filters,
			gDto.Filter{Field: model.FieldHostID, Value: actor.UserID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if status != constant.Empty {
		parsed, err := model.ParseStatus(status)
		if err != nil {
			return res, failure.BadRequest(err) //nolint:wrapcheck
		}

		filter.Filters = append(filter.Filters,
			gDto.Filter{Field: model.FieldStatus, Value: parsed, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payouts")

		return res, fmt.Errorf("failed to count payouts: %w", err)
	}

	payouts, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payouts")

		return res, fmt.Errorf("failed to get payouts: %w", err)
	}

	res.FromModels(payouts, total, params.Limit)

	return res, nil
}

// ExportApproved claims the approved, unexported payouts, uploads them as one batch and stamps
// them in the same transaction. Concurrent exports skip rows already claimed, and a failed
// upload releases the claim.
func (s *serviceImpl) ExportApproved(ctx context.Context) (res dto.ExportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExportApproved")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	pending := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusApproved, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldExportedAt, Operator: gDto.FilterIsNull, Table: model.TableName},
		},
	}
	params := gDto.QueryParams{Page: 1, Limit: exportBatchLimit, SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	now := s.clock.Now()
	res.Totals = map[string]string{}

	var payouts []model.Payout

	err = s.tx.WithinTx(ctx, func(sqltx *sqlx.Tx) error {
		claimed, err := s.repo.ClaimAllTx(ctx, sqltx, params, pending)
		if err != nil {
			return fmt.Errorf("failed to claim approved payouts: %w", err)
		}

		payouts = claimed

		if len(payouts) == 0 {
			return nil
		}

		batch := dto.NewExportBatch(uuid.NewString(), now, payouts)

		document, err := json.Marshal(batch)
		if err != nil {
			return fmt.Errorf("failed to marshal payout batch: %w", err)
		}

		url, err := s.s3.PutObject(ctx, s.cfg.Rental.PayoutExportDirectory, batch.BatchID+".json", exportContentType, document)
		if err != nil {
			return fmt.Errorf("failed to upload payout batch %s: %w", batch.BatchID, err)
		}

		ids := make([]string, len(payouts))
		for i, payout := range payouts {
			ids[i] = payout.ID
		}

		byID := gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{ArgName: "payout_id", Field: model.FieldID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.TableName},
			},
		}

		fields := map[string]any{
			model.FieldExportedAt:    now,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: constant.ActorSystem,
		}

		if err := s.repo.UpdateTx(ctx, sqltx, fields, byID); err != nil {
			return fmt.Errorf("failed to stamp exported payouts: %w", err)
		}

		res = dto.ExportResponse{BatchID: batch.BatchID, URL: url, Count: len(payouts), Totals: batch.Totals}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to export approved payouts")

		return dto.ExportResponse{Totals: map[string]string{}}, err //nolint:wrapcheck
	}

	for _, payout := range payouts {
		payout.ExportedAt = &now
		s.publish(ctx, model.NewEvent(model.EventExported, payout, now))
	}

	if res.Count > 0 {
		log.Info().Str("batch_id", res.BatchID).Int("count", res.Count).Msg("payout batch exported")
	}

	return res, nil
}

// publish is best effort: the ledger row is the source of truth and consumers reconcile from it.
func (s *serviceImpl) publish(ctx context.Context, event model.Event) {
	message := kafka.Message{Key: event.HostID, Value: event}

	if err := s.kafka.SendMessages(context.WithoutCancel(ctx), s.cfg.Kafka.Topics.PayoutEvents, message); err != nil {
		log.Error().Err(err).Str("payout_id", event.PayoutID).Str("type", event.Type).Msg("failed to publish payout event")
	}
}
