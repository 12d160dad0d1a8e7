package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stayengine/config"
	"stayengine/infras/kafka"
	"stayengine/infras/otel"
	"stayengine/infras/postgres"
	availabilityService "stayengine/internal/domains/availability/service"
	"stayengine/internal/domains/booking/model"
	"stayengine/internal/domains/booking/model/dto"
	"stayengine/internal/domains/booking/repository"
	invoiceModel "stayengine/internal/domains/invoice/model"
	invoiceDto "stayengine/internal/domains/invoice/model/dto"
	invoiceRepository "stayengine/internal/domains/invoice/repository"
	payoutModel "stayengine/internal/domains/payout/model"
	payoutDto "stayengine/internal/domains/payout/model/dto"
	payoutService "stayengine/internal/domains/payout/service"
	pricingModel "stayengine/internal/domains/pricing/model"
	propertyModel "stayengine/internal/domains/property/model"
	propertyRepository "stayengine/internal/domains/property/repository"
	"stayengine/shared"
	"stayengine/shared/constant"
	"stayengine/shared/daterange"
	gDto "stayengine/shared/dto"
	"stayengine/shared/failure"
	"stayengine/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	completionBatchSize = 500

	argCurrentStatus = "current_status"
)

type Booking interface {
	Create(ctx context.Context, actor gDto.Actor, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, actor gDto.Actor, id string, req dto.UpdateBookingStatusRequest) (dto.BookingResponse, error)
	// MarkInvoicePaid is called by the payment pipeline. Redelivery returns the payout recorded
	// the first time.
	MarkInvoicePaid(ctx context.Context, bookingID string) (payoutDto.PayoutResponse, error)
	// CompleteElapsed moves paid bookings whose check-out date has passed to completed.
	CompleteElapsed(ctx context.Context) (int, error)
	Get(ctx context.Context, actor gDto.Actor, id string) (dto.BookingResponse, error)
	GetInvoice(ctx context.Context, actor gDto.Actor, id string) (invoiceDto.InvoiceResponse, error)
	ListForGuest(ctx context.Context, actor gDto.Actor, params gDto.QueryParams, status string) (dto.GetBookingsResponse, error)
	ListForHost(ctx context.Context, actor gDto.Actor, params gDto.QueryParams, status string) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	tx           postgres.Transactor
	repo         repository.Booking
	propertyRepo propertyRepository.Property
	invoiceRepo  invoiceRepository.Invoice
	availability availabilityService.Availability
	ledger       payoutService.Ledger
	kafka        kafka.Client
	cfg          *config.Config
	otel         otel.Otel
	clock        timezone.Clock
}

func New(
	tx postgres.Transactor,
	repo repository.Booking,
	propertyRepo propertyRepository.Property,
	invoiceRepo invoiceRepository.Invoice,
	availability availabilityService.Availability,
	ledger payoutService.Ledger,
	kafka kafka.Client,
	cfg *config.Config,
	otel otel.Otel,
	clock timezone.Clock,
) Booking {
	return &serviceImpl{
		tx:           tx,
		repo:         repo,
		propertyRepo: propertyRepo,
		invoiceRepo:  invoiceRepo,
		availability: availability,
		ledger:       ledger,
		kafka:        kafka,
		cfg:          cfg,
		otel:         otel,
		clock:        clock,
	}
}

func (s *serviceImpl) Create(ctx context.Context, actor gDto.Actor, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	stay, err := req.Range()
	if err != nil {
		return res, failure.InvalidDateRange("check_out_date must be after check_in_date") //nolint:wrapcheck
	}

	now := s.clock.Now()

	var booking model.Booking

	err = s.tx.WithinTx(ctx, func(sqltx *sqlx.Tx) error {
		property, err := s.lockProperty(ctx, sqltx, req.PropertyID)
		if err != nil {
			return err
		}

		if !property.Active {
			return failure.BadRequestFromString("property is not accepting bookings") //nolint:wrapcheck
		}

		if property.IsOwnedBy(actor.UserID) {
			return failure.NotAuthorized("hosts cannot book their own property") //nolint:wrapcheck
		}

		if req.GuestsCount > property.MaxGuests {
			return failure.BadRequestFromString(fmt.Sprintf("property accepts at most %d guests", property.MaxGuests)) //nolint:wrapcheck
		}

		if err := property.ValidateStay(stay, now); err != nil {
			return err //nolint:wrapcheck
		}

		conflicts, err := s.availability.ConflictsTx(ctx, sqltx, property.ID, stay, constant.Empty)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if len(conflicts) > 0 {
			return failure.DateRangeNoLongerAvailable(conflicts) //nolint:wrapcheck
		}

		breakdown := pricingModel.Quote(property.NightlyRate, property.CleaningFee, stay.Nights(), s.cfg.ServiceFeeRate(), property.Currency)
		booking = req.ToModel(property, actor.UserID, stay, breakdown, now)

		if err := s.repo.InsertTx(ctx, sqltx, booking); err != nil {
			if isOverlapViolation(err) {
				return failure.DateRangeNoLongerAvailable([]daterange.DateRange{stay}) //nolint:wrapcheck
			}

			return fmt.Errorf("failed to insert booking: %w", err)
		}

		invoice := invoiceModel.New(booking.ID, booking.TotalAmount, booking.Currency, s.cfg.Rental.PaymentInstructions, actor.UserID, now)
		if err := s.invoiceRepo.InsertTx(ctx, sqltx, invoice); err != nil {
			return fmt.Errorf("failed to insert invoice: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("property_id", req.PropertyID).Str("guest_id", actor.UserID).Msg("failed to create booking")

		return res, err //nolint:wrapcheck
	}

	s.availability.Invalidate(ctx, booking.PropertyID)
	s.publish(ctx, model.NewEvent(model.EventCreated, booking, now))

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, actor gDto.Actor, id string, req dto.UpdateBookingStatusRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	next, err := model.ParseStatus(req.Status)
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	if next == model.StatusPaid || next == model.StatusCompleted {
		return res, failure.NotAuthorized(fmt.Sprintf("bookings become %s automatically", next)) //nolint:wrapcheck
	}

	if next.RequiresReason() && req.Reason == constant.Empty {
		return res, failure.BadRequestFromString(fmt.Sprintf("reason is required to mark a booking %s", next)) //nolint:wrapcheck
	}

	current, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if current.ID == constant.Empty {
		return res, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	if err = authorizeTransition(actor, current, next); err != nil {
		return res, err
	}

	now := s.clock.Now()

	var booking model.Booking

	err = s.tx.WithinTx(ctx, func(sqltx *sqlx.Tx) error {
		if _, err := s.lockProperty(ctx, sqltx, current.PropertyID); err != nil {
			return err
		}

		locked, err := s.lockBooking(ctx, sqltx, id)
		if err != nil {
			return err
		}

		booking = locked

		if !booking.Status.CanTransitionTo(next) {
			return failure.IllegalTransition(string(booking.Status), string(next)) //nolint:wrapcheck
		}

		if next == model.StatusConfirmed {
			conflicts, err := s.availability.ConflictsTx(ctx, sqltx, booking.PropertyID, booking.Range(), booking.ID)
			if err != nil {
				return err //nolint:wrapcheck
			}

			if len(conflicts) > 0 {
				return failure.DateRangeNoLongerAvailable(conflicts) //nolint:wrapcheck
			}
		}

		fields := map[string]any{
			model.FieldStatus:        next,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: actor.UserID,
		}

		switch next {
		case model.StatusConfirmed:
			fields[model.FieldConfirmedAt] = now
			booking.ConfirmedAt = &now
		case model.StatusRejected, model.StatusCancelled:
			fields[model.FieldCancelledAt] = now
			fields[model.FieldCancellationReason] = req.Reason
			booking.CancelledAt = &now
			booking.CancellationReason = &req.Reason
		}

		if err := s.repo.UpdateTx(ctx, sqltx, fields, filterByStatus(id, model.FieldID, model.TableName, booking.Status)); err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		if next == model.StatusRejected || next == model.StatusCancelled {
			if err := s.cancelInvoiceTx(ctx, sqltx, booking.ID, actor.UserID, now); err != nil {
				return err
			}
		}

		booking.Status = next
		booking.ModifiedAt = now
		booking.ModifiedBy = actor.UserID

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Str("status", req.Status).Msg("failed to update booking status")

		return res, err //nolint:wrapcheck
	}

	s.availability.Invalidate(ctx, booking.PropertyID)
	s.publish(ctx, model.NewEvent(model.EventFor(next), booking, now))

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) MarkInvoicePaid(ctx context.Context, bookingID string) (res payoutDto.PayoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkInvoicePaid")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if current.ID == constant.Empty {
		return res, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	now := s.clock.Now()

	var (
		booking    model.Booking
		payout     payoutModel.Payout
		markedPaid bool
		recorded   bool
	)

	err = s.tx.WithinTx(ctx, func(sqltx *sqlx.Tx) error {
		if _, err := s.lockProperty(ctx, sqltx, current.PropertyID); err != nil {
			return err
		}

		locked, err := s.lockBooking(ctx, sqltx, bookingID)
		if err != nil {
			return err
		}

		booking = locked

		invoiceFilter := shared.FilterByID(bookingID, invoiceModel.FieldBookingID, invoiceModel.TableName)

		invoice, err := s.invoiceRepo.GetForUpdateTx(ctx, sqltx, invoiceFilter)
		if err != nil {
			return fmt.Errorf("failed to lock invoice: %w", err)
		}

		if invoice.ID == constant.Empty {
			return failure.Conflict("booking has no invoice") //nolint:wrapcheck
		}

		switch booking.Status {
		case model.StatusConfirmed:
			if !invoice.Status.CanTransitionTo(invoiceModel.StatusPaid) {
				return failure.IllegalTransition(string(invoice.Status), string(invoiceModel.StatusPaid)) //nolint:wrapcheck
			}

			if err := s.invoiceRepo.UpdateTx(ctx, sqltx, map[string]any{
				invoiceModel.FieldStatus: invoiceModel.StatusPaid,
				invoiceModel.FieldPaidAt: now,
				constant.FieldModifiedAt: now,
				constant.FieldModifiedBy: constant.ActorSystem,
			}, invoiceFilter); err != nil {
				return fmt.Errorf("failed to mark invoice paid: %w", err)
			}

			if err := s.repo.UpdateTx(ctx, sqltx, map[string]any{
				model.FieldStatus:        model.StatusPaid,
				model.FieldPaidAt:        now,
				constant.FieldModifiedAt: now,
				constant.FieldModifiedBy: constant.ActorSystem,
			}, filterByStatus(bookingID, model.FieldID, model.TableName, booking.Status)); err != nil {
				return fmt.Errorf("failed to mark booking paid: %w", err)
			}

			booking.Status = model.StatusPaid
			booking.PaidAt = &now
			markedPaid = true
		case model.StatusPaid, model.StatusCompleted:
			// redelivery, fall through to the idempotent ledger write
		default:
			return failure.IllegalTransition(string(booking.Status), string(model.StatusPaid)) //nolint:wrapcheck
		}

		payout, recorded, err = s.ledger.RecordTx(ctx, sqltx, booking)

		return err //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to mark invoice paid")

		return res, err //nolint:wrapcheck
	}

	if markedPaid {
		s.publish(ctx, model.NewEvent(model.EventPaid, booking, now))
	}

	if recorded {
		s.ledger.PublishRecorded(ctx, payout)
	}

	res.FromModel(payout)

	return res, nil
}

func (s *serviceImpl) CompleteElapsed(ctx context.Context) (completed int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CompleteElapsed")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := s.clock.Now()

	bookings, err := s.repo.ListCompletable(ctx, daterange.Day(now), completionBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to list completable bookings")

		return 0, fmt.Errorf("failed to list completable bookings: %w", err)
	}

	for _, candidate := range bookings {
		var booking model.Booking

		err := s.tx.WithinTx(ctx, func(sqltx *sqlx.Tx) error {
			locked, err := s.lockBooking(ctx, sqltx, candidate.ID)
			if err != nil {
				return err
			}

			if !locked.Status.CanTransitionTo(model.StatusCompleted) {
				return failure.IllegalTransition(string(locked.Status), string(model.StatusCompleted)) //nolint:wrapcheck
			}

			if err := s.repo.UpdateTx(ctx, sqltx, map[string]any{
				model.FieldStatus:        model.StatusCompleted,
				model.FieldCompletedAt:   now,
				constant.FieldModifiedAt: now,
				constant.FieldModifiedBy: constant.ActorSystem,
			}, filterByStatus(locked.ID, model.FieldID, model.TableName, locked.Status)); err != nil {
				return fmt.Errorf("failed to complete booking: %w", err)
			}

			booking = locked
			booking.Status = model.StatusCompleted
			booking.CompletedAt = &now

			return nil
		})
		if err != nil {
			log.Warn().Err(err).Str("booking_id", candidate.ID).Msg("skipped booking completion")

			continue
		}

		completed++

		s.availability.Invalidate(ctx, booking.PropertyID)
		s.publish(ctx, model.NewEvent(model.EventCompleted, booking, now))
	}

	log.Info().Int("completed", completed).Int("candidates", len(bookings)).Msg("completion sweep finished")

	return completed, nil
}

func (s *serviceImpl) Get(ctx context.Context, actor gDto.Actor, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.visibleBooking(ctx, actor, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetInvoice(ctx context.Context, actor gDto.Actor, id string) (res invoiceDto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetInvoice")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.visibleBooking(ctx, actor, id); err != nil {
		return res, err
	}

	invoice, err := s.invoiceRepo.Get(ctx, shared.FilterByID(id, invoiceModel.FieldBookingID, invoiceModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get invoice")

		return res, fmt.Errorf("failed to get invoice: %w", err)
	}

	if invoice.ID == constant.Empty {
		return res, failure.NotFound("invoice not found") //nolint:wrapcheck
	}

	res.FromModel(invoice)

	return res, nil
}

func (s *serviceImpl) ListForGuest(ctx context.Context, actor gDto.Actor, params gDto.QueryParams, status string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListForGuest")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, model.FieldGuestID, actor.UserID, params, status)
}

func (s *serviceImpl) ListForHost(ctx context.Context, actor gDto.Actor, params gDto.QueryParams, status string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListForHost")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, model.FieldHostID, actor.UserID, params, status)
}

func (s *serviceImpl) list(ctx context.Context, field, userID string, params gDto.QueryParams, status string) (res dto.GetBookingsResponse, err error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{gDto.Filter{Field: field, Value: userID, Operator: gDto.FilterOperatorEq, Table: model.TableName}},
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
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) visibleBooking(ctx context.Context, actor gDto.Actor, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	if !booking.IsParticipant(actor.UserID) && actor.Role != constant.RoleAdmin {
		return booking, failure.NotAuthorized("booking belongs to other users") //nolint:wrapcheck
	}

	return booking, nil
}

// lockProperty takes the property row lock. Every writer of a property's bookings or blocks
// goes through it first, so availability checks and inserts cannot interleave.
func (s *serviceImpl) lockProperty(ctx context.Context, sqltx *sqlx.Tx, propertyID string) (propertyModel.Property, error) {
	property, err := s.propertyRepo.GetForUpdateTx(ctx, sqltx, shared.FilterByID(propertyID, propertyModel.FieldID, propertyModel.TableName))
	if err != nil {
		return property, fmt.Errorf("failed to lock property: %w", err)
	}

	if property.ID == constant.Empty {
		return property, failure.NotFound("property not found") //nolint:wrapcheck
	}

	return property, nil
}

func (s *serviceImpl) lockBooking(ctx context.Context, sqltx *sqlx.Tx, id string) (model.Booking, error) {
	booking, err := s.repo.GetForUpdateTx(ctx, sqltx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return booking, fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) cancelInvoiceTx(ctx context.Context, sqltx *sqlx.Tx, bookingID, user string, now time.Time) error {
	fields := map[string]any{
		invoiceModel.FieldStatus: invoiceModel.StatusCancelled,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	filter := filterByStatus(bookingID, invoiceModel.FieldBookingID, invoiceModel.TableName, invoiceModel.StatusCreated)

	if err := s.invoiceRepo.UpdateTx(ctx, sqltx, fields, filter); err != nil {
		return fmt.Errorf("failed to cancel invoice: %w", err)
	}

	return nil
}

// publish is best effort: the row is committed already and consumers reconcile from storage.
func (s *serviceImpl) publish(ctx context.Context, event model.Event) {
	message := kafka.Message{Key: event.PropertyID, Value: event}

	if err := s.kafka.SendMessages(context.WithoutCancel(ctx), s.cfg.Kafka.Topics.BookingEvents, message); err != nil {
		log.Error().Err(err).Str("booking_id", event.BookingID).Str("type", event.Type).Msg("failed to publish booking event")
	}
}

// authorizeTransition checks the actor's role on the booking. Hosts decide on requests;
// either side may cancel.
func authorizeTransition(actor gDto.Actor, booking model.Booking, next model.Status) error {
	if actor.Role == constant.RoleAdmin {
		return nil
	}

	switch next {
	case model.StatusConfirmed, model.StatusRejected:
		if !booking.IsHost(actor.UserID) {
			return failure.NotAuthorized(fmt.Sprintf("only the host can mark a booking %s", next)) //nolint:wrapcheck
		}
	case model.StatusCancelled:
		if !booking.IsParticipant(actor.UserID) {
			return failure.NotAuthorized("only the guest or the host can cancel a booking") //nolint:wrapcheck
		}
	case model.StatusPending:
		if !booking.IsParticipant(actor.UserID) {
			return failure.NotAuthorized("booking belongs to other users") //nolint:wrapcheck
		}
	}

	return nil
}

// filterByStatus matches a row by key only while it is still in status. The status argument is
// named apart from the column so an update that also sets the status keeps both values.
func filterByStatus[S ~string](id, field, table string, status S) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: field, Value: id, Operator: gDto.FilterOperatorEq, Table: table},
			gDto.Filter{ArgName: argCurrentStatus, Field: model.FieldStatus, Value: string(status), Operator: gDto.FilterOperatorEq, Table: table},
		},
	}
}

func isOverlapViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	return string(pqErr.Code) == constant.PqErrorCodeExclusion && pqErr.Constraint == model.ConstraintNoOverlap
}
