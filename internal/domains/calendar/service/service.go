package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"stayengine/infras/otel"
	"stayengine/infras/postgres"
	availabilityService "stayengine/internal/domains/availability/service"
	bookingRepository "stayengine/internal/domains/booking/repository"
	"stayengine/internal/domains/calendar/model"
	"stayengine/internal/domains/calendar/model/dto"
	"stayengine/internal/domains/calendar/repository"
	propertyModel "stayengine/internal/domains/property/model"
	propertyRepository "stayengine/internal/domains/property/repository"
	"stayengine/shared"
	"stayengine/shared/constant"
	"stayengine/shared/daterange"
	gDto "stayengine/shared/dto"
	"stayengine/shared/failure"
	"stayengine/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Calendar interface {
	// BlockDates marks a range unavailable for new bookings. Ranges held by a booking are refused;
	// overlapping an existing block is allowed.
	BlockDates(ctx context.Context, actor gDto.Actor, propertyID string, req dto.BlockDatesRequest) (dto.UnavailabilityResponse, error)
	UnblockDates(ctx context.Context, actor gDto.Actor, id string) error
	ListBlocks(ctx context.Context, actor gDto.Actor, propertyID string) ([]dto.UnavailabilityResponse, error)
}

type serviceImpl struct {
	tx           postgres.Transactor
	repo         repository.Unavailability
	propertyRepo propertyRepository.Property
	bookingRepo  bookingRepository.Booking
	availability availabilityService.Availability
	otel         otel.Otel
	clock        timezone.Clock
}

func New(
	tx postgres.Transactor,
	repo repository.Unavailability,
	propertyRepo propertyRepository.Property,
	bookingRepo bookingRepository.Booking,
	availability availabilityService.Availability,
	otel otel.Otel,
	clock timezone.Clock,
) Calendar {
	return &serviceImpl{
		tx:           tx,
		repo:         repo,
		propertyRepo: propertyRepo,
		bookingRepo:  bookingRepo,
		availability: availability,
		otel:         otel,
		clock:        clock,
	}
}

func (s *serviceImpl) BlockDates(ctx context.Context, actor gDto.Actor, propertyID string, req dto.BlockDatesRequest) (res dto.UnavailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BlockDates")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	block, err := req.Range()
	if err != nil {
		return res, failure.InvalidDateRange("end_date must be after start_date") //nolint:wrapcheck
	}

	now := s.clock.Now()
	if block.Start.Before(daterange.Day(now)) {
		return res, failure.InvalidDateRange("cannot block dates in the past") //nolint:wrapcheck
	}

	err = s.tx.WithinTx(ctx, func(sqltx *sqlx.Tx) error {
		property, err := s.propertyRepo.GetForUpdateTx(ctx, sqltx, shared.FilterByID(propertyID, propertyModel.FieldID, propertyModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock property: %w", err)
		}

		if err := authorize(actor, property); err != nil {
			return err
		}

		bookings, err := s.bookingRepo.ListActiveOverlappingTx(ctx, sqltx, propertyID, block, constant.Empty)
		if err != nil {
			return fmt.Errorf("failed to list overlapping bookings: %w", err)
		}

		if len(bookings) > 0 {
			held := make([]daterange.DateRange, 0, len(bookings))
			for _, booking := range bookings {
				if overlap, ok := booking.Range().Intersect(block); ok {
					held = append(held, overlap)
				}
			}

			return failure.DateRangeNoLongerAvailable(daterange.Normalize(held)) //nolint:wrapcheck
		}

		unavailability := req.ToModel(propertyID, block, actor.UserID, now)
		if err := s.repo.InsertTx(ctx, sqltx, unavailability); err != nil {
			return fmt.Errorf("failed to insert unavailability: %w", err)
		}

		res.FromModel(unavailability)

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("property_id", propertyID).Msg("failed to block dates")

		return res, err //nolint:wrapcheck
	}

	s.availability.Invalidate(ctx, propertyID)

	return res, nil
}

func (s *serviceImpl) UnblockDates(ctx context.Context, actor gDto.Actor, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UnblockDates")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	unavailability, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("unavailability_id", id).Msg("failed to get unavailability")

		return fmt.Errorf("failed to get unavailability: %w", err)
	}

	if unavailability.ID == constant.Empty {
		return failure.NotFound("unavailability not found") //nolint:wrapcheck
	}

	err = s.tx.WithinTx(ctx, func(sqltx *sqlx.Tx) error {
		property, err := s.propertyRepo.GetForUpdateTx(ctx, sqltx, shared.FilterByID(unavailability.PropertyID, propertyModel.FieldID, propertyModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock property: %w", err)
		}

		if err := authorize(actor, property); err != nil {
			return err
		}

		if err := s.repo.DeleteTx(ctx, sqltx, filter); err != nil {
			return fmt.Errorf("failed to delete unavailability: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("unavailability_id", id).Msg("failed to unblock dates")

		return err //nolint:wrapcheck
	}

	s.availability.Invalidate(ctx, unavailability.PropertyID)

	return nil
}

func (s *serviceImpl) ListBlocks(ctx context.Context, actor gDto.Actor, propertyID string) (res []dto.UnavailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListBlocks")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	property, err := s.propertyRepo.Get(ctx, shared.FilterByID(propertyID, propertyModel.FieldID, propertyModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("property_id", propertyID).Msg("failed to get property")

		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	if err = authorize(actor, property); err != nil {
		return nil, err
	}

	params := gDto.QueryParams{SortBy: model.FieldStartDate, SortDir: gDto.SortDirAsc}

	blocks, err := s.repo.GetAll(ctx, params, shared.FilterByID(propertyID, model.FieldPropertyID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("property_id", propertyID).Msg("failed to list unavailabilities")

		return nil, fmt.Errorf("failed to list unavailabilities: %w", err)
	}

	return dto.FromModels(blocks), nil
}

func authorize(actor gDto.Actor, property propertyModel.Property) error {
	if property.ID == constant.Empty {
		return failure.NotFound("property not found") //nolint:wrapcheck
	}

	if !property.IsOwnedBy(actor.UserID) && actor.Role != constant.RoleAdmin {
		return failure.NotAuthorized("only the owner can manage the calendar") //nolint:wrapcheck
	}

	return nil
}
