package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"stayengine/config"
	"stayengine/infras/otel"
	"stayengine/infras/postgres"
	"stayengine/internal/domains/availability/model"
	"stayengine/internal/domains/availability/model/dto"
	bookingRepository "stayengine/internal/domains/booking/repository"
	calendarRepository "stayengine/internal/domains/calendar/repository"
	propertyModel "stayengine/internal/domains/property/model"
	propertyRepository "stayengine/internal/domains/property/repository"
	"stayengine/shared"
	"stayengine/shared/cache"
	"stayengine/shared/constant"
	"stayengine/shared/daterange"
	"stayengine/shared/failure"
	"stayengine/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheAvailabilityVersion = "availability:version"
	cacheCheckAvailability   = "availability:check"
	cacheUnavailableDates    = "availability:dates"

	defaultMaxCalendarDays = 366
)

type Availability interface {
	CheckAvailability(ctx context.Context, propertyID string, stay daterange.DateRange) (dto.AvailabilityResponse, error)
	ListUnavailableDates(ctx context.Context, propertyID string, window daterange.DateRange) ([]dto.UnavailableDateResponse, error)
	// ConflictsTx evaluates the effective unavailable set inside sqltx. Writers call it while
	// holding the property lock so the verdict stays valid until they commit.
	ConflictsTx(ctx context.Context, sqltx *sqlx.Tx, propertyID string, stay daterange.DateRange, excludeBookingID string) ([]daterange.DateRange, error)
	// Invalidate retires every cached answer for the property. Call it after a write commits.
	Invalidate(ctx context.Context, propertyID string)
}

type serviceImpl struct {
	tx           postgres.Transactor
	propertyRepo propertyRepository.Property
	calendarRepo calendarRepository.Unavailability
	bookingRepo  bookingRepository.Booking
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	clock        timezone.Clock
}

func New(
	tx postgres.Transactor,
	propertyRepo propertyRepository.Property,
	calendarRepo calendarRepository.Unavailability,
	bookingRepo bookingRepository.Booking,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	clock timezone.Clock,
) Availability {
	return &serviceImpl{
		tx:           tx,
		propertyRepo: propertyRepo,
		calendarRepo: calendarRepo,
		bookingRepo:  bookingRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		clock:        clock,
	}
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, propertyID string, stay daterange.DateRange) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	today := daterange.Day(s.clock.Now())

	version, cacheable := s.version(ctx, propertyID)
	cacheKey := shared.BuildCacheKey(cacheCheckAvailability, propertyID, version,
		today.Format(daterange.Layout), stay.Start.Format(daterange.Layout), stay.End.Format(daterange.Layout))

	if cacheable {
		if err := s.cache.Get(ctx, cacheKey, &res); err == nil {
			log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for availability")

			return res, nil
		}
	}

	err = s.tx.WithinReadTx(ctx, func(sqltx *sqlx.Tx) error {
		property, err := s.bookableProperty(ctx, sqltx, propertyID)
		if err != nil {
			return err
		}

		if err := property.ValidateStay(stay, today); err != nil {
			return err //nolint:wrapcheck
		}

		conflicts, err := s.ConflictsTx(ctx, sqltx, propertyID, stay, constant.Empty)
		if err != nil {
			return err
		}

		res = dto.NewAvailabilityResponse(conflicts)

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("property_id", propertyID).Msg("failed to check availability")

		return res, err //nolint:wrapcheck
	}

	if cacheable {
		if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save availability to cache")
		}
	}

	return res, nil
}

func (s *serviceImpl) ListUnavailableDates(ctx context.Context, propertyID string, window daterange.DateRange) (res []dto.UnavailableDateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListUnavailableDates")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err := window.Validate(); err != nil {
		return nil, failure.InvalidDateRange("to must be after from") //nolint:wrapcheck
	}

	maxDays := s.cfg.Rental.MaxCalendarDays
	if maxDays <= 0 {
		maxDays = defaultMaxCalendarDays
	}

	if window.Nights() > maxDays {
		return nil, failure.InvalidDateRange(fmt.Sprintf("calendar window must not exceed %d days", maxDays)) //nolint:wrapcheck
	}

	version, cacheable := s.version(ctx, propertyID)
	cacheKey := shared.BuildCacheKey(cacheUnavailableDates, propertyID, version,
		window.Start.Format(daterange.Layout), window.End.Format(daterange.Layout))

	if cacheable {
		if err := s.cache.Get(ctx, cacheKey, &res); err == nil {
			log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for unavailable dates")

			return res, nil
		}
	}

	err = s.tx.WithinReadTx(ctx, func(sqltx *sqlx.Tx) error {
		property, err := s.propertyRepo.GetTx(ctx, sqltx, shared.FilterByID(propertyID, propertyModel.FieldID, propertyModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to get property: %w", err)
		}

		if property.ID == constant.Empty {
			return failure.NotFound("property not found") //nolint:wrapcheck
		}

		blocks, err := s.blocksTx(ctx, sqltx, propertyID, window, constant.Empty)
		if err != nil {
			return err
		}

		res = dto.FromUnavailableDates(model.UnavailableDates(blocks, window))

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("property_id", propertyID).Msg("failed to list unavailable dates")

		return nil, err //nolint:wrapcheck
	}

	if cacheable {
		if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save unavailable dates to cache")
		}
	}

	return res, nil
}

func (s *serviceImpl) ConflictsTx(ctx context.Context, sqltx *sqlx.Tx, propertyID string, stay daterange.DateRange, excludeBookingID string) (res []daterange.DateRange, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConflictsTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	blocks, err := s.blocksTx(ctx, sqltx, propertyID, stay, excludeBookingID)
	if err != nil {
		return nil, err
	}

	return model.Conflicts(blocks, stay), nil
}

func (s *serviceImpl) Invalidate(ctx context.Context, propertyID string) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Invalidate")
	defer scope.End()

	key := shared.BuildCacheKey(cacheAvailabilityVersion, propertyID)

	if err := s.cache.Save(ctx, key, uuid.NewString(), 0); err != nil {
		log.Error().Err(err).Str("property_id", propertyID).Msg("failed to bump availability cache version")
	}
}

// version returns the cache token for a property. Cached answers are keyed by it, so bumping
// the token on write makes every older answer unreachable. When the cache cannot be read the
// caller must skip caching altogether.
func (s *serviceImpl) version(ctx context.Context, propertyID string) (string, bool) {
	key := shared.BuildCacheKey(cacheAvailabilityVersion, propertyID)

	var version string

	err := s.cache.Get(ctx, key, &version)
	if err == nil && version != constant.Empty {
		return version, true
	}

	if err != nil && !errors.Is(err, cache.Nil) {
		log.Warn().Err(err).Str("property_id", propertyID).Msg("availability cache unavailable, reading through")

		return constant.Empty, false
	}

	version = uuid.NewString()
	if err := s.cache.Save(ctx, key, version, 0); err != nil {
		log.Warn().Err(err).Str("property_id", propertyID).Msg("failed to seed availability cache version")

		return constant.Empty, false
	}

	return version, true
}

func (s *serviceImpl) bookableProperty(ctx context.Context, sqltx *sqlx.Tx, propertyID string) (propertyModel.Property, error) {
	property, err := s.propertyRepo.GetTx(ctx, sqltx, shared.FilterByID(propertyID, propertyModel.FieldID, propertyModel.TableName))
	if err != nil {
		return property, fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return property, failure.NotFound("property not found") //nolint:wrapcheck
	}

	if !property.Active {
		return property, failure.BadRequestFromString("property is not accepting bookings") //nolint:wrapcheck
	}

	return property, nil
}

func (s *serviceImpl) blocksTx(ctx context.Context, sqltx *sqlx.Tx, propertyID string, window daterange.DateRange, excludeBookingID string) ([]model.Block, error) {
	unavailabilities, err := s.calendarRepo.ListOverlappingTx(ctx, sqltx, propertyID, window)
	if err != nil {
		return nil, fmt.Errorf("failed to list unavailabilities: %w", err)
	}

	bookings, err := s.bookingRepo.ListActiveOverlappingTx(ctx, sqltx, propertyID, window, excludeBookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active bookings: %w", err)
	}

	blocks := make([]model.Block, 0, len(unavailabilities)+len(bookings))

	for _, u := range unavailabilities {
		blocks = append(blocks, model.Block{Range: u.Range(), Reason: u.Reason, Source: model.SourceBlock, Reference: u.ID})
	}

	for _, b := range bookings {
		blocks = append(blocks, model.Block{Range: b.Range(), Source: model.SourceBooking, Reference: b.ID})
	}

	return blocks, nil
}
