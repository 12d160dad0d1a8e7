package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Property=MockPropertyService

import (
	"context"
	"fmt"

	"stayengine/config"
	"stayengine/infras/otel"
	availabilityService "stayengine/internal/domains/availability/service"
	bookingModel "stayengine/internal/domains/booking/model"
	bookingRepository "stayengine/internal/domains/booking/repository"
	"stayengine/internal/domains/property/model"
	"stayengine/internal/domains/property/model/dto"
	"stayengine/internal/domains/property/repository"
	"stayengine/shared"
	"stayengine/shared/cache"
	"stayengine/shared/constant"
	gDto "stayengine/shared/dto"
	"stayengine/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetProperty    = "property:get"
	cacheGetAllProperty = "property:gets"
	cacheCountProperty  = "property:count"
)

type Property interface {
	Create(ctx context.Context, actor gDto.Actor, req dto.CreatePropertyRequest) (dto.PropertyResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPropertiesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PropertyResponse, error)
	Update(ctx context.Context, actor gDto.Actor, id string, req dto.UpdatePropertyRequest) error
	Deactivate(ctx context.Context, actor gDto.Actor, id string) error
	Delete(ctx context.Context, actor gDto.Actor, id string) error
}

type serviceImpl struct {
	repo         repository.Property
	bookingRepo  bookingRepository.Booking
	availability availabilityService.Availability
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Property,
	bookingRepo bookingRepository.Booking,
	availability availabilityService.Availability,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Property {
	return &serviceImpl{
		repo:         repo,
		bookingRepo:  bookingRepo,
		availability: availability,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, actor gDto.Actor, req dto.CreatePropertyRequest) (res dto.PropertyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if actor.Role != constant.RoleHost && actor.Role != constant.RoleAdmin {
		return res, failure.Forbidden("only hosts can list properties") //nolint:wrapcheck
	}

	property := req.ToModel(actor.UserID, s.cfg.Currency())

	if err = s.repo.Insert(ctx, property); err != nil {
		log.Error().Err(err).Str("owner_id", actor.UserID).Msg("failed to create property")

		return res, fmt.Errorf("failed to create property: %w", err)
	}

	res.FromModel(property)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllProperty)
		shared.InvalidateCaches(c, s.cache, cacheCountProperty)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPropertiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllProperty, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for properties")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count properties")

		return res, fmt.Errorf("failed to count properties: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get properties")

		return res, fmt.Errorf("failed to get properties: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save properties to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountProperty, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for property count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count properties")

		return res, fmt.Errorf("failed to count properties: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save property count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PropertyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetProperty, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for property")

		return res, nil
	}

	property, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("property_id", id).Msg("failed to get property")

		return res, fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return res, failure.NotFound("property not found") //nolint:wrapcheck
	}

	res.FromModel(property)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save property to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, actor gDto.Actor, id string, req dto.UpdatePropertyRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.managedProperty(ctx, actor, filter)
	if err != nil {
		return err
	}

	minimum, maximum := req.StayRules(current)
	if minimum < 1 || maximum < minimum {
		return failure.BadRequestFromString("maximum_nights must be greater than or equal to minimum_nights") //nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, req.Fields(actor.UserID), filter); err != nil {
		log.Error().Err(err).Str("property_id", id).Msg("failed to update property")

		return fmt.Errorf("failed to update property: %w", err)
	}

	s.afterWrite(ctx, id)

	return nil
}

func (s *serviceImpl) Deactivate(ctx context.Context, actor gDto.Actor, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Deactivate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.managedProperty(ctx, actor, filter)
	if err != nil {
		return err
	}

	if !current.Active {
		return nil
	}

	inactive := false
	req := dto.UpdatePropertyRequest{Active: &inactive}

	fields := req.Fields(actor.UserID)
	fields[model.FieldActive] = false

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Str("property_id", id).Msg("failed to deactivate property")

		return fmt.Errorf("failed to deactivate property: %w", err)
	}

	s.afterWrite(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, actor gDto.Actor, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if _, err = s.managedProperty(ctx, actor, filter); err != nil {
		return err
	}

	booked, err := s.bookingRepo.Exist(ctx, shared.FilterByID(id, bookingModel.FieldPropertyID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("property_id", id).Msg("failed to check property bookings")

		return fmt.Errorf("failed to check property bookings: %w", err)
	}

	if booked {
		return failure.Conflict("property has bookings, deactivate it instead") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Str("property_id", id).Msg("failed to delete property")

		return fmt.Errorf("failed to delete property: %w", err)
	}

	s.afterWrite(ctx, id)

	return nil
}

// managedProperty loads the property and checks that actor owns it or is an admin.
func (s *serviceImpl) managedProperty(ctx context.Context, actor gDto.Actor, filter gDto.FilterGroup) (model.Property, error) {
	property, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check property existence")

		return property, fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return property, failure.NotFound("property not found") //nolint:wrapcheck
	}

	if !property.IsOwnedBy(actor.UserID) && actor.Role != constant.RoleAdmin {
		return property, failure.NotAuthorized("only the owner can manage this property") //nolint:wrapcheck
	}

	return property, nil
}

// afterWrite drops listing caches. Stay rules feed the availability verdict, so its version is bumped too.
func (s *serviceImpl) afterWrite(ctx context.Context, id string) {
	s.availability.Invalidate(ctx, id)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetProperty, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete property cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllProperty)
		shared.InvalidateCaches(c, s.cache, cacheCountProperty)
	}()
}
