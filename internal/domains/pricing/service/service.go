package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"stayengine/config"
	"stayengine/infras/otel"
	"stayengine/internal/domains/pricing/model"
	"stayengine/internal/domains/pricing/model/dto"
	propertyModel "stayengine/internal/domains/property/model"
	propertyRepository "stayengine/internal/domains/property/repository"
	"stayengine/shared"
	"stayengine/shared/constant"
	"stayengine/shared/daterange"
	"stayengine/shared/failure"
	"stayengine/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Pricing interface {
	// QuotePrice prices a stay without checking availability. The quote is not binding.
	QuotePrice(ctx context.Context, propertyID string, stay daterange.DateRange) (dto.QuoteResponse, error)
}

type serviceImpl struct {
	propertyRepo propertyRepository.Property
	cfg          *config.Config
	otel         otel.Otel
	clock        timezone.Clock
}

func New(propertyRepo propertyRepository.Property, cfg *config.Config, otel otel.Otel, clock timezone.Clock) Pricing {
	return &serviceImpl{
		propertyRepo: propertyRepo,
		cfg:          cfg,
		otel:         otel,
		clock:        clock,
	}
}

func (s *serviceImpl) QuotePrice(ctx context.Context, propertyID string, stay daterange.DateRange) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".QuotePrice")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	property, err := s.propertyRepo.Get(ctx, shared.FilterByID(propertyID, propertyModel.FieldID, propertyModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("property_id", propertyID).Msg("failed to get property")

		return res, fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return res, failure.NotFound("property not found") //nolint:wrapcheck
	}

	if !property.Active {
		return res, failure.BadRequestFromString("property is not accepting bookings") //nolint:wrapcheck
	}

	if err = property.ValidateStay(stay, s.clock.Now()); err != nil {
		return res, err //nolint:wrapcheck
	}

	breakdown := model.Quote(property.NightlyRate, property.CleaningFee, stay.Nights(), s.cfg.ServiceFeeRate(), property.Currency)
	res.FromModel(breakdown)

	return res, nil
}
