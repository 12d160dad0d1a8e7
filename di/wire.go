//go:build wireinject
// +build wireinject

package di

import (
	"stayengine/config"
	"stayengine/infras/jwt"
	"stayengine/infras/kafka"
	"stayengine/infras/otel"
	"stayengine/infras/postgres"
	"stayengine/infras/redis"
	"stayengine/infras/s3"
	"stayengine/permissions"
	"stayengine/shared/cache"
	"stayengine/shared/timezone"
	"stayengine/transport/http"
	"stayengine/transport/http/middleware"
	"stayengine/transport/http/router"
	"stayengine/transport/worker"

	"github.com/google/wire"

	availabilityService "stayengine/internal/domains/availability/service"
	bookingRepository "stayengine/internal/domains/booking/repository"
	bookingService "stayengine/internal/domains/booking/service"
	calendarRepository "stayengine/internal/domains/calendar/repository"
	calendarService "stayengine/internal/domains/calendar/service"
	invoiceRepository "stayengine/internal/domains/invoice/repository"
	payoutRepository "stayengine/internal/domains/payout/repository"
	payoutService "stayengine/internal/domains/payout/service"
	pricingService "stayengine/internal/domains/pricing/service"
	propertyRepository "stayengine/internal/domains/property/repository"
	propertyService "stayengine/internal/domains/property/service"

	availabilityHandler "stayengine/internal/handlers/availability"
	bookingHandler "stayengine/internal/handlers/booking"
	calendarHandler "stayengine/internal/handlers/calendar"
	payoutHandler "stayengine/internal/handlers/payout"
	pricingHandler "stayengine/internal/handlers/pricing"
	propertyHandler "stayengine/internal/handlers/property"
	systemHandler "stayengine/internal/handlers/system"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	timezone.NewClock,
)

var repositories = wire.NewSet(
	propertyRepository.New,
	calendarRepository.New,
	bookingRepository.New,
	invoiceRepository.New,
	payoutRepository.New,
)

var domains = wire.NewSet(
	repositories,
	propertyService.New,
	availabilityService.New,
	pricingService.New,
	calendarService.New,
	payoutService.New,
	bookingService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	propertyHandler.New,
	calendarHandler.New,
	availabilityHandler.New,
	pricingHandler.New,
	bookingHandler.New,
	payoutHandler.New,
	systemHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *worker.Worker {
	wire.Build(
		config.Get,
		infrastructures,
		sharedHelpers,
		domains,
		worker.New,
	)

	return &worker.Worker{}
}
