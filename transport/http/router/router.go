package router

import (
	"net/http"
	"time"

	"stayengine/config"
	_ "stayengine/docs" // swagger spec
	"stayengine/internal/handlers/availability"
	"stayengine/internal/handlers/booking"
	"stayengine/internal/handlers/calendar"
	"stayengine/internal/handlers/payout"
	"stayengine/internal/handlers/pricing"
	"stayengine/internal/handlers/property"
	"stayengine/internal/handlers/system"
	"stayengine/transport/http/middleware"
	"stayengine/transport/http/response"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

const requestTimeout = 30 * time.Second

type DomainHandlers struct {
	Property     property.Handler
	Calendar     calendar.Handler
	Availability availability.Handler
	Pricing      pricing.Handler
	Booking      booking.Handler
	Payout       payout.Handler
	System       system.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	Auth           middleware.AuthRole
	Config         *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.RequestID, chiMiddleware.RealIP, chiMiddleware.Recoverer, chiMiddleware.Timeout(requestTimeout))

	if r.Config.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.Config.App.CORS.AllowedOrigins,
			AllowedMethods:   r.Config.App.CORS.AllowedMethods,
			AllowedHeaders:   r.Config.App.CORS.AllowedHeaders,
			AllowCredentials: r.Config.App.CORS.AllowCredentials,
			MaxAge:           r.Config.App.CORS.MaxAgeSeconds,
		}))
	}

	router.Use(r.App.Tracing, r.App.RateLimit())

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.WithMessage(w, http.StatusOK, "OK")
	})

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.Auth.APIKey, r.Auth.Auth, r.Auth.RBAC)

		routerGroup.Route("/properties", func(propertyGroup chi.Router) {
			r.DomainHandlers.Property.Router(propertyGroup)
			r.DomainHandlers.Availability.Router(propertyGroup)
			r.DomainHandlers.Pricing.Router(propertyGroup)
			r.DomainHandlers.Calendar.PropertyRouter(propertyGroup)
		})

		r.DomainHandlers.Calendar.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payout.Router(routerGroup)

		routerGroup.Route("/internal", func(internalGroup chi.Router) {
			internalGroup.Use(r.Auth.Internal)
			r.DomainHandlers.System.Router(internalGroup)
		})
	})
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, auth middleware.AuthRole, cfg *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		Auth:           auth,
		Config:         cfg,
	}
}
