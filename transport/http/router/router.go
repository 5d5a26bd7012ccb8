package router

import (
	_ "mesa/docs"
	"mesa/internal/handlers/auth"
	"mesa/internal/handlers/availability"
	"mesa/internal/handlers/customer"
	"mesa/internal/handlers/health"
	"mesa/internal/handlers/realtime"
	"mesa/internal/handlers/report"
	"mesa/internal/handlers/reservation"
	"mesa/internal/handlers/schedule"
	"mesa/internal/handlers/table"
	"mesa/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Auth         auth.Handler
	Customer     customer.Handler
	Table        table.Handler
	Reservation  reservation.Handler
	Availability availability.Handler
	Schedule     schedule.Handler
	Report       report.Handler
	Health       health.Handler
	Realtime     realtime.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthMiddleware middleware.Auth
}

func New(domainHandlers DomainHandlers, authMiddleware middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthMiddleware: authMiddleware,
	}
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(r.AuthMiddleware.Auth)

			r.DomainHandlers.Customer.Router(protected)
			r.DomainHandlers.Table.Router(protected)
			r.DomainHandlers.Reservation.Router(protected)
			r.DomainHandlers.Availability.Router(protected)
			r.DomainHandlers.Schedule.Router(protected)
			r.DomainHandlers.Report.Router(protected)
		})
	})

	r.DomainHandlers.Health.Router(router)
	r.DomainHandlers.Realtime.Router(router)

	router.Get("/swagger/*", httpSwagger.Handler())
}
