//go:build wireinject
// +build wireinject

package di

import (
	"mesa/config"
	"mesa/infras/jwt"
	"mesa/infras/kafka"
	"mesa/infras/otel"
	"mesa/infras/postgres"
	"mesa/infras/redis"
	"mesa/internal/events"
	"mesa/internal/realtime"
	"mesa/internal/tasks"
	"mesa/shared/cache"
	"mesa/transport/http"
	"mesa/transport/http/middleware"
	"mesa/transport/http/router"

	authService "mesa/internal/domains/auth/service"
	availabilityService "mesa/internal/domains/availability/service"
	customerRepository "mesa/internal/domains/customer/repository"
	customerService "mesa/internal/domains/customer/service"
	reportService "mesa/internal/domains/report/service"
	reservationRepository "mesa/internal/domains/reservation/repository"
	reservationService "mesa/internal/domains/reservation/service"
	scheduleRepository "mesa/internal/domains/schedule/repository"
	scheduleService "mesa/internal/domains/schedule/service"
	tableRepository "mesa/internal/domains/table/repository"
	tableService "mesa/internal/domains/table/service"
	userRepository "mesa/internal/domains/user/repository"

	authHandler "mesa/internal/handlers/auth"
	availabilityHandler "mesa/internal/handlers/availability"
	customerHandler "mesa/internal/handlers/customer"
	healthHandler "mesa/internal/handlers/health"
	realtimeHandler "mesa/internal/handlers/realtime"
	reportHandler "mesa/internal/handlers/report"
	reservationHandler "mesa/internal/handlers/reservation"
	scheduleHandler "mesa/internal/handlers/schedule"
	tableHandler "mesa/internal/handlers/table"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var eventing = wire.NewSet(
	realtime.NewHub,
	events.NewRelay,
	wire.Bind(new(events.Broadcaster), new(*realtime.Hub)),
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
)

var tableDomain = wire.NewSet(
	tableRepository.New,
	tableService.New,
)

var scheduleDomain = wire.NewSet(
	scheduleRepository.New,
	scheduleService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var availabilityDomain = wire.NewSet(
	availabilityService.New,
)

var reportDomain = wire.NewSet(
	reportService.New,
)

var domains = wire.NewSet(
	authDomain,
	customerDomain,
	tableDomain,
	scheduleDomain,
	reservationDomain,
	availabilityDomain,
	reportDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	customerHandler.New,
	tableHandler.New,
	reservationHandler.New,
	availabilityHandler.New,
	scheduleHandler.New,
	reportHandler.New,
	healthHandler.New,
	realtimeHandler.New,
	router.New,
)

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		eventing,
		domains,
		routing,
		http.New,
		tasks.NewRunner,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
