package health

import (
	"net/http"

	"mesa/infras/postgres"
	"mesa/internal/realtime"
	"mesa/transport/http/response"

	"github.com/go-chi/chi/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	db    *postgres.Connection
	cache *goRedis.Client
	hub   *realtime.Hub
}

func New(db *postgres.Connection, cache *goRedis.Client, hub *realtime.Hub) Handler {
	return Handler{
		db:    db,
		cache: cache,
		hub:   hub,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Check)
}

type status struct {
	Postgres        string `json:"postgres"`
	Redis           string `json:"redis"`
	RealtimeClients int    `json:"realtime_clients"`
}

// Check pings the backing stores and reports connected realtime clients.
// @Summary Health check
// @Description Ping postgres and redis and report connected realtime clients.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[status] "Healthy"
// @Failure 503 {object} response.Error "SERVER UNHEALTHY"
// @Router /health [get]
func (handler *Handler) Check(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	res := status{
		Postgres:        "up",
		Redis:           "up",
		RealtimeClients: handler.hub.ClientCount(),
	}

	healthy := true

	if err := handler.db.Write.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("postgres health check failed")

		res.Postgres = "down"
		healthy = false
	}

	if err := handler.cache.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Msg("redis health check failed")

		res.Redis = "down"
		healthy = false
	}

	if !healthy {
		response.WithUnhealthy(writer)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
