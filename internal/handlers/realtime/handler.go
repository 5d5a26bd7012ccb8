package realtime

import (
	"net/http"

	"mesa/config"
	"mesa/infras/jwt"
	"mesa/internal/realtime"
	"mesa/shared/constant"
	"mesa/shared/failure"
	"mesa/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	hub        *realtime.Hub
	jwtService jwt.JWT
	cfg        *config.Config
	upgrader   websocket.Upgrader
}

func New(hub *realtime.Hub, jwtService jwt.JWT, cfg *config.Config) Handler {
	return Handler{
		hub:        hub,
		jwtService: jwtService,
		cfg:        cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/ws", handler.Connect)
}

// Connect upgrades the request to a websocket and streams domain events.
// Browsers cannot set an Authorization header on a websocket dial, so the
// access token travels as a query parameter instead.
// @Summary Realtime event stream
// @Description Upgrade to a websocket. Clients receive every event until they narrow the set with {"action":"subscribe","topic":"..."} commands.
// @Tags Realtime
// @Param token query string true "Access token"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} response.Error
// @Router /ws [get]
func (handler *Handler) Connect(writer http.ResponseWriter, request *http.Request) {
	token := request.URL.Query().Get(constant.RequestParamToken)
	if token == constant.Empty {
		response.WithError(writer, failure.Unauthorized("missing token"))

		return
	}

	if _, err := handler.jwtService.ValidateToken(token, jwt.AccessToken); err != nil {
		response.WithError(writer, failure.Unauthorized("invalid token"))

		return
	}

	conn, err := handler.upgrader.Upgrade(writer, request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("failed to upgrade websocket connection")

		return
	}

	client := realtime.NewClient(handler.hub, conn, handler.cfg.Realtime.SendBufferSize)
	handler.hub.Attach(client)

	go client.WritePump()
	go client.ReadPump()
}
