package schedule

import (
	"net/http"

	"mesa/infras/otel"
	"mesa/internal/domains/schedule/model/dto"
	"mesa/internal/domains/schedule/service"
	"mesa/shared/constant"
	"mesa/shared/validator"
	"mesa/transport/http/middleware"
	"mesa/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Schedule
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Schedule, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/schedule", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.Get)
		routerGroup.With(handler.auth.RequireRole(constant.RoleAdmin)).Put("/", handler.Update)
	})
}

// Get returns the business schedule.
// @Summary Get the schedule
// @Description Fetch the restaurant's opening hours, timezone, slot length and closed weekdays.
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Data[dto.ScheduleResponse] "Schedule"
// @Failure 500 {object} response.Error
// @Router /v1/schedule [get]
// @Security BearerAuth
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSchedule")
	defer scope.End()

	res, err := handler.service.Get(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get schedule")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Update edits the business schedule.
// @Summary Update the schedule
// @Description Update opening hours, timezone, slot length or closed weekdays. Admin only.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param request body dto.UpdateScheduleRequest true "Update Schedule Request"
// @Success 200 {object} response.Data[dto.ScheduleResponse] "Schedule updated"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedule [put]
// @Security BearerAuth
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSchedule")
	defer scope.End()

	req := dto.UpdateScheduleRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update schedule")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
