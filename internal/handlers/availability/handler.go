package availability

import (
	"net/http"
	"strconv"

	"mesa/infras/otel"
	"mesa/internal/domains/availability/service"
	"mesa/shared/constant"
	"mesa/shared/failure"
	"mesa/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.FindTables)
		routerGroup.Get("/slots", handler.SuggestSlots)
	})
}

// FindTables lists tables free for a slot.
// @Summary Find available tables
// @Description List active tables that fit the party and are free for the whole slot.
// @Tags Availability
// @Produce json
// @Param date query string true "Day (YYYY-MM-DD)"
// @Param time query string true "Slot start (HH:mm)"
// @Param people query int true "Party size"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Available tables"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability [get]
// @Security BearerAuth
func (handler *Handler) FindTables(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FindAvailableTables")
	defer scope.End()

	query := request.URL.Query()

	partySize, err := parsePartySize(query.Get(constant.RequestParamPeople))
	if err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.FindAvailableTables(ctx, query.Get(constant.RequestParamDate), query.Get(constant.RequestParamTime), partySize)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to find available tables")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// SuggestSlots lists a day's slots with their availability.
// @Summary Suggest slots
// @Description Walk the day's slot grid and report how many fitting tables are free at each start.
// @Tags Availability
// @Produce json
// @Param date query string true "Day (YYYY-MM-DD)"
// @Param people query int true "Party size"
// @Success 200 {object} response.Data[dto.SlotSuggestionsResponse] "Slot suggestions"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/slots [get]
// @Security BearerAuth
func (handler *Handler) SuggestSlots(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SuggestSlots")
	defer scope.End()

	query := request.URL.Query()

	partySize, err := parsePartySize(query.Get(constant.RequestParamPeople))
	if err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.SuggestSlots(ctx, query.Get(constant.RequestParamDate), partySize)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to suggest slots")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func parsePartySize(raw string) (int, error) {
	partySize, err := strconv.Atoi(raw)
	if err != nil || partySize < 1 {
		return 0, failure.BadRequestFromString("invalid people, expected a positive integer")
	}

	return partySize, nil
}
