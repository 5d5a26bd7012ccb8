package report

import (
	"net/http"

	"mesa/infras/otel"
	"mesa/internal/domains/report/service"
	"mesa/shared/constant"
	"mesa/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/occupancy", handler.Occupancy)
	})
}

// Occupancy reports utilization over a day or week.
// @Summary Occupancy report
// @Description Reservation count, occupancy percentage and peak hours over a day or week.
// @Tags Reports
// @Produce json
// @Param range query string false "day or week, defaults to day"
// @Param date query string false "Anchor day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Data[dto.OccupancyReportResponse] "Occupancy report"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/occupancy [get]
// @Security BearerAuth
func (handler *Handler) Occupancy(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOccupancyReport")
	defer scope.End()

	query := request.URL.Query()

	res, err := handler.service.Occupancy(ctx, query.Get(constant.RequestParamRange), query.Get(constant.RequestParamDate))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build occupancy report")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
