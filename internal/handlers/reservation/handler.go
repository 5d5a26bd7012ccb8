package reservation

import (
	"net/http"
	"strconv"
	"time"

	"mesa/infras/otel"
	"mesa/internal/domains/reservation/model/dto"
	"mesa/internal/domains/reservation/repository"
	"mesa/internal/domains/reservation/service"
	"mesa/shared/constant"
	"mesa/shared/failure"
	"mesa/shared/validator"
	"mesa/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.Create)
		routerGroup.Get("/", handler.FindAll)
		routerGroup.Get("/today", handler.Today)
		routerGroup.Get("/dashboard", handler.Dashboard)
		routerGroup.Get("/{id}", handler.Get)
		routerGroup.Put("/{id}", handler.Update)
		routerGroup.Post("/{id}/confirm", handler.Confirm)
		routerGroup.Post("/{id}/cancel", handler.Cancel)
		routerGroup.Delete("/{id}", handler.Remove)
	})
}

// Create books a reservation.
// @Summary Create a reservation
// @Description Book a table for a customer. Rejected when the slot overlaps an active reservation.
// @Tags Reservations
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} response.Data[dto.ReservationResponse] "Reservation created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "TABLE_OCCUPIED"
// @Failure 500 {object} response.Error
// @Router /v1/reservations [post]
// @Security BearerAuth
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reservation")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// FindAll lists reservations matching optional filters.
// @Summary List reservations
// @Description List reservations filtered by status, customer, table and time window.
// @Tags Reservations
// @Produce json
// @Param status query string false "Reservation status"
// @Param customer_id query string false "Customer ID"
// @Param table_id query string false "Table ID"
// @Param from query string false "Window start (RFC3339)"
// @Param to query string false "Window end (RFC3339)"
// @Success 200 {object} response.Data[dto.GetReservationsResponse] "Reservations"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [get]
// @Security BearerAuth
func (handler *Handler) FindAll(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAllReservations")
	defer scope.End()

	filter, err := filterFromRequest(request)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.FindAll(ctx, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Today lists reservations for the current business day.
// @Summary Today's reservations
// @Description List every reservation starting during the current business day.
// @Tags Reservations
// @Produce json
// @Success 200 {object} response.Data[dto.GetReservationsResponse] "Reservations"
// @Failure 500 {object} response.Error
// @Router /v1/reservations/today [get]
// @Security BearerAuth
func (handler *Handler) Today(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTodayReservations")
	defer scope.End()

	res, err := handler.service.Today(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get today's reservations")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Dashboard summarizes a day plus the days ahead.
// @Summary Dashboard overview
// @Description Confirmed reservations for the given day, upcoming ones grouped per day, and the day's occupancy percentage.
// @Tags Reservations
// @Produce json
// @Param date query string false "Anchor day (YYYY-MM-DD), defaults to today"
// @Param days query int false "How many days ahead to include, defaults to 7"
// @Success 200 {object} response.Data[dto.DashboardOverviewResponse] "Overview"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/dashboard [get]
// @Security BearerAuth
func (handler *Handler) Dashboard(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDashboardOverview")
	defer scope.End()

	date := request.URL.Query().Get(constant.RequestParamDate)

	days := 0
	if raw := request.URL.Query().Get(constant.RequestParamDays); raw != constant.Empty {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.WithError(writer, failure.BadRequestFromString("invalid days, expected an integer"))

			return
		}

		days = parsed
	}

	res, err := handler.service.DashboardOverview(ctx, date, days)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard overview")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Get fetches one reservation.
// @Summary Get a reservation
// @Description Fetch a single reservation by id.
// @Tags Reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Reservation"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [get]
// @Security BearerAuth
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservation")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Update reschedules or edits a reservation.
// @Summary Update a reservation
// @Description Edit a reservation. Moving the slot re-runs the overlap check against other reservations.
// @Tags Reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.UpdateReservationRequest true "Update Reservation Request"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Reservation updated"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "TABLE_OCCUPIED"
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [put]
// @Security BearerAuth
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservation")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateReservationRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update reservation")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Confirm marks a reservation as confirmed.
// @Summary Confirm a reservation
// @Description Mark a reservation CONFIRMED.
// @Tags Reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Reservation confirmed"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/confirm [post]
// @Security BearerAuth
func (handler *Handler) Confirm(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmReservation")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Confirm(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm reservation")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Cancel marks a reservation as cancelled, freeing its slot.
// @Summary Cancel a reservation
// @Description Mark a reservation CANCELLED. The slot immediately becomes bookable again.
// @Tags Reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Reservation cancelled"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) Cancel(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelReservation")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Cancel(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel reservation")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Remove deletes a reservation record.
// @Summary Delete a reservation
// @Description Delete a reservation that has already finished. Pass force=true to delete regardless.
// @Tags Reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Param force query bool false "Delete even if not finished"
// @Success 200 {object} response.Message "Reservation deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "RESERVATION_NOT_FINISHED"
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [delete]
// @Security BearerAuth
func (handler *Handler) Remove(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReservation")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	force, _ := strconv.ParseBool(request.URL.Query().Get(constant.RequestParamForce))

	if err := handler.service.Remove(ctx, id, force); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete reservation")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Reservation deleted successfully")
}

func filterFromRequest(request *http.Request) (repository.Filter, error) {
	query := request.URL.Query()

	filter := repository.Filter{
		Status:     query.Get(constant.RequestParamStatus),
		CustomerID: query.Get(constant.RequestParamCustomerID),
		TableID:    query.Get(constant.RequestParamTableID),
	}

	if raw := query.Get(constant.RequestParamFrom); raw != constant.Empty {
		parsed, err := time.Parse(constant.DateFormat, raw)
		if err != nil {
			return repository.Filter{}, failure.BadRequestFromString("invalid from, expected RFC3339")
		}

		filter.From = &parsed
	}

	if raw := query.Get(constant.RequestParamTo); raw != constant.Empty {
		parsed, err := time.Parse(constant.DateFormat, raw)
		if err != nil {
			return repository.Filter{}, failure.BadRequestFromString("invalid to, expected RFC3339")
		}

		filter.To = &parsed
	}

	return filter, nil
}
