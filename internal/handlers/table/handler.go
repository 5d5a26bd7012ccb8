package table

import (
	"net/http"
	"strconv"
	"time"

	"mesa/infras/otel"
	"mesa/internal/domains/table/model/dto"
	"mesa/internal/domains/table/service"
	"mesa/shared/constant"
	"mesa/shared/failure"
	"mesa/shared/validator"
	"mesa/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Table
	otel    otel.Otel
}

func New(service service.Table, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tables", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.Create)
		routerGroup.Get("/", handler.GetAll)
		routerGroup.Get("/occupancy", handler.Occupancy)
		routerGroup.Get("/{id}", handler.Get)
		routerGroup.Put("/{id}", handler.Update)
		routerGroup.Delete("/{id}", handler.Delete)
	})
}

// Create registers a table.
// @Summary Create a table
// @Description Register a new dining table.
// @Tags Tables
// @Accept json
// @Produce json
// @Param request body dto.CreateTableRequest true "Create Table Request"
// @Success 201 {object} response.Data[dto.TableResponse] "Table created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables [post]
// @Security BearerAuth
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTable")
	defer scope.End()

	req := dto.CreateTableRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create table")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetAll lists tables.
// @Summary List tables
// @Description List tables ordered by number. Pass active=true to hide deactivated ones.
// @Tags Tables
// @Produce json
// @Param active query bool false "Only active tables"
// @Success 200 {object} response.Data[dto.GetTablesResponse] "Tables"
// @Failure 500 {object} response.Error
// @Router /v1/tables [get]
// @Security BearerAuth
func (handler *Handler) GetAll(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAllTables")
	defer scope.End()

	activeOnly, _ := strconv.ParseBool(request.URL.Query().Get(constant.RequestParamActive))

	res, err := handler.service.GetAll(ctx, activeOnly)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tables")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Occupancy reports which tables are occupied at a point in time.
// @Summary Table occupancy snapshot
// @Description Report each active table's occupancy at the given time, defaulting to now.
// @Tags Tables
// @Produce json
// @Param time query string false "Reference time (RFC3339)"
// @Success 200 {object} response.Data[dto.OccupancySnapshotResponse] "Occupancy snapshot"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/occupancy [get]
// @Security BearerAuth
func (handler *Handler) Occupancy(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTableOccupancy")
	defer scope.End()

	var reference time.Time

	if raw := request.URL.Query().Get(constant.RequestParamTime); raw != constant.Empty {
		parsed, err := time.Parse(constant.DateFormat, raw)
		if err != nil {
			scope.TraceError(err)

			response.WithError(writer, failure.BadRequestFromString("invalid time, expected RFC3339"))

			return
		}

		reference = parsed
	}

	res, err := handler.service.OccupancySnapshot(ctx, reference)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get table occupancy")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Get fetches one table.
// @Summary Get a table
// @Description Fetch a single table by id.
// @Tags Tables
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} response.Data[dto.TableResponse] "Table"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/{id} [get]
// @Security BearerAuth
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTable")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get table")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Update edits a table.
// @Summary Update a table
// @Description Update a table's number, capacity, location or active flag.
// @Tags Tables
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Param request body dto.UpdateTableRequest true "Update Table Request"
// @Success 200 {object} response.Data[dto.TableResponse] "Table updated"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/{id} [put]
// @Security BearerAuth
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTable")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateTableRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update table")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Delete removes a table.
// @Summary Delete a table
// @Description Delete a table and cascade its reservations.
// @Tags Tables
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} response.Message "Table deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/{id} [delete]
// @Security BearerAuth
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTable")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete table")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Table deleted successfully")
}
