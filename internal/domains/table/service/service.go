package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"mesa/config"
	"mesa/infras/otel"
	"mesa/internal/domains/reservation/repository"
	"mesa/internal/domains/table/model/dto"
	tableRepo "mesa/internal/domains/table/repository"
	"mesa/internal/events"
	"mesa/shared"
	"mesa/shared/cache"
	"mesa/shared/constant"
	"mesa/shared/failure"
	"mesa/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetTable     = "table:get"
	cacheGetAllTables = "table:gets"
)

type Table interface {
	Create(ctx context.Context, req dto.CreateTableRequest) (dto.TableResponse, error)
	GetAll(ctx context.Context, activeOnly bool) (dto.GetTablesResponse, error)
	Get(ctx context.Context, id string) (dto.TableResponse, error)
	Update(ctx context.Context, req dto.UpdateTableRequest, id string) (dto.TableResponse, error)
	Delete(ctx context.Context, id string) error
	OccupancySnapshot(ctx context.Context, reference time.Time) (dto.OccupancySnapshotResponse, error)
	PublishOccupancy(ctx context.Context)
}

type serviceImpl struct {
	repo            tableRepo.Table
	reservationRepo repository.Reservation
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
	publisher       events.Publisher
}

func New(repo tableRepo.Table, reservationRepo repository.Reservation, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, publisher events.Publisher) Table {
	return &serviceImpl{
		repo:            repo,
		reservationRepo: reservationRepo,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
		publisher:       publisher,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTableRequest) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	table := req.ToModel()

	taken, err := s.repo.NumberTaken(ctx, table.Number, table.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check table number")

		return res, fmt.Errorf("failed to check table number: %w", err)
	}

	if taken {
		return res, failure.Conflict("table number already in use") //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, table); err != nil {
		log.Error().Err(err).Msg("failed to create table")

		return res, fmt.Errorf("failed to create table: %w", err)
	}

	s.afterMutation(ctx, table.ID)

	res.FromModel(table)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, activeOnly bool) (res dto.GetTablesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAllTables, fmt.Sprintf("%t", activeOnly))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	tables, err := s.repo.GetAll(ctx, activeOnly)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tables")

		return res, fmt.Errorf("failed to get tables: %w", err)
	}

	res.FromModels(tables)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tables to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	table, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return res, fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == constant.Empty {
		return res, failure.NotFound("table not found") //nolint:wrapcheck
	}

	res.FromModel(table)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTableRequest, id string) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	table, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return res, fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == constant.Empty {
		return res, failure.NotFound("table not found") //nolint:wrapcheck
	}

	req.ApplyTo(&table)

	taken, err := s.repo.NumberTaken(ctx, table.Number, table.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check table number")

		return res, fmt.Errorf("failed to check table number: %w", err)
	}

	if taken {
		return res, failure.Conflict("table number already in use") //nolint:wrapcheck
	}

	table.UpdatedAt = timezone.Now()

	if err = s.repo.Update(ctx, table); err != nil {
		log.Error().Err(err).Msg("failed to update table")

		return res, fmt.Errorf("failed to update table: %w", err)
	}

	s.afterMutation(ctx, id)

	res.FromModel(table)

	return res, nil
}

// Delete removes the table; the schema cascades the removal onto its
// reservations.
func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Delete")
	defer scope.End()

	table, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == constant.Empty {
		return failure.NotFound("table not found") //nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to delete table")

		return fmt.Errorf("failed to delete table: %w", err)
	}

	s.afterMutation(ctx, id)

	return nil
}

// OccupancySnapshot reads which tables hold a non-cancelled
// reservation covering the reference instant. Always computed fresh,
// never cached, so it reflects the latest committed mutation.
func (s *serviceImpl) OccupancySnapshot(ctx context.Context, reference time.Time) (res dto.OccupancySnapshotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.OccupancySnapshot")
	defer scope.End()
	defer scope.TraceIfError(err)

	if reference.IsZero() {
		reference = timezone.Now()
	}

	tables, err := s.repo.GetAll(ctx, false)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tables")

		return res, fmt.Errorf("failed to get tables: %w", err)
	}

	occupiedIDs, err := s.reservationRepo.OccupiedTableIDs(ctx, reference)
	if err != nil {
		log.Error().Err(err).Msg("failed to get occupied tables")

		return res, fmt.Errorf("failed to get occupied tables: %w", err)
	}

	occupied := make(map[string]bool, len(occupiedIDs))
	for _, id := range occupiedIDs {
		occupied[id] = true
	}

	res.FromModels(tables, occupied, reference)

	return res, nil
}

// PublishOccupancy recomputes the snapshot and broadcasts it. Failures
// are logged only; occupancy fan-out never fails the caller.
func (s *serviceImpl) PublishOccupancy(ctx context.Context) {
	snapshot, err := s.OccupancySnapshot(ctx, timezone.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to compute occupancy snapshot")

		return
	}

	s.publisher.Publish(ctx, events.TopicTablesOccupancy, snapshot)
}

func (s *serviceImpl) afterMutation(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTable, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete table from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTables)
		shared.InvalidateCaches(c, s.cache, "availability")
	}()

	s.PublishOccupancy(ctx)
}
