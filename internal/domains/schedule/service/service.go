package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mesa/config"
	"mesa/infras/otel"
	"mesa/internal/domains/schedule/model"
	"mesa/internal/domains/schedule/model/dto"
	"mesa/internal/domains/schedule/repository"
	"mesa/shared"
	"mesa/shared/cache"
	"mesa/shared/constant"
	"mesa/shared/failure"
	gModel "mesa/shared/model"
	"mesa/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetSchedule = "schedule:get"
)

type Schedule interface {
	Resolve(ctx context.Context) (model.Schedule, error)
	Get(ctx context.Context) (dto.ScheduleResponse, error)
	Update(ctx context.Context, req dto.UpdateScheduleRequest) (dto.ScheduleResponse, error)
}

type serviceImpl struct {
	repo  repository.Schedule
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Schedule, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Schedule {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Resolve returns the singleton schedule, seeding the defaults the
// first time a fresh deployment asks for it.
func (s *serviceImpl) Resolve(ctx context.Context) (res model.Schedule, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".schedule.Resolve")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheGetSchedule, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotSeeded) {
			log.Error().Err(err).Msg("failed to get schedule")

			return res, fmt.Errorf("failed to get schedule: %w", err)
		}

		res = defaultSchedule()
		if err = s.repo.Insert(ctx, res); err != nil {
			log.Error().Err(err).Msg("failed to seed schedule")

			return res, fmt.Errorf("failed to seed schedule: %w", err)
		}

		log.Info().Msg("seeded default business schedule")
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetSchedule, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save schedule to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context) (res dto.ScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".schedule.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	sched, err := s.Resolve(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(sched)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateScheduleRequest) (res dto.ScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".schedule.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	sched, err := s.Resolve(ctx)
	if err != nil {
		return res, err
	}

	req.ApplyTo(&sched)

	if err = validateSchedule(sched); err != nil {
		return res, err
	}

	sched.UpdatedAt = timezone.Now()

	if err = s.repo.Update(ctx, sched); err != nil {
		log.Error().Err(err).Msg("failed to update schedule")

		return res, fmt.Errorf("failed to update schedule: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, cacheGetSchedule); err != nil {
			log.Error().Err(err).Msg("failed to delete schedule from cache")
		}

		shared.InvalidateCaches(c, s.cache, "availability")
		shared.InvalidateCaches(c, s.cache, "report")
	}()

	res.FromModel(sched)

	return res, nil
}

func validateSchedule(sched model.Schedule) error {
	if _, err := time.LoadLocation(sched.Timezone); err != nil {
		return failure.BadRequestFromString("unknown timezone") //nolint:wrapcheck
	}

	openAt, err := time.Parse(constant.ClockFormat, sched.OpenTime)
	if err != nil {
		return failure.BadRequestFromString("invalid open_time") //nolint:wrapcheck
	}

	closeAt, err := time.Parse(constant.ClockFormat, sched.CloseTime)
	if err != nil {
		return failure.BadRequestFromString("invalid close_time") //nolint:wrapcheck
	}

	if !openAt.Before(closeAt) {
		return failure.BadRequestFromString("open_time must be before close_time") //nolint:wrapcheck
	}

	return nil
}

func defaultSchedule() model.Schedule {
	now := timezone.Now()

	return model.Schedule{
		ID:             uuid.NewString(),
		OpenTime:       model.DefaultOpenTime,
		CloseTime:      model.DefaultCloseTime,
		Timezone:       model.DefaultTimezone,
		SlotMinutes:    model.DefaultSlotMinutes,
		ClosedWeekdays: model.DefaultClosedWeekdays(),
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
