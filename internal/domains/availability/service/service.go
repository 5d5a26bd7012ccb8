package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"mesa/config"
	"mesa/infras/otel"
	"mesa/internal/domains/availability/model/dto"
	reservationRepo "mesa/internal/domains/reservation/repository"
	scheduleModel "mesa/internal/domains/schedule/model"
	"mesa/internal/domains/schedule/policy"
	scheduleService "mesa/internal/domains/schedule/service"
	tableModel "mesa/internal/domains/table/model"
	tableRepo "mesa/internal/domains/table/repository"
	"mesa/shared"
	"mesa/shared/cache"
	"mesa/shared/constant"
	"mesa/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheAvailability = "availability:tables"
	cacheSuggestSlots = "availability:slots"
)

type Availability interface {
	FindAvailableTables(ctx context.Context, date, clock string, partySize int) (dto.AvailabilityResponse, error)
	SuggestSlots(ctx context.Context, date string, partySize int) (dto.SlotSuggestionsResponse, error)
}

type serviceImpl struct {
	tableRepo       tableRepo.Table
	reservationRepo reservationRepo.Reservation
	schedules       scheduleService.Schedule
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(tableRepo tableRepo.Table, reservationRepo reservationRepo.Reservation, schedules scheduleService.Schedule, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Availability {
	return &serviceImpl{
		tableRepo:       tableRepo,
		reservationRepo: reservationRepo,
		schedules:       schedules,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

// FindAvailableTables lists active tables that can seat the party and
// have no conflicting reservation over the slot starting at
// date+clock, smallest fitting table first.
func (s *serviceImpl) FindAvailableTables(ctx context.Context, date, clock string, partySize int) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.FindAvailableTables")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheAvailability, date, clock, fmt.Sprintf("%d", partySize))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	sched, err := s.schedules.Resolve(ctx)
	if err != nil {
		return res, err
	}

	start, err := parseSlotStart(date, clock, sched)
	if err != nil {
		return res, err
	}

	// No point listing tables for a slot the reservation flow would
	// reject anyway.
	if !policy.WithinSchedule(start, sched) {
		return res, failure.BadRequestFromString("requested slot is outside business hours") //nolint:wrapcheck
	}

	tables, err := s.availableTables(ctx, start, partySize, sched)
	if err != nil {
		return res, err
	}

	res.FromModels(tables, date, clock, partySize)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save availability to cache")
		}
	}()

	return res, nil
}

// SuggestSlots walks every slot of the business day and records how
// many tables remain free for the party at each, in slot order.
func (s *serviceImpl) SuggestSlots(ctx context.Context, date string, partySize int) (res dto.SlotSuggestionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.SuggestSlots")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheSuggestSlots, date, fmt.Sprintf("%d", partySize))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	sched, err := s.schedules.Resolve(ctx)
	if err != nil {
		return res, err
	}

	res.Date = date
	res.PartySize = partySize
	res.Slots = []dto.SlotSuggestion{}

	for _, clock := range policy.EnumerateSlots(sched) {
		start, err := parseSlotStart(date, clock, sched)
		if err != nil {
			return res, err
		}

		tables, err := s.availableTables(ctx, start, partySize, sched)
		if err != nil {
			return res, err
		}

		res.Slots = append(res.Slots, dto.SlotSuggestion{
			Time:           clock,
			AvailableCount: len(tables),
		})
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save slot suggestions to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) availableTables(ctx context.Context, start time.Time, partySize int, sched scheduleModel.Schedule) ([]tableModel.Table, error) {
	candidates, err := s.tableRepo.GetCandidates(ctx, partySize)
	if err != nil {
		log.Error().Err(err).Msg("failed to get candidate tables")

		return nil, fmt.Errorf("failed to get candidate tables: %w", err)
	}

	end := policy.SlotEnd(start, sched.SlotMinutes)
	available := make([]tableModel.Table, 0, len(candidates))

	for _, table := range candidates {
		conflict, err := s.reservationRepo.HasConflict(ctx, table.ID, start, end, constant.Empty)
		if err != nil {
			log.Error().Err(err).Msg("failed to check reservation conflict")

			return nil, fmt.Errorf("failed to check reservation conflict: %w", err)
		}

		if !conflict {
			available = append(available, table)
		}
	}

	return available, nil
}

// parseSlotStart combines a calendar date and a clock into an instant
// in the schedule timezone.
func parseSlotStart(date, clock string, sched scheduleModel.Schedule) (time.Time, error) {
	loc, err := sched.Location()
	if err != nil {
		return time.Time{}, failure.BadRequestFromString("schedule timezone is invalid") //nolint:wrapcheck
	}

	start, err := time.ParseInLocation(constant.DayFormat+" "+constant.ClockFormat, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString("invalid date or time, expected YYYY-MM-DD and HH:mm") //nolint:wrapcheck
	}

	return start, nil
}
