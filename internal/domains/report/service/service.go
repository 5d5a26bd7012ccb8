package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"mesa/config"
	"mesa/infras/otel"
	reservationModel "mesa/internal/domains/reservation/model"
	reservationRepo "mesa/internal/domains/reservation/repository"
	"mesa/internal/domains/report/model/dto"
	"mesa/internal/domains/schedule/policy"
	scheduleService "mesa/internal/domains/schedule/service"
	tableRepo "mesa/internal/domains/table/repository"
	"mesa/shared"
	"mesa/shared/cache"
	"mesa/shared/constant"
	"mesa/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheOccupancyReport = "report:occupancy"

	peakHourLimit = 3
	daysPerWeek   = 7
)

type Report interface {
	Occupancy(ctx context.Context, rangeKind, date string) (dto.OccupancyReportResponse, error)
}

type serviceImpl struct {
	reservationRepo reservationRepo.Reservation
	tableRepo       tableRepo.Table
	schedules       scheduleService.Schedule
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(reservationRepo reservationRepo.Reservation, tableRepo tableRepo.Table, schedules scheduleService.Schedule, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Report {
	return &serviceImpl{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		schedules:       schedules,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

// Occupancy aggregates the non-cancelled reservations of the local day
// or ISO week containing date into counts, an occupancy percentage and
// the top peak hours.
func (s *serviceImpl) Occupancy(ctx context.Context, rangeKind, date string) (res dto.OccupancyReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.Occupancy")
	defer scope.End()
	defer scope.TraceIfError(err)

	if rangeKind == constant.Empty {
		rangeKind = dto.RangeDay
	}

	if rangeKind != dto.RangeDay && rangeKind != dto.RangeWeek {
		return res, failure.BadRequestFromString("range must be day or week") //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheOccupancyReport, rangeKind, date)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	sched, err := s.schedules.Resolve(ctx)
	if err != nil {
		return res, err
	}

	loc, err := sched.Location()
	if err != nil {
		return res, failure.BadRequestFromString("schedule timezone is invalid") //nolint:wrapcheck
	}

	from, to, err := windowBounds(rangeKind, date, loc)
	if err != nil {
		return res, err
	}

	notCancelled := []string{
		reservationModel.StatusPending,
		reservationModel.StatusConfirmed,
		reservationModel.StatusNoShow,
		reservationModel.StatusDone,
	}

	reservations, err := s.reservationRepo.FindStartingBetween(ctx, from, to, notCancelled)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations for report")

		return res, fmt.Errorf("failed to get reservations for report: %w", err)
	}

	activeTables, err := s.tableRepo.CountActive(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count active tables")

		return res, fmt.Errorf("failed to count active tables: %w", err)
	}

	estimatedSlots := policy.EstimateDailySlots(sched)
	if rangeKind == dto.RangeWeek {
		estimatedSlots *= daysPerWeek
	}

	res.Range = rangeKind
	res.From = from.Format(constant.DateFormat)
	res.To = to.Format(constant.DateFormat)
	res.TotalReservations = len(reservations)
	res.TableCount = activeTables
	res.OccupancyPct = occupancyPct(len(reservations), activeTables, estimatedSlots)
	res.PeakHours = peakHours(reservations, loc)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save occupancy report to cache")
		}
	}()

	return res, nil
}

// windowBounds computes the half-open report window. Weeks run Monday
// to Monday in the schedule timezone.
func windowBounds(rangeKind, date string, loc *time.Location) (time.Time, time.Time, error) {
	var reference time.Time

	if date == constant.Empty {
		reference = time.Now().In(loc)
	} else {
		parsed, err := time.ParseInLocation(constant.DayFormat, date, loc)
		if err != nil {
			return time.Time{}, time.Time{}, failure.BadRequestFromString("invalid date, expected YYYY-MM-DD") //nolint:wrapcheck
		}

		reference = parsed
	}

	dayStart := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, loc)

	if rangeKind == dto.RangeDay {
		return dayStart, dayStart.AddDate(0, 0, 1), nil
	}

	offset := (int(dayStart.Weekday()) + 6) % daysPerWeek
	weekStart := dayStart.AddDate(0, 0, -offset)

	return weekStart, weekStart.AddDate(0, 0, daysPerWeek), nil
}

func occupancyPct(reservationCount, activeTables, estimatedSlots int) int {
	capacity := activeTables * estimatedSlots
	if capacity <= 0 {
		return 0
	}

	pct := int(math.Round(float64(reservationCount) / float64(capacity) * 100))
	if pct > 100 {
		pct = 100
	}

	return pct
}

// peakHours ranks local hour buckets by reservation count, keeping
// first-seen order between equal counts.
func peakHours(reservations []reservationModel.Reservation, loc *time.Location) []dto.PeakHour {
	buckets := []dto.PeakHour{}
	index := map[string]int{}

	for _, reservation := range reservations {
		hour := reservation.StartsAt.In(loc).Format(constant.HourBucketFormat)

		position, ok := index[hour]
		if !ok {
			position = len(buckets)
			index[hour] = position
			buckets = append(buckets, dto.PeakHour{Hour: hour})
		}

		buckets[position].Count++
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})

	if len(buckets) > peakHourLimit {
		buckets = buckets[:peakHourLimit]
	}

	return buckets
}
