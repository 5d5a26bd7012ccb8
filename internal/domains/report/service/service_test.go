package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"mesa/config"
	"mesa/infras/otel/mocks"
	reservationMocks "mesa/internal/domains/reservation/mocks"
	reservationModel "mesa/internal/domains/reservation/model"
	"mesa/internal/domains/report/model/dto"
	"mesa/internal/domains/report/service"
	scheduleModel "mesa/internal/domains/schedule/model"
	scheduleServiceMocks "mesa/internal/domains/schedule/service/mocks"
	tableMocks "mesa/internal/domains/table/mocks"
	cacheMocks "mesa/shared/cache/mocks"
	"mesa/shared/failure"
)

func testSchedule() scheduleModel.Schedule {
	return scheduleModel.Schedule{
		OpenTime:       "10:00",
		CloseTime:      "22:00",
		Timezone:       "UTC",
		SlotMinutes:    60,
		ClosedWeekdays: scheduleModel.Weekdays{},
	}
}

func TestReportService_Occupancy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReservations := reservationMocks.NewMockReservation(ctrl)
	mockTables := tableMocks.NewMockTable(ctrl)
	mockSchedules := scheduleServiceMocks.NewMockSchedule(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockReservations, mockTables, mockSchedules, cfg, mockCache, mocks.NewOtel())

	at := func(day, hour int) time.Time {
		return time.Date(2026, 9, day, hour, 0, 0, 0, time.UTC)
	}

	t.Run("day report ranks peak hours by count", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), "report:occupancy:day:2026-09-02", gomock.Any()).Return(errors.New("cache miss"))
		mockSchedules.EXPECT().Resolve(gomock.Any()).Return(testSchedule(), nil)

		reservations := []reservationModel.Reservation{
			{ID: "r1", StartsAt: at(2, 19), Status: reservationModel.StatusConfirmed},
			{ID: "r2", StartsAt: at(2, 19), Status: reservationModel.StatusConfirmed},
			{ID: "r3", StartsAt: at(2, 19), Status: reservationModel.StatusPending},
			{ID: "r4", StartsAt: at(2, 12), Status: reservationModel.StatusConfirmed},
			{ID: "r5", StartsAt: at(2, 12), Status: reservationModel.StatusDone},
			{ID: "r6", StartsAt: at(2, 20), Status: reservationModel.StatusConfirmed},
		}

		mockReservations.EXPECT().
			FindStartingBetween(gomock.Any(), at(2, 0), at(3, 0), gomock.Any()).
			Return(reservations, nil)
		mockTables.EXPECT().CountActive(gomock.Any()).Return(5, nil)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.Occupancy(context.Background(), dto.RangeDay, "2026-09-02")

		assert.NoError(t, err)
		assert.Equal(t, dto.RangeDay, res.Range)
		assert.Equal(t, 6, res.TotalReservations)
		assert.Equal(t, 5, res.TableCount)

		// 6 reservations over 5 tables * 12 slots.
		assert.Equal(t, 10, res.OccupancyPct)

		if assert.Len(t, res.PeakHours, 3) {
			assert.Equal(t, "2026-09-02 19:00", res.PeakHours[0].Hour)
			assert.Equal(t, 3, res.PeakHours[0].Count)
			assert.Equal(t, "2026-09-02 12:00", res.PeakHours[1].Hour)
			assert.Equal(t, 2, res.PeakHours[1].Count)
			assert.Equal(t, "2026-09-02 20:00", res.PeakHours[2].Hour)
			assert.Equal(t, 1, res.PeakHours[2].Count)
		}
	})

	t.Run("week window runs monday to monday", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), "report:occupancy:week:2026-09-02", gomock.Any()).Return(errors.New("cache miss"))
		mockSchedules.EXPECT().Resolve(gomock.Any()).Return(testSchedule(), nil)

		// 2026-09-02 is a Wednesday; its ISO week starts Monday the 31st.
		weekStart := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

		mockReservations.EXPECT().
			FindStartingBetween(gomock.Any(), weekStart, weekStart.AddDate(0, 0, 7), gomock.Any()).
			Return([]reservationModel.Reservation{}, nil)
		mockTables.EXPECT().CountActive(gomock.Any()).Return(5, nil)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.Occupancy(context.Background(), dto.RangeWeek, "2026-09-02")

		assert.NoError(t, err)
		assert.Equal(t, dto.RangeWeek, res.Range)
		assert.Equal(t, 0, res.TotalReservations)
		assert.Equal(t, 0, res.OccupancyPct)
		assert.Empty(t, res.PeakHours)
	})

	t.Run("occupancy percentage is capped at 100", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))

		// One table, one slot per day.
		sched := testSchedule()
		sched.OpenTime = "10:00"
		sched.CloseTime = "11:00"
		mockSchedules.EXPECT().Resolve(gomock.Any()).Return(sched, nil)

		reservations := []reservationModel.Reservation{
			{ID: "r1", StartsAt: at(2, 10)},
			{ID: "r2", StartsAt: at(2, 10)},
			{ID: "r3", StartsAt: at(2, 10)},
		}

		mockReservations.EXPECT().
			FindStartingBetween(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(reservations, nil)
		mockTables.EXPECT().CountActive(gomock.Any()).Return(1, nil)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.Occupancy(context.Background(), dto.RangeDay, "2026-09-02")

		assert.NoError(t, err)
		assert.Equal(t, 100, res.OccupancyPct)
	})

	t.Run("unknown range", func(t *testing.T) {
		_, err := svc.Occupancy(context.Background(), "month", "2026-09-02")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("invalid date", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockSchedules.EXPECT().Resolve(gomock.Any()).Return(testSchedule(), nil)

		_, err := svc.Occupancy(context.Background(), dto.RangeDay, "02/09/2026")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
