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
	"mesa/internal/domains/availability/service"
	reservationMocks "mesa/internal/domains/reservation/mocks"
	scheduleModel "mesa/internal/domains/schedule/model"
	scheduleServiceMocks "mesa/internal/domains/schedule/service/mocks"
	tableMocks "mesa/internal/domains/table/mocks"
	tableModel "mesa/internal/domains/table/model"
	cacheMocks "mesa/shared/cache/mocks"
	"mesa/shared/failure"
)

func testSchedule(open, close string) scheduleModel.Schedule {
	return scheduleModel.Schedule{
		OpenTime:       open,
		CloseTime:      close,
		Timezone:       "UTC",
		SlotMinutes:    60,
		ClosedWeekdays: scheduleModel.Weekdays{},
	}
}

func TestAvailabilityService_FindAvailableTables(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTables := tableMocks.NewMockTable(ctrl)
	mockReservations := reservationMocks.NewMockReservation(ctrl)
	mockSchedules := scheduleServiceMocks.NewMockSchedule(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockTables, mockReservations, mockSchedules, cfg, mockCache, mocks.NewOtel())

	candidates := []tableModel.Table{
		{ID: "t1", Number: 1, Capacity: 2, Active: true},
		{ID: "t2", Number: 2, Capacity: 4, Active: true},
		{ID: "t3", Number: 3, Capacity: 6, Active: true},
	}

	tests := []struct {
		name       string
		date       string
		clock      string
		setupMock  func()
		wantErr    bool
		wantCode   int
		wantTables int
	}{
		{
			name:  "conflicted tables are filtered out",
			date:  "2026-09-02",
			clock: "19:00",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockSchedules.EXPECT().Resolve(gomock.Any()).Return(testSchedule("10:00", "22:00"), nil)
				mockTables.EXPECT().GetCandidates(gomock.Any(), 2).Return(candidates, nil)

				start := time.Date(2026, 9, 2, 19, 0, 0, 0, time.UTC)
				end := start.Add(time.Hour)

				mockReservations.EXPECT().HasConflict(gomock.Any(), "t1", start, end, "").Return(false, nil)
				mockReservations.EXPECT().HasConflict(gomock.Any(), "t2", start, end, "").Return(true, nil)
				mockReservations.EXPECT().HasConflict(gomock.Any(), "t3", start, end, "").Return(false, nil)

				mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantTables: 2,
		},
		{
			name:  "cache hit skips the lookup",
			date:  "2026-09-02",
			clock: "19:00",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), "availability:tables:2026-09-02:19:00:2", gomock.Any()).Return(nil)
			},
			wantTables: 0,
		},
		{
			name:  "slot before opening is rejected",
			date:  "2026-09-02",
			clock: "03:00",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockSchedules.EXPECT().Resolve(gomock.Any()).Return(testSchedule("10:00", "22:00"), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:  "closed weekday is rejected",
			date:  "2026-09-07",
			clock: "12:00",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))

				sched := testSchedule("10:00", "22:00")
				sched.ClosedWeekdays = scheduleModel.Weekdays{1}

				mockSchedules.EXPECT().Resolve(gomock.Any()).Return(sched, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:  "malformed clock",
			date:  "2026-09-02",
			clock: "late",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockSchedules.EXPECT().Resolve(gomock.Any()).Return(testSchedule("10:00", "22:00"), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:  "candidate lookup error",
			date:  "2026-09-02",
			clock: "19:00",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockSchedules.EXPECT().Resolve(gomock.Any()).Return(testSchedule("10:00", "22:00"), nil)
				mockTables.EXPECT().GetCandidates(gomock.Any(), 2).Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.FindAvailableTables(context.Background(), tt.date, tt.clock, 2)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Len(t, res.Tables, tt.wantTables)
		})
	}
}

func TestAvailabilityService_SuggestSlots(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTables := tableMocks.NewMockTable(ctrl)
	mockReservations := reservationMocks.NewMockReservation(ctrl)
	mockSchedules := scheduleServiceMocks.NewMockSchedule(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockTables, mockReservations, mockSchedules, cfg, mockCache, mocks.NewOtel())

	candidates := []tableModel.Table{
		{ID: "t1", Number: 1, Capacity: 4, Active: true},
		{ID: "t2", Number: 2, Capacity: 4, Active: true},
	}

	t.Run("one suggestion per slot with free counts", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))

		// Two slots: 10:00 and 11:00.
		mockSchedules.EXPECT().Resolve(gomock.Any()).Return(testSchedule("10:00", "12:00"), nil)

		mockTables.EXPECT().GetCandidates(gomock.Any(), 4).Return(candidates, nil).Times(2)

		firstSlot := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
		secondSlot := time.Date(2026, 9, 2, 11, 0, 0, 0, time.UTC)

		mockReservations.EXPECT().HasConflict(gomock.Any(), "t1", firstSlot, firstSlot.Add(time.Hour), "").Return(false, nil)
		mockReservations.EXPECT().HasConflict(gomock.Any(), "t2", firstSlot, firstSlot.Add(time.Hour), "").Return(true, nil)
		mockReservations.EXPECT().HasConflict(gomock.Any(), "t1", secondSlot, secondSlot.Add(time.Hour), "").Return(false, nil)
		mockReservations.EXPECT().HasConflict(gomock.Any(), "t2", secondSlot, secondSlot.Add(time.Hour), "").Return(false, nil)

		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.SuggestSlots(context.Background(), "2026-09-02", 4)

		assert.NoError(t, err)
		assert.Equal(t, "2026-09-02", res.Date)

		if assert.Len(t, res.Slots, 2) {
			assert.Equal(t, "10:00", res.Slots[0].Time)
			assert.Equal(t, 1, res.Slots[0].AvailableCount)
			assert.Equal(t, "11:00", res.Slots[1].Time)
			assert.Equal(t, 2, res.Slots[1].AvailableCount)
		}
	})

	t.Run("schedule resolution error", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockSchedules.EXPECT().Resolve(gomock.Any()).Return(scheduleModel.Schedule{}, errors.New("database error"))

		_, err := svc.SuggestSlots(context.Background(), "2026-09-02", 4)

		assert.Error(t, err)
	})
}
