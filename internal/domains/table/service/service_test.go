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
	tableMocks "mesa/internal/domains/table/mocks"
	"mesa/internal/domains/table/model"
	"mesa/internal/domains/table/model/dto"
	"mesa/internal/domains/table/service"
	eventsMocks "mesa/internal/events/mocks"
	cacheMocks "mesa/shared/cache/mocks"
	"mesa/shared/failure"
)

type tableServiceMocks struct {
	repo         *tableMocks.MockTable
	reservations *reservationMocks.MockReservation
	cache        *cacheMocks.MockRedisCache
	publisher    *eventsMocks.MockPublisher
}

func newTableService(ctrl *gomock.Controller) (service.Table, tableServiceMocks) {
	m := tableServiceMocks{
		repo:         tableMocks.NewMockTable(ctrl),
		reservations: reservationMocks.NewMockReservation(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
		publisher:    eventsMocks.NewMockPublisher(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.repo, m.reservations, cfg, m.cache, mocks.NewOtel(), m.publisher)

	return svc, m
}

// expectOccupancyFanout covers the snapshot broadcast and the cache
// invalidation that follow every table mutation.
func expectOccupancyFanout(m tableServiceMocks) {
	m.repo.EXPECT().GetAll(gomock.Any(), false).Return([]model.Table{}, nil)
	m.reservations.EXPECT().OccupiedTableIDs(gomock.Any(), gomock.Any()).Return(nil, nil)
	m.publisher.EXPECT().Publish(gomock.Any(), "tables.occupancy", gomock.Any())
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func TestTableService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTableService(ctrl)

	tests := []struct {
		name      string
		req       dto.CreateTableRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req:  dto.CreateTableRequest{Number: 7, Capacity: 4},
			setupMock: func() {
				m.repo.EXPECT().NumberTaken(gomock.Any(), 7, gomock.Any()).Return(false, nil)
				m.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				expectOccupancyFanout(m)
			},
		},
		{
			name: "duplicate table number",
			req:  dto.CreateTableRequest{Number: 7, Capacity: 4},
			setupMock: func() {
				m.repo.EXPECT().NumberTaken(gomock.Any(), 7, gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			req:  dto.CreateTableRequest{Number: 7, Capacity: 4},
			setupMock: func() {
				m.repo.EXPECT().NumberTaken(gomock.Any(), 7, gomock.Any()).Return(false, nil)
				m.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, 7, res.Number)
		})
	}
}

func TestTableService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTableService(ctrl)

	existing := model.Table{ID: "t1", Number: 7, Capacity: 4, Active: true}
	newNumber := 8

	tests := []struct {
		name      string
		req       dto.UpdateTableRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful update",
			req:  dto.UpdateTableRequest{Number: &newNumber},
			setupMock: func() {
				m.repo.EXPECT().Get(gomock.Any(), "t1").Return(existing, nil)
				m.repo.EXPECT().NumberTaken(gomock.Any(), 8, "t1").Return(false, nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
				expectOccupancyFanout(m)
			},
		},
		{
			name: "number taken by another table",
			req:  dto.UpdateTableRequest{Number: &newNumber},
			setupMock: func() {
				m.repo.EXPECT().Get(gomock.Any(), "t1").Return(existing, nil)
				m.repo.EXPECT().NumberTaken(gomock.Any(), 8, "t1").Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "unknown table",
			req:  dto.UpdateTableRequest{Number: &newNumber},
			setupMock: func() {
				m.repo.EXPECT().Get(gomock.Any(), "t1").Return(model.Table{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			_, err := svc.Update(context.Background(), tt.req, "t1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestTableService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTableService(ctrl)

	t.Run("removes an existing table", func(t *testing.T) {
		m.repo.EXPECT().Get(gomock.Any(), "t1").Return(model.Table{ID: "t1", Number: 7}, nil)
		m.repo.EXPECT().Delete(gomock.Any(), "t1").Return(nil)
		expectOccupancyFanout(m)

		assert.NoError(t, svc.Delete(context.Background(), "t1"))
	})

	t.Run("unknown table", func(t *testing.T) {
		m.repo.EXPECT().Get(gomock.Any(), "t1").Return(model.Table{}, nil)

		err := svc.Delete(context.Background(), "t1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestTableService_OccupancySnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTableService(ctrl)

	reference := time.Date(2026, 9, 2, 19, 30, 0, 0, time.UTC)

	tables := []model.Table{
		{ID: "t1", Number: 1, Capacity: 2, Active: true},
		{ID: "t2", Number: 2, Capacity: 4, Active: true},
		{ID: "t3", Number: 3, Capacity: 6, Active: false},
	}

	m.repo.EXPECT().GetAll(gomock.Any(), false).Return(tables, nil)
	m.reservations.EXPECT().OccupiedTableIDs(gomock.Any(), reference).Return([]string{"t2"}, nil)

	res, err := svc.OccupancySnapshot(context.Background(), reference)

	assert.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.Occupied)

	if assert.Len(t, res.Tables, 3) {
		assert.False(t, res.Tables[0].Occupied)
		assert.True(t, res.Tables[1].Occupied)
		assert.False(t, res.Tables[2].Occupied)
	}
}

func TestTableService_PublishOccupancy_SwallowsErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTableService(ctrl)

	m.repo.EXPECT().GetAll(gomock.Any(), false).Return(nil, errors.New("database error"))

	// Must not panic and must not publish.
	svc.PublishOccupancy(context.Background())
}
