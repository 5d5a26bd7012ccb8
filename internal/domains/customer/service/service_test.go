package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"mesa/config"
	"mesa/infras/otel/mocks"
	customerMocks "mesa/internal/domains/customer/mocks"
	"mesa/internal/domains/customer/model"
	"mesa/internal/domains/customer/model/dto"
	"mesa/internal/domains/customer/service"
	reservationMocks "mesa/internal/domains/reservation/mocks"
	reservationModel "mesa/internal/domains/reservation/model"
	cacheMocks "mesa/shared/cache/mocks"
	gDto "mesa/shared/dto"
	"mesa/shared/failure"
)

func newCustomerService(ctrl *gomock.Controller) (service.Customer, *customerMocks.MockCustomer, *reservationMocks.MockReservation, *cacheMocks.MockRedisCache) {
	mockRepo := customerMocks.NewMockCustomer(ctrl)
	mockReservations := reservationMocks.NewMockReservation(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockReservations, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockReservations, mockCache
}

func TestCustomerService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, mockCache := newCustomerService(ctrl)

	email := "Ana@Example.com"

	tests := []struct {
		name      string
		req       dto.CreateCustomerRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation normalizes the email",
			req: dto.CreateCustomerRequest{
				FullName: "  Ana Morales  ",
				Email:    &email,
			},
			setupMock: func() {
				mockRepo.EXPECT().EmailTaken(gomock.Any(), "ana@example.com", gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, customer model.Customer) error {
						assert.Equal(t, "Ana Morales", customer.FullName)

						return nil
					})
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "duplicate email",
			req: dto.CreateCustomerRequest{
				FullName: "Ana Morales",
				Email:    &email,
			},
			setupMock: func() {
				mockRepo.EXPECT().EmailTaken(gomock.Any(), "ana@example.com", gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "no email skips the uniqueness check",
			req: dto.CreateCustomerRequest{
				FullName: "Walk In",
			},
			setupMock: func() {
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "repository error",
			req: dto.CreateCustomerRequest{
				FullName: "Ana Morales",
			},
			setupMock: func() {
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
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
		})
	}
}

func TestCustomerService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, mockCache := newCustomerService(ctrl)

	params := gDto.QueryParams{Page: 1, Limit: 10}

	t.Run("lists with pagination", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().Count(gomock.Any(), "ana").Return(1, nil)
		mockRepo.EXPECT().
			GetAll(gomock.Any(), params, "ana").
			Return([]model.Customer{{ID: "c1", FullName: "Ana Morales"}}, nil)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.GetAll(context.Background(), params, "ana")

		assert.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Len(t, res.Customers, 1)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.GetAll(context.Background(), params, "")

		assert.NoError(t, err)
	})
}

func TestCustomerService_History(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockReservations, _ := newCustomerService(ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
		wantTotal int
	}{
		{
			name: "lists the customer reservations",
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), "c1").Return(true, nil)
				mockReservations.EXPECT().
					HistoryByCustomer(gomock.Any(), "c1").
					Return([]reservationModel.Reservation{{ID: "r1"}, {ID: "r2"}}, nil)
			},
			wantTotal: 2,
		},
		{
			name: "unknown customer",
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), "c1").Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.History(context.Background(), "c1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.TotalData)
		})
	}
}

func TestCustomerService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, mockCache := newCustomerService(ctrl)

	existing := model.Customer{ID: "c1", FullName: "Ana Morales"}
	newEmail := "ana.new@example.com"

	tests := []struct {
		name      string
		req       dto.UpdateCustomerRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful update",
			req:  dto.UpdateCustomerRequest{Email: &newEmail},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), "c1").Return(existing, nil)
				mockRepo.EXPECT().EmailTaken(gomock.Any(), newEmail, "c1").Return(false, nil)
				mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
				mockCache.EXPECT().Delete(gomock.Any(), "customer:get:c1").Return(nil).AnyTimes()
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "email taken by another customer",
			req:  dto.UpdateCustomerRequest{Email: &newEmail},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), "c1").Return(existing, nil)
				mockRepo.EXPECT().EmailTaken(gomock.Any(), newEmail, "c1").Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "unknown customer",
			req:  dto.UpdateCustomerRequest{Email: &newEmail},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), "c1").Return(model.Customer{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			_, err := svc.Update(context.Background(), tt.req, "c1")

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

func TestCustomerService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, mockCache := newCustomerService(ctrl)

	t.Run("removes an existing customer", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), "c1").Return(true, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), "c1").Return(nil)
		mockCache.EXPECT().Delete(gomock.Any(), "customer:get:c1").Return(nil).AnyTimes()
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		assert.NoError(t, svc.Delete(context.Background(), "c1"))
	})

	t.Run("unknown customer", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), "c1").Return(false, nil)

		err := svc.Delete(context.Background(), "c1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
