package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"mesa/config"
	"mesa/infras/jwt"
	jwtMocks "mesa/infras/jwt/mocks"
	"mesa/infras/otel/mocks"
	"mesa/internal/domains/auth/model/dto"
	"mesa/internal/domains/auth/service"
	userMocks "mesa/internal/domains/user/mocks"
	userModel "mesa/internal/domains/user/model"
	"mesa/shared/constant"
	"mesa/shared/password"
)

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	cfg := &config.Config{}

	svc := service.New(mockUserRepo, cfg, mocks.NewOtel(), mockJWT)

	hashed, err := password.Hash("password")
	assert.NoError(t, err)

	validUser := userModel.User{
		ID:       "user-id-123",
		Email:    "staff@example.com",
		Password: hashed,
		FullName: "Front Desk",
		Role:     constant.RoleStaff,
		Active:   true,
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful login",
			req: dto.LoginRequest{
				Email:    "staff@example.com",
				Password: "password",
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					GetByEmail(gomock.Any(), "staff@example.com").
					Return(validUser, nil)

				mockJWT.EXPECT().
					GenerateTokenPair(validUser.ID, validUser.Email, validUser.Role).
					Return(&jwt.TokenPair{
						AccessToken:  "access-token",
						RefreshToken: "refresh-token",
						TokenType:    "Bearer",
					}, nil)

				mockUserRepo.EXPECT().
					UpdateLastLogin(gomock.Any(), validUser.ID, gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "unknown email",
			req: dto.LoginRequest{
				Email:    "nobody@example.com",
				Password: "password",
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					GetByEmail(gomock.Any(), "nobody@example.com").
					Return(userModel.User{}, nil)
			},
			wantErr: true,
		},
		{
			name: "wrong password",
			req: dto.LoginRequest{
				Email:    "staff@example.com",
				Password: "wrongpassword",
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					GetByEmail(gomock.Any(), "staff@example.com").
					Return(validUser, nil)
			},
			wantErr: true,
		},
		{
			name: "deactivated account",
			req: dto.LoginRequest{
				Email:    "staff@example.com",
				Password: "password",
			},
			setupMock: func() {
				inactive := validUser
				inactive.Active = false

				mockUserRepo.EXPECT().
					GetByEmail(gomock.Any(), "staff@example.com").
					Return(inactive, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "access-token", res.AccessToken)
			}
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	cfg := &config.Config{}

	svc := service.New(mockUserRepo, cfg, mocks.NewOtel(), mockJWT)

	tests := []struct {
		name      string
		req       dto.RegisterRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful registration",
			req: dto.RegisterRequest{
				Email:    "new@example.com",
				Password: "password",
				FullName: "New Staff",
			},
			setupMock: func() {
				mockUserRepo.EXPECT().ExistByEmail(gomock.Any(), "new@example.com").Return(false, nil)
				mockUserRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.NotEqual(t, "password", user.Password)
						assert.NoError(t, password.Verify("password", user.Password))

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "email already registered",
			req: dto.RegisterRequest{
				Email:    "new@example.com",
				Password: "password",
				FullName: "New Staff",
			},
			setupMock: func() {
				mockUserRepo.EXPECT().ExistByEmail(gomock.Any(), "new@example.com").Return(true, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Register(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	cfg := &config.Config{}

	svc := service.New(mockUserRepo, cfg, mocks.NewOtel(), mockJWT)

	t.Run("issues a fresh pair", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("refresh-token").
			Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

		assert.NoError(t, err)
		assert.Equal(t, "new-access", res.AccessToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("expired-token").
			Return(nil, errors.New("token has expired"))

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "expired-token"})

		assert.Error(t, err)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	cfg := &config.Config{}

	svc := service.New(mockUserRepo, cfg, mocks.NewOtel(), mockJWT)

	hashed, err := password.Hash("current")
	assert.NoError(t, err)

	user := userModel.User{ID: "user-id-123", Email: "staff@example.com", Password: hashed, Active: true}

	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful change",
			req:  dto.ChangePasswordRequest{CurrentPassword: "current", NewPassword: "brand-new"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), user.ID).Return(user, nil)
				mockUserRepo.EXPECT().UpdatePassword(gomock.Any(), user.ID, gomock.Any()).Return(nil)
			},
			wantErr: false,
		},
		{
			name: "wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "brand-new"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), user.ID).Return(user, nil)
			},
			wantErr: true,
		},
		{
			name: "unknown user",
			req:  dto.ChangePasswordRequest{CurrentPassword: "current", NewPassword: "brand-new"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), user.ID).Return(userModel.User{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.ChangePassword(context.Background(), tt.req, user.ID)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
