// internal/service/auth_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"yanindayim/internal/model"
	"yanindayim/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Register(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, repository.NewGormUserRepository())
	ctx := context.Background()

	user, err := svc.Register(ctx, &model.RegisterRequest{
		Name:     "Ayşe Yılmaz",
		Email:    "ayse@example.com",
		Password: "gizli-sifre-1",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("gizli-sifre-1")))
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, repository.NewGormUserRepository())
	ctx := context.Background()

	req := &model.RegisterRequest{Name: "Ayşe", Email: "ayse@example.com", Password: "gizli-sifre-1"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrConflict))

	var appErr *model.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CONFLICT", appErr.Detail.Code)
	assert.Equal(t, "Bu e-posta adresi zaten kayıtlı", appErr.Detail.Message)
}

func TestAuthService_Login(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, repository.NewGormUserRepository())
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{Name: "Ayşe", Email: "ayse@example.com", Password: "gizli-sifre-1"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		req      *model.LoginRequest
		wantErr  bool
		wantCode string
	}{
		{
			name: "valid credentials",
			req:  &model.LoginRequest{Email: "ayse@example.com", Password: "gizli-sifre-1"},
		},
		{
			name:     "wrong password",
			req:      &model.LoginRequest{Email: "ayse@example.com", Password: "yanlis-sifre"},
			wantErr:  true,
			wantCode: "INVALID_CREDENTIALS",
		},
		{
			name:     "unknown email gets the same error",
			req:      &model.LoginRequest{Email: "yok@example.com", Password: "gizli-sifre-1"},
			wantErr:  true,
			wantCode: "INVALID_CREDENTIALS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Login(ctx, tt.req)
			if tt.wantErr {
				require.Error(t, err)
				var appErr *model.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, tt.wantCode, appErr.Detail.Code)
				assert.Equal(t, "E-posta veya şifre hatalı", appErr.Detail.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ayse@example.com", user.Email)
		})
	}
}
