package service

import (
	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret-test-secret-test-secret",
			ExpireTime: time.Hour,
		},
	}
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newAuthService(t)

	user, err := auth.Register(RegisterRequest{
		Username: "newbie",
		Email:    "newbie@example.com",
		Password: "password123",
		Name:     "New Bee",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleEmployee, user.Role)
	assert.NotEqual(t, "password123", user.Password, "password must be stored hashed")

	token, logged, err := auth.Login("newbie@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := util.ParseJWT(token, auth.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.RoleEmployee, claims.Role)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	auth := newAuthService(t)

	_, err := auth.Register(RegisterRequest{
		Username: "taken", Email: "taken@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, err = auth.Register(RegisterRequest{
		Username: "other", Email: "taken@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	_, err = auth.Register(RegisterRequest{
		Username: "taken", Email: "fresh@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, util.ErrUsernameTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth := newAuthService(t)

	_, err := auth.Register(RegisterRequest{
		Username: "user", Email: "user@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, _, err = auth.Login("user@example.com", "wrong-password")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, _, err = auth.Login("ghost@example.com", "password123")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}
