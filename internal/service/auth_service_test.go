package service_test

import (
	"context"
	"testing"
	"time"

	"nofat/fitness-server/internal/service"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := service.NewAuthService(userRepo, testSecret, time.Hour)

	user, err := svc.Register(context.Background(), "小王", "wang@example.com", "password123")
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())
	// The hash never leaves the service.
	assert.Empty(t, user.PasswordHash)

	// Same email again is a conflict.
	_, err = svc.Register(context.Background(), "小王", "wang@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrUserAlreadyExists)

	token, logged, err := svc.Login(context.Background(), "wang@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.Empty(t, logged.PasswordHash)

	// The token carries the user ID and verifies against the secret.
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims["uid"])
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := service.NewAuthService(userRepo, testSecret, time.Hour)

	_, err := svc.Register(context.Background(), "小王", "wang@example.com", "password123")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "wang@example.com", "wrong-password")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)

	// Unknown email maps to the same failure.
	_, _, err = svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
}

func TestRegisterRejectsEmptyFields(t *testing.T) {
	svc := service.NewAuthService(newFakeUserRepo(), testSecret, time.Hour)
	_, err := svc.Register(context.Background(), "", "wang@example.com", "password123")
	assert.Error(t, err)
}
