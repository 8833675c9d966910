package services

import (
	"context"
	"testing"

	"cookmastery/backend/config"
	"cookmastery/backend/models"
	"cookmastery/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := testAuth(users)
	ctx := context.Background()

	res, err := svc.Register(ctx, "  Cook@Example.com ", "password123", "cook")
	require.NoError(t, err)
	assert.Equal(t, "cook@example.com", res.User.Email)
	assert.NotEqual(t, "password123", res.User.PasswordHash)
	assert.Equal(t, models.LevelBeginner, res.Profile.SelectedLevel)

	cfg := config.Default()
	cfg.JWTSecret = "testsecret"
	userID, err := utils.ParseJWTToken(res.Token, cfg)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, userID)

	_, err = svc.Register(ctx, "cook@example.com", "password123", "other")
	assert.ErrorIs(t, err, ErrConflict)
	_, err = svc.Register(ctx, "new@example.com", "password123", "cook")
	assert.ErrorIs(t, err, ErrConflict)

	login, err := svc.Login(ctx, "cook@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)
	assert.NotEmpty(t, login.Token)

	_, err = svc.Login(ctx, "cook@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
