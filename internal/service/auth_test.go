package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastery/backend/internal/service"
	"github.com/tastery/backend/internal/testhelpers"
)

const testSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, testSecret, time.Hour)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "password123", user.PasswordHash)

	loggedIn, loginToken, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, loginToken)
}

func TestRegisterDuplicate(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, testSecret, time.Hour)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "bob", "bob@example.com", "password123")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "bob2", "bob@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrUserExists)

	_, _, err = svc.Register(ctx, "bob", "other@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrUserExists)
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, testSecret, time.Hour)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "carol", "carol@example.com", "password123")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "carol@example.com", "wrong-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestValidateToken(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, testSecret, time.Hour)

	user, token, err := svc.Register(context.Background(), "dave", "dave@example.com", "password123")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	issuer := service.NewAuthService(db, testSecret, time.Hour)
	verifier := service.NewAuthService(db, "a-different-secret", time.Hour)

	token, err := issuer.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, testSecret, -time.Minute)

	token, err := svc.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, testSecret, time.Hour)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestCurrentUser(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, testSecret, time.Hour)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "erin", "erin@example.com", "password123")
	require.NoError(t, err)

	got, err := svc.CurrentUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "erin", got.Username)

	_, err = svc.CurrentUser(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}
