package services

import (
	"context"
	"testing"

	"gamewatch-backend/infrastructure/persistence/memory"
	"gamewatch-backend/pkg/auth"
	apperrors "gamewatch-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAdminKey = "test-admin-key"

func newUserFixture(t *testing.T) (*UserService, *auth.TokenService) {
	t.Helper()
	tokens, err := auth.NewTokenService(auth.JWTConfig{
		SecretKey: "test-secret",
		Issuer:    "gamewatch-test",
	})
	require.NoError(t, err)
	return NewUserService(memory.NewUserRepository(), tokens, testAdminKey, zap.NewNop()), tokens
}

func TestRegisterAndLogin(t *testing.T) {
	service, tokens := newUserFixture(t)
	ctx := context.Background()

	userID, err := service.Register(ctx, "alice", "alice@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "1", userID)

	result, err := service.Login(ctx, "alice@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, userID, result.UserID)
	assert.Equal(t, "alice", result.Username)
	assert.False(t, result.IsAdmin)
	require.NotEmpty(t, result.Token)

	claims, err := tokens.Validate(result.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.False(t, claims.IsAdmin)
}

func TestRegisterRequiresAllFields(t *testing.T) {
	service, _ := newUserFixture(t)
	_, err := service.Register(context.Background(), "alice", "", "secret")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestLoginUnknownEmailIsNotFound(t *testing.T) {
	service, _ := newUserFixture(t)
	_, err := service.Login(context.Background(), "nobody@example.com", "secret")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	service, _ := newUserFixture(t)
	ctx := context.Background()
	_, err := service.Register(ctx, "alice", "alice@example.com", "secret")
	require.NoError(t, err)

	_, err = service.Login(ctx, "alice@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestAdminLoginRejectsRegularUser(t *testing.T) {
	service, _ := newUserFixture(t)
	ctx := context.Background()
	_, err := service.Register(ctx, "alice", "alice@example.com", "secret")
	require.NoError(t, err)

	// Role check fires before the password check.
	_, err = service.AdminLogin(ctx, "alice@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
}

func TestCreateAdminRequiresMatchingKey(t *testing.T) {
	service, tokens := newUserFixture(t)
	ctx := context.Background()

	_, err := service.CreateAdmin(ctx, "root", "root@example.com", "secret", "wrong-key")
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))

	userID, err := service.CreateAdmin(ctx, "root", "root@example.com", "secret", testAdminKey)
	require.NoError(t, err)

	result, err := service.AdminLogin(ctx, "root@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, userID, result.UserID)
	assert.True(t, result.IsAdmin)

	claims, err := tokens.Validate(result.Token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

func TestCreateAdminRejectedWhenNoKeyConfigured(t *testing.T) {
	tokens, err := auth.NewTokenService(auth.JWTConfig{SecretKey: "test-secret"})
	require.NoError(t, err)
	service := NewUserService(memory.NewUserRepository(), tokens, "", zap.NewNop())

	_, err = service.CreateAdmin(context.Background(), "root", "root@example.com", "secret", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
}

func TestGetUnknownUserIsNotFound(t *testing.T) {
	service, _ := newUserFixture(t)
	_, err := service.Get(context.Background(), "404")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
