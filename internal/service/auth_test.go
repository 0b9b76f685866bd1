package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	env := newTestEnv(t)
	return &AuthService{Repo: env.Repo, JWTSecret: []byte("test-secret")}
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureUser(ctx, "admin", "password", "admin"))
	require.NoError(t, svc.EnsureUser(ctx, "admin", "password", "admin"))

	user, err := svc.Repo.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	require.Equal(t, "admin", user.Role)
	require.NotEqual(t, "password", user.PasswordHash)
}

func TestLoginAndTokenRoundTrip(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureUser(ctx, "admin", "password", "admin"))

	token, err := svc.Login(ctx, "admin", "password")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := ParseAccessToken(token, svc.JWTSecret)
	require.NoError(t, err)
	require.NotEmpty(t, userID)
	require.Equal(t, "admin", role)
}

func TestLoginBadCredentials(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureUser(ctx, "admin", "password", "admin"))

	_, err := svc.Login(ctx, "admin", "wrong")
	require.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.Login(ctx, "nobody", "password")
	require.ErrorIs(t, err, ErrBadCredentials)
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	token, err := SignAccessToken("user-1", "admin", []byte("secret-a"))
	require.NoError(t, err)

	_, _, err = ParseAccessToken(token, []byte("secret-b"))
	require.Error(t, err)
}
