package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophqueue/internal/client/storage"
	"github.com/iudanet/gophqueue/internal/client/storage/boltdb"
)

func setupService(t *testing.T) (*service, *boltdb.Storage) {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return NewService(store).(*service), store
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("any-secret"))
	require.NoError(t, err)
	return token
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc, store := setupService(t)

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signToken(t, jwt.MapClaims{
		"user_id":  "u-1",
		"username": "alice",
		"exp":      exp.Unix(),
	})

	data, err := svc.Login(ctx, "http://localhost:8080", " "+token+"\n")
	require.NoError(t, err)
	assert.Equal(t, token, data.AccessToken)
	assert.Equal(t, "alice", data.Username)
	assert.Equal(t, exp.Unix(), data.ExpiresAt)

	stored, err := store.GetAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", stored.ServerURL)
	assert.Equal(t, token, stored.AccessToken)

	got, err := svc.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, got)
}

func TestService_Login_Invalid(t *testing.T) {
	ctx := context.Background()
	svc, store := setupService(t)

	_, err := svc.Login(ctx, "http://localhost:8080", "")
	assert.Error(t, err)

	_, err = svc.Login(ctx, "http://localhost:8080", "not-a-jwt")
	assert.Error(t, err)

	expired := signToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()})
	_, err = svc.Login(ctx, "http://localhost:8080", expired)
	assert.ErrorIs(t, err, ErrTokenExpired)

	// Ничего не сохранено
	_, err = store.GetAuth(ctx)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)
}

func TestService_Login_WithoutExpiry(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	data, err := svc.Login(ctx, "http://localhost:8080", signToken(t, jwt.MapClaims{"username": "bob"}))
	require.NoError(t, err)
	assert.Zero(t, data.ExpiresAt)

	_, err = svc.AccessToken(ctx)
	assert.NoError(t, err)
}

func TestService_AccessToken_Expired(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.Login(ctx, "http://localhost:8080", signToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Minute).Unix(),
	}))
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(time.Hour) }

	_, err = svc.AccessToken(ctx)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestService_SessionAndLogout(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.Session(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = svc.AccessToken(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = svc.Login(ctx, "http://localhost:8080", signToken(t, jwt.MapClaims{"username": "alice"}))
	require.NoError(t, err)

	session, err := svc.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", session.Username)

	require.NoError(t, svc.Logout(ctx))
	_, err = svc.Session(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	// Повторный выход не считается ошибкой
	assert.NoError(t, svc.Logout(ctx))
}
