package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophqueue/internal/client/api"
	"github.com/iudanet/gophqueue/internal/client/queue"
	"github.com/iudanet/gophqueue/internal/client/storage/boltdb"
	"github.com/iudanet/gophqueue/internal/models"
	"github.com/iudanet/gophqueue/internal/server/handlers"
	"github.com/iudanet/gophqueue/internal/server/storage/sqlite"
	pkgapi "github.com/iudanet/gophqueue/pkg/api"
)

var testJWT = handlers.JWTConfig{
	Secret:         []byte("integration-secret"),
	AccessTokenTTL: time.Hour,
}

type testEnv struct {
	store   *sqlite.Storage
	server  *httptest.Server
	client  *api.Client
	offline atomic.Bool
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupEnv(t *testing.T, rateLimit int) *testEnv {
	t.Helper()
	ctx := context.Background()

	store, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	srv := New(Options{
		JWT:        testJWT,
		RateLimit:  rateLimit,
		RateWindow: time.Hour,
	}, store, discardLogger())
	t.Cleanup(srv.limiter.Stop)

	env := &testEnv{store: store}

	// offline имитирует недоступный сервер
	env.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if env.offline.Load() {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		srv.Handler().ServeHTTP(w, r)
	}))
	t.Cleanup(env.server.Close)

	token, _, err := handlers.IssueToken(ctx, store, testJWT, "alice")
	require.NoError(t, err)

	env.client = api.NewClient(env.server.URL)
	env.client.SetAccessToken(token)

	return env
}

func newLocalStore(t *testing.T) *boltdb.Storage {
	t.Helper()
	s, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestServer_Health(t *testing.T) {
	env := setupEnv(t, 100)
	require.NoError(t, env.client.Health(context.Background()))
}

func TestServer_RequiresToken(t *testing.T) {
	env := setupEnv(t, 100)

	anonymous := api.NewClient(env.server.URL)
	_, err := anonymous.List(context.Background(), pkgapi.CollectionPath("notes"))

	var se *api.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
}

func TestServer_OfflineQueueReplay(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t, 100)
	local := newLocalStore(t)
	path := pkgapi.CollectionPath("notes")

	// Сервер доступен: запись создается сразу
	online := queue.NewCollection(path, local, env.client, discardLogger())
	kept, err := online.Create(ctx, "", models.Attributes{"title": "kept"})
	require.NoError(t, err)
	doomed, err := online.Create(ctx, "", models.Attributes{"title": "doomed"})
	require.NoError(t, err)
	require.False(t, kept.IsNew())

	env.offline.Store(true)

	// Без сервера все изменения остаются в локальной очереди
	_, err = online.Create(ctx, "offline-1", models.Attributes{"title": "offline"})
	require.ErrorIs(t, err, queue.ErrRemoteSave)
	require.ErrorIs(t, kept.Save(ctx, models.Attributes{"title": "edited"}), queue.ErrRemoteSave)
	require.ErrorIs(t, doomed.Destroy(ctx), queue.ErrRemoteDestroy)

	env.offline.Store(false)

	// Следующий запуск клиента начинает с пустой коллекции
	restarted := queue.NewCollection(path, local, env.client, discardLogger())
	_, err = restarted.Recover(ctx, local)
	require.NoError(t, err)

	result, err := restarted.Replay(ctx)
	require.NoError(t, err)
	require.NoError(t, result.Err())
	assert.Equal(t, 1, result.Materialized)
	assert.Equal(t, 2, result.Saved)
	assert.Equal(t, 1, result.Destroyed)

	records, err := env.client.List(ctx, path)
	require.NoError(t, err)

	titles := make([]any, 0, len(records))
	for _, r := range records {
		titles = append(titles, r["title"])
	}
	assert.ElementsMatch(t, []any{"edited", "offline"}, titles)

	pending, err := restarted.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending.CreateQueue)
	assert.Empty(t, pending.DestroyQueue)

	// Повторный replay ничего не отправляет
	result, err = restarted.Replay(ctx)
	require.NoError(t, err)
	assert.Zero(t, result.Saved+result.Destroyed+result.Failed())
}

func TestServer_RateLimitedRequestsStayQueued(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t, 1)
	local := newLocalStore(t)

	c := queue.NewCollection(pkgapi.CollectionPath("notes"), local, env.client, discardLogger())

	_, err := c.Create(ctx, "first", models.Attributes{"n": 1})
	require.NoError(t, err)

	second, err := c.Create(ctx, "second", models.Attributes{"n": 2})
	require.ErrorIs(t, err, queue.ErrRemoteSave)
	assert.True(t, queue.IsRemoteFailure(err))
	assert.True(t, second.IsNew())

	pending, err := c.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, pending.CreateQueue)
}
