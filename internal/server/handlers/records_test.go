package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophqueue/internal/models"
	"github.com/iudanet/gophqueue/internal/server/storage"
	"github.com/iudanet/gophqueue/pkg/api"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors in tests
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

// withTestUser подставляет пользователя вместо AuthMiddleware
func withTestUser(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID, "tester")))
		})
	}
}

func setupRecordsMux(mock *storage.RecordStorageMock) *http.ServeMux {
	mux := http.NewServeMux()
	NewRecordsHandler(setupTestLogger(), mock).Register(mux, withTestUser("user-1"))
	return mux
}

func doRequest(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func storedRecord(id string, attrs models.Attributes) *models.StoredRecord {
	return &models.StoredRecord{
		ID:         id,
		OwnerID:    "user-1",
		Collection: "notes",
		Attributes: attrs,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

func TestRecordsHandler_Create(t *testing.T) {
	mock := &storage.RecordStorageMock{
		CreateRecordFunc: func(ctx context.Context, rec *models.StoredRecord) (*models.StoredRecord, bool, error) {
			return storedRecord("rec-1", rec.Attributes), true, nil
		},
	}
	mux := setupRecordsMux(mock)

	w := doRequest(t, mux, http.MethodPost, "/api/v1/records/notes", `{"title":"hello"}`,
		map[string]string{api.HeaderClientID: "c1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"rec-1","title":"hello"}`, w.Body.String())

	require.Len(t, mock.CreateRecordCalls(), 1)
	rec := mock.CreateRecordCalls()[0].Rec
	assert.Equal(t, "user-1", rec.OwnerID)
	assert.Equal(t, "notes", rec.Collection)
	assert.Equal(t, "c1", rec.ClientID)
}

func TestRecordsHandler_Create_Duplicate(t *testing.T) {
	mock := &storage.RecordStorageMock{
		CreateRecordFunc: func(ctx context.Context, rec *models.StoredRecord) (*models.StoredRecord, bool, error) {
			return storedRecord("rec-1", models.Attributes{"title": "first"}), false, nil
		},
	}

	w := doRequest(t, setupRecordsMux(mock), http.MethodPost, "/api/v1/records/notes", `{"title":"again"}`,
		map[string]string{api.HeaderClientID: "c1"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"rec-1","title":"first"}`, w.Body.String())
}

func TestRecordsHandler_Create_BadRequest(t *testing.T) {
	mock := &storage.RecordStorageMock{}
	mux := setupRecordsMux(mock)

	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "invalid json", path: "/api/v1/records/notes", body: `{not json`},
		{name: "array body", path: "/api/v1/records/notes", body: `[1,2]`},
		{name: "invalid collection", path: "/api/v1/records/no%5Btes%5D", body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, mux, http.MethodPost, tt.path, tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	assert.Empty(t, mock.CreateRecordCalls())
}

func TestRecordsHandler_Create_StorageError(t *testing.T) {
	mock := &storage.RecordStorageMock{
		CreateRecordFunc: func(ctx context.Context, rec *models.StoredRecord) (*models.StoredRecord, bool, error) {
			return nil, false, errors.New("disk full")
		},
	}

	w := doRequest(t, setupRecordsMux(mock), http.MethodPost, "/api/v1/records/notes", `{}`, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "failed to create record", resp.Message)
}

func TestRecordsHandler_List(t *testing.T) {
	mock := &storage.RecordStorageMock{
		ListRecordsFunc: func(ctx context.Context, ownerID, collection string) ([]*models.StoredRecord, error) {
			assert.Equal(t, "user-1", ownerID)
			assert.Equal(t, "notes", collection)
			return []*models.StoredRecord{
				storedRecord("1", models.Attributes{"title": "a"}),
				storedRecord("2", models.Attributes{"title": "b"}),
			}, nil
		},
	}

	w := doRequest(t, setupRecordsMux(mock), http.MethodGet, "/api/v1/records/notes", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"records":[{"id":"1","title":"a"},{"id":"2","title":"b"}]}`, w.Body.String())
}

func TestRecordsHandler_Get(t *testing.T) {
	mock := &storage.RecordStorageMock{
		GetRecordFunc: func(ctx context.Context, ownerID, collection, id string) (*models.StoredRecord, error) {
			if id == "1" {
				return storedRecord("1", models.Attributes{"title": "a"}), nil
			}
			return nil, storage.ErrRecordNotFound
		},
	}
	mux := setupRecordsMux(mock)

	w := doRequest(t, mux, http.MethodGet, "/api/v1/records/notes/1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"1","title":"a"}`, w.Body.String())

	w = doRequest(t, mux, http.MethodGet, "/api/v1/records/notes/2", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordsHandler_Update(t *testing.T) {
	mock := &storage.RecordStorageMock{
		UpdateRecordFunc: func(ctx context.Context, ownerID, collection, id string, attrs models.Attributes) (*models.StoredRecord, error) {
			if id != "1" {
				return nil, storage.ErrRecordNotFound
			}
			return storedRecord(id, models.Attributes{"title": "a"}.Patch(attrs)), nil
		},
	}
	mux := setupRecordsMux(mock)

	w := doRequest(t, mux, http.MethodPut, "/api/v1/records/notes/1", `{"body":"x"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"1","title":"a","body":"x"}`, w.Body.String())

	w = doRequest(t, mux, http.MethodPut, "/api/v1/records/notes/2", `{"body":"x"}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordsHandler_Delete(t *testing.T) {
	mock := &storage.RecordStorageMock{
		DeleteRecordFunc: func(ctx context.Context, ownerID, collection, id string) error {
			switch id {
			case "1":
				return nil
			case "2":
				return storage.ErrRecordNotFound
			default:
				return errors.New("locked")
			}
		},
	}
	mux := setupRecordsMux(mock)

	assert.Equal(t, http.StatusNoContent, doRequest(t, mux, http.MethodDelete, "/api/v1/records/notes/1", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(t, mux, http.MethodDelete, "/api/v1/records/notes/2", "", nil).Code)
	assert.Equal(t, http.StatusInternalServerError, doRequest(t, mux, http.MethodDelete, "/api/v1/records/notes/3", "", nil).Code)
}

func TestRecordsHandler_Unauthorized(t *testing.T) {
	mux := http.NewServeMux()
	NewRecordsHandler(setupTestLogger(), &storage.RecordStorageMock{}).Register(mux, nil)

	w := doRequest(t, mux, http.MethodGet, "/api/v1/records/notes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
