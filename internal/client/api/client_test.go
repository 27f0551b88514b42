package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophqueue/internal/client/queue"
	"github.com/iudanet/gophqueue/internal/models"
	"github.com/iudanet/gophqueue/pkg/api"
)

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	assert.NotNil(t, client)
	assert.Equal(t, baseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

// TestClient_Save_Create проверяет создание записи
func TestClient_Save_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/records/notes", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer test_token", r.Header.Get("Authorization"))
		assert.Equal(t, "c1", r.Header.Get(api.HeaderClientID))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["title"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "rec-1", "title": "hello"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetAccessToken("test_token")

	resp, err := client.Save(context.Background(), queue.SaveRequest{
		Attributes:     models.Attributes{"title": "hello"},
		CollectionPath: "/api/v1/records/notes",
		ClientID:       "c1",
	})

	require.NoError(t, err)
	assert.Equal(t, models.Attributes{"id": "rec-1", "title": "hello"}, resp)
}

// TestClient_Save_Update проверяет обновление существующей записи
func TestClient_Save_Update(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/records/notes/rec-1", r.URL.Path)
		assert.Empty(t, r.Header.Get(api.HeaderClientID))

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "rec-1", "title": "updated"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.Save(context.Background(), queue.SaveRequest{
		Attributes:     models.Attributes{"title": "updated"},
		CollectionPath: "/api/v1/records/notes",
		EntityPath:     "/api/v1/records/notes/rec-1",
		ClientID:       "c1",
	})

	require.NoError(t, err)
	assert.Equal(t, "updated", resp["title"])
}

// TestClient_Save_Error проверяет обработку ошибок сервера
func TestClient_Save_Error(t *testing.T) {
	tests := []struct {
		responseBody   any
		name           string
		expectedErrMsg string
		statusCode     int
	}{
		{
			name:       "Unauthorized",
			statusCode: http.StatusUnauthorized,
			responseBody: api.ErrorResponse{
				Error: "invalid token",
			},
			expectedErrMsg: "server error (401): invalid token",
		},
		{
			name:       "Not found with message",
			statusCode: http.StatusNotFound,
			responseBody: api.ErrorResponse{
				Error:   "not found",
				Message: "record not found",
			},
			expectedErrMsg: "server error (404): record not found",
		},
		{
			name:           "Internal server error",
			statusCode:     http.StatusInternalServerError,
			responseBody:   "Internal Server Error",
			expectedErrMsg: "server error (500): Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				if errResp, ok := tt.responseBody.(api.ErrorResponse); ok {
					_ = json.NewEncoder(w).Encode(errResp)
				} else {
					_, _ = w.Write([]byte(tt.responseBody.(string)))
				}
			}))
			defer server.Close()

			client := NewClient(server.URL)

			resp, err := client.Save(context.Background(), queue.SaveRequest{
				Attributes:     models.Attributes{"a": 1},
				CollectionPath: "/api/v1/records/notes",
				EntityPath:     "/api/v1/records/notes/1",
			})

			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Contains(t, err.Error(), tt.expectedErrMsg)

			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.statusCode, se.StatusCode)
		})
	}
}

// TestClient_Save_Unreachable проверяет ошибку при недоступном сервере
func TestClient_Save_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url)

	_, err := client.Save(context.Background(), queue.SaveRequest{CollectionPath: "/api/v1/records/notes"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

// TestClient_Destroy проверяет удаление записи
func TestClient_Destroy(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    bool
	}{
		{name: "No content", statusCode: http.StatusNoContent},
		{name: "Already deleted", statusCode: http.StatusNotFound},
		{name: "Server error", statusCode: http.StatusInternalServerError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "/api/v1/records/notes/5", r.URL.Path)
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			client := NewClient(server.URL)
			err := client.Destroy(context.Background(), "/api/v1/records/notes/5")

			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, IsNotFound(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

// TestClient_List проверяет получение списка записей
func TestClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/records/notes", r.URL.Path)

		_ = json.NewEncoder(w).Encode(api.ListRecordsResponse{
			Records: []map[string]any{{"id": "1"}, {"id": "2"}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	records, err := client.List(context.Background(), "/api/v1/records/notes")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2", records[1]["id"])
}

// TestClient_Get проверяет получение одной записи
func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/records/notes/1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "1", "title": "t"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	rec, err := client.Get(context.Background(), "/api/v1/records/notes/1")
	require.NoError(t, err)
	assert.Equal(t, "t", rec["title"])
}

// TestClient_Health проверяет проверку состояния сервера
func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/health", r.URL.Path)
		_ = json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok"})
	}))
	defer server.Close()

	require.NoError(t, NewClient(server.URL).Health(context.Background()))
}
