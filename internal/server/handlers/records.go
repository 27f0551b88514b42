package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/gophqueue/internal/models"
	"github.com/iudanet/gophqueue/internal/server/storage"
	"github.com/iudanet/gophqueue/internal/validation"
	"github.com/iudanet/gophqueue/pkg/api"
)

// maxBodySize ограничивает размер тела запроса с атрибутами
const maxBodySize = 1 << 20

// RecordsHandler обрабатывает CRUD запросы к записям коллекций
type RecordsHandler struct {
	logger  *slog.Logger
	storage storage.RecordStorage
}

// NewRecordsHandler создает новый handler записей
func NewRecordsHandler(logger *slog.Logger, storage storage.RecordStorage) *RecordsHandler {
	return &RecordsHandler{
		logger:  logger,
		storage: storage,
	}
}

// Register регистрирует маршруты записей в mux
func (h *RecordsHandler) Register(mux *http.ServeMux, wrap func(http.Handler) http.Handler) {
	if wrap == nil {
		wrap = func(next http.Handler) http.Handler { return next }
	}

	mux.Handle("POST "+api.RecordsPrefix+"/{collection}", wrap(http.HandlerFunc(h.Create)))
	mux.Handle("GET "+api.RecordsPrefix+"/{collection}", wrap(http.HandlerFunc(h.List)))
	mux.Handle("GET "+api.RecordsPrefix+"/{collection}/{id}", wrap(http.HandlerFunc(h.Get)))
	mux.Handle("PUT "+api.RecordsPrefix+"/{collection}/{id}", wrap(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE "+api.RecordsPrefix+"/{collection}/{id}", wrap(http.HandlerFunc(h.Delete)))
}

// Create обрабатывает POST /api/v1/records/{collection}.
// Повторный запрос с тем же X-Client-ID возвращает уже созданную запись с кодом 200.
func (h *RecordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, collection, ok := h.scope(w, r)
	if !ok {
		return
	}

	attrs, ok := h.decodeAttributes(w, r)
	if !ok {
		return
	}

	rec, created, err := h.storage.CreateRecord(ctx, &models.StoredRecord{
		OwnerID:    userID,
		Collection: collection,
		ClientID:   r.Header.Get(api.HeaderClientID),
		Attributes: attrs,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to create record",
			slog.String("user_id", userID),
			slog.String("collection", collection),
			slog.Any("error", err))
		h.sendError(w, "failed to create record", http.StatusInternalServerError)
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
		h.logger.InfoContext(ctx, "Duplicate create resolved by client id",
			slog.String("record_id", rec.ID),
			slog.String("client_id", rec.ClientID))
	}

	h.sendJSON(w, rec.View(), status)
}

// List обрабатывает GET /api/v1/records/{collection}
func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, collection, ok := h.scope(w, r)
	if !ok {
		return
	}

	records, err := h.storage.ListRecords(ctx, userID, collection)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list records",
			slog.String("user_id", userID),
			slog.String("collection", collection),
			slog.Any("error", err))
		h.sendError(w, "failed to list records", http.StatusInternalServerError)
		return
	}

	resp := api.ListRecordsResponse{Records: make([]map[string]any, 0, len(records))}
	for _, rec := range records {
		resp.Records = append(resp.Records, rec.View())
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// Get обрабатывает GET /api/v1/records/{collection}/{id}
func (h *RecordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, collection, ok := h.scope(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	rec, err := h.storage.GetRecord(ctx, userID, collection, id)
	if err != nil {
		h.handleStorageError(w, r, "get", id, err)
		return
	}

	h.sendJSON(w, rec.View(), http.StatusOK)
}

// Update обрабатывает PUT /api/v1/records/{collection}/{id}.
// Переданные атрибуты сливаются с сохраненными.
func (h *RecordsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, collection, ok := h.scope(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	attrs, ok := h.decodeAttributes(w, r)
	if !ok {
		return
	}

	rec, err := h.storage.UpdateRecord(ctx, userID, collection, id, attrs)
	if err != nil {
		h.handleStorageError(w, r, "update", id, err)
		return
	}

	h.sendJSON(w, rec.View(), http.StatusOK)
}

// Delete обрабатывает DELETE /api/v1/records/{collection}/{id}
func (h *RecordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, collection, ok := h.scope(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	if err := h.storage.DeleteRecord(r.Context(), userID, collection, id); err != nil {
		h.handleStorageError(w, r, "delete", id, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// scope извлекает владельца из контекста и имя коллекции из пути
func (h *RecordsHandler) scope(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.logger.Error("User ID not found in context")
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return "", "", false
	}

	collection := r.PathValue("collection")
	if err := validation.ValidateCollection(collection); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return "", "", false
	}

	return userID, collection, true
}

func (h *RecordsHandler) decodeAttributes(w http.ResponseWriter, r *http.Request) (models.Attributes, bool) {
	var attrs models.Attributes

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(&attrs); err != nil {
		h.logger.Warn("Invalid request body", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return nil, false
	}
	if attrs == nil {
		attrs = models.Attributes{}
	}

	return attrs, true
}

func (h *RecordsHandler) handleStorageError(w http.ResponseWriter, r *http.Request, op, id string, err error) {
	if errors.Is(err, storage.ErrRecordNotFound) {
		h.sendError(w, "record not found", http.StatusNotFound)
		return
	}

	h.logger.ErrorContext(r.Context(), "Record storage failure",
		slog.String("op", op),
		slog.String("record_id", id),
		slog.Any("error", err))
	h.sendError(w, "internal server error", http.StatusInternalServerError)
}

// sendJSON отправляет JSON ответ
func (h *RecordsHandler) sendJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h *RecordsHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
