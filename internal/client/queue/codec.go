package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/iudanet/gophqueue/internal/client/storage"
	"github.com/iudanet/gophqueue/internal/models"
)

// Формат значений очередей в хранилище
type createQueueValue struct {
	CreateQueue []any `json:"create_queue"`
}

type destroyQueueValue struct {
	DestroyQueue []any `json:"destroy_queue"`
}

// queueKind описывает одну из двух очередей коллекции
type queueKind int

const (
	createQueue queueKind = iota
	destroyQueue
)

// loadAttributes читает набор атрибутов по ключу.
// Отсутствие ключа не является ошибкой: возвращается (nil, false, nil).
func loadAttributes(ctx context.Context, store storage.KVStorage, key string) (models.Attributes, bool, error) {
	data, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}

	var attrs models.Attributes
	if err := json.Unmarshal(data, &attrs); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal %q: %w", key, err)
	}
	if attrs == nil {
		attrs = models.Attributes{}
	}

	return attrs, true, nil
}

// saveAttributes сохраняет набор атрибутов по ключу
func saveAttributes(ctx context.Context, store storage.KVStorage, key string, attrs models.Attributes) error {
	if attrs == nil {
		attrs = models.Attributes{}
	}

	data, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("failed to marshal %q: %w", key, err)
	}

	if err := store.Save(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}

	return nil
}

// loadQueue читает список идентификаторов очереди
func loadQueue(ctx context.Context, store storage.KVStorage, key string, kind queueKind) ([]string, error) {
	data, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}

	var raw []any
	switch kind {
	case createQueue:
		var v createQueueValue
		if err := decodeNumbers(data, &v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %q: %w", key, err)
		}
		raw = v.CreateQueue
	case destroyQueue:
		var v destroyQueueValue
		if err := decodeNumbers(data, &v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %q: %w", key, err)
		}
		raw = v.DestroyQueue
	}

	ids := make([]string, 0, len(raw))
	for _, item := range raw {
		if id := idString(item); id != "" && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	return ids, nil
}

// decodeNumbers декодирует JSON, сохраняя числа как json.Number,
// чтобы большие целочисленные id не теряли точность
func decodeNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// saveQueue сохраняет очередь; пустая очередь удаляет ключ целиком,
// отсутствие ключа означает "ничего не ожидает отправки"
func saveQueue(ctx context.Context, store storage.KVStorage, key string, kind queueKind, ids []string) error {
	if len(ids) == 0 {
		if err := store.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to delete %q: %w", key, err)
		}
		return nil
	}

	items := make([]any, len(ids))
	for i, id := range ids {
		items[i] = id
		if kind == destroyQueue {
			items[i] = rawID(id)
		}
	}

	var value any
	switch kind {
	case createQueue:
		value = createQueueValue{CreateQueue: items}
	case destroyQueue:
		value = destroyQueueValue{DestroyQueue: items}
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %q: %w", key, err)
	}

	if err := store.Save(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}

	return nil
}

// idString приводит идентификатор к строке. Сервер может вернуть id
// числом, после JSON он приходит как float64.
func idString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case json.Number:
		return id.String()
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return fmt.Sprint(id)
	}
}

// rawID возвращает целочисленный id как число JSON, остальные как строку,
// чтобы очередь удаления хранила id в том виде, в котором его выдал сервер
func rawID(id string) any {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil && strconv.FormatInt(n, 10) == id {
		return json.Number(id)
	}
	return id
}

// union добавляет id в конец списка, если его там еще нет
func union(ids []string, id string) []string {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(slices.Clone(ids), id)
}

// without возвращает список без id
func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
