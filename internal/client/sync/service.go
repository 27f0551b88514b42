package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	gosync "sync"
	"time"

	"github.com/iudanet/gophqueue/internal/client/queue"
	"github.com/iudanet/gophqueue/internal/client/storage"
	"github.com/iudanet/gophqueue/internal/models"
	"github.com/iudanet/gophqueue/internal/validation"
	"github.com/iudanet/gophqueue/pkg/api"
)

//go:generate moq -out service_mock.go . Service

// Service определяет операции клиента над коллекциями сервера.
// Каждое изменение сначала фиксируется локально, поэтому недоступность
// сервера не теряет его: такое изменение помечается как Queued и
// отправляется при следующем Replay.
type Service interface {
	// Create создает запись в коллекции
	Create(ctx context.Context, collection string, attrs models.Attributes) (*MutationResult, error)

	// Update отправляет изменения записи с известным id
	Update(ctx context.Context, collection, id string, attrs models.Attributes) (*MutationResult, error)

	// Delete удаляет запись с известным id
	Delete(ctx context.Context, collection, id string) (*MutationResult, error)

	// Replay отправляет все отложенные изменения коллекций
	Replay(ctx context.Context, collections []string) ([]*ReplayReport, error)

	// Status возвращает состояние локальных очередей коллекций
	Status(ctx context.Context, collections []string) ([]*CollectionStatus, error)
}

// QueueStorage локальное хранилище очередей
type QueueStorage interface {
	storage.KVStorage
	queue.KeyLister
}

// MutationResult результат одной операции над записью
type MutationResult struct {
	Cause    error  // ошибка сервера, из-за которой изменение осталось в очереди
	ID       string // id на сервере, пустой пока запись не создана
	ClientID string
	Queued   bool
}

// ReplayReport результат replay одной коллекции
type ReplayReport struct {
	Result     *queue.ReplayResult
	Collection string
	Recovered  int // записи с отложенными обновлениями, найденные в хранилище
}

// CollectionStatus состояние локальных очередей коллекции
type CollectionStatus struct {
	LastReplay   time.Time // нулевое значение - replay без ошибок еще не выполнялся
	Collection   string
	CreateQueue  []string
	DestroyQueue []string
	Updates      []string
}

// Pending возвращает общее число отложенных операций
func (s *CollectionStatus) Pending() int {
	return len(s.CreateQueue) + len(s.DestroyQueue) + len(s.Updates)
}

type service struct {
	remote          queue.RemoteSync
	queueStorage    QueueStorage
	metadataStorage storage.MetadataStorage
	logger          *slog.Logger
	collections     map[string]*queue.Collection
	opts            []queue.Option
	mu              gosync.Mutex
}

// NewService creates a new sync service
func NewService(remote queue.RemoteSync, queueStorage QueueStorage, metadataStorage storage.MetadataStorage, logger *slog.Logger, opts ...queue.Option) Service {
	return &service{
		remote:          remote,
		queueStorage:    queueStorage,
		metadataStorage: metadataStorage,
		logger:          logger,
		collections:     make(map[string]*queue.Collection),
		opts:            opts,
	}
}

// collection возвращает коллекцию по имени, создавая её при первом обращении
func (s *service) collection(name string) (*queue.Collection, error) {
	if err := validation.ValidateCollection(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[name]
	if !ok {
		c = queue.NewCollection(api.CollectionPath(name), s.queueStorage, s.remote, s.logger, s.opts...)
		s.collections[name] = c
	}
	return c, nil
}

func (s *service) Create(ctx context.Context, collection string, attrs models.Attributes) (*MutationResult, error) {
	c, err := s.collection(collection)
	if err != nil {
		return nil, err
	}

	r, err := c.Create(ctx, "", attrs)
	if r == nil {
		return nil, err
	}
	return s.outcome(r, err)
}

func (s *service) Update(ctx context.Context, collection, id string, attrs models.Attributes) (*MutationResult, error) {
	c, err := s.collection(collection)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("record id is required")
	}

	r := c.Add(models.Attributes{c.IDAttribute(): id})
	return s.outcome(r, r.Save(ctx, attrs))
}

func (s *service) Delete(ctx context.Context, collection, id string) (*MutationResult, error) {
	c, err := s.collection(collection)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("record id is required")
	}

	r := c.Add(models.Attributes{c.IDAttribute(): id})
	return s.outcome(r, r.Destroy(ctx))
}

// outcome отделяет ошибки сервера (изменение осталось в очереди) от
// локальных ошибок, при которых изменение не сохранено
func (s *service) outcome(r *queue.Record, err error) (*MutationResult, error) {
	result := &MutationResult{
		ID:       r.ID(),
		ClientID: r.ClientID(),
	}

	switch {
	case err == nil:
		return result, nil
	case queue.IsRemoteFailure(err):
		result.Queued = true
		result.Cause = err
		return result, nil
	default:
		return nil, err
	}
}

func (s *service) Replay(ctx context.Context, collections []string) ([]*ReplayReport, error) {
	reports := make([]*ReplayReport, 0, len(collections))
	var errs []error

	for _, name := range collections {
		report, err := s.replayCollection(ctx, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("collection %s: %w", name, err))
			continue
		}
		reports = append(reports, report)
	}

	return reports, errors.Join(errs...)
}

func (s *service) replayCollection(ctx context.Context, name string) (*ReplayReport, error) {
	c, err := s.collection(name)
	if err != nil {
		return nil, err
	}

	// Обновления, отложенные прошлыми запусками, известны только хранилищу
	recovered, err := c.Recover(ctx, s.queueStorage)
	if err != nil {
		return nil, err
	}

	result, err := c.Replay(ctx)
	if err != nil {
		return nil, err
	}

	if result.Failed() == 0 {
		if err := s.metadataStorage.SaveLastReplay(ctx, name, time.Now()); err != nil {
			// Не прерываем replay из-за ошибки сохранения метаданных
			s.logger.Warn("Failed to save last replay time", "collection", name, "error", err)
		}
	}

	return &ReplayReport{
		Collection: name,
		Recovered:  len(recovered),
		Result:     result,
	}, nil
}

func (s *service) Status(ctx context.Context, collections []string) ([]*CollectionStatus, error) {
	statuses := make([]*CollectionStatus, 0, len(collections))

	for _, name := range collections {
		c, err := s.collection(name)
		if err != nil {
			return nil, err
		}

		pending, err := c.Pending(ctx)
		if err != nil {
			return nil, fmt.Errorf("collection %s: %w", name, err)
		}

		updates, err := c.PendingUpdates(ctx, s.queueStorage)
		if err != nil {
			return nil, fmt.Errorf("collection %s: %w", name, err)
		}

		lastReplay, err := s.metadataStorage.GetLastReplay(ctx, name)
		if err != nil {
			s.logger.Debug("No last replay time", "collection", name, "error", err)
		}

		statuses = append(statuses, &CollectionStatus{
			Collection:   name,
			CreateQueue:  pending.CreateQueue,
			DestroyQueue: pending.DestroyQueue,
			Updates:      updates,
			LastReplay:   lastReplay,
		})
	}

	return statuses, nil
}
