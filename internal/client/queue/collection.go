package queue

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/gophqueue/internal/client/storage"
	"github.com/iudanet/gophqueue/internal/models"
)

// DefaultTimeout ограничивает одно обращение к удаленному хранилищу
const DefaultTimeout = 30 * time.Second

// Collection owns the records of one remote collection together with its
// create and destroy queues, and replays pending work in phase order.
//
// The persistent store is the source of truth for both queues: every queue
// mutation is a read-modify-write of the stored value, and Replay reloads the
// queues before doing anything else.
type Collection struct {
	store  storage.KVStorage
	remote RemoteSync
	logger *slog.Logger

	byID       map[string]*Record
	byClientID map[string]*Record

	keys        Keys
	path        string
	idAttribute string
	records     []*Record

	createQueue  []string
	destroyQueue []string

	timeout     time.Duration
	concurrency int

	mu      sync.RWMutex // защищает records, byID, byClientID
	queueMu sync.Mutex   // сериализует изменения очередей вместе с их записью в хранилище
}

// Option configures a Collection
type Option func(*Collection)

// WithKeyPrefix sets the storage key prefix (DefaultKeyPrefix by default)
func WithKeyPrefix(prefix string) Option {
	return func(c *Collection) {
		c.keys = NewKeys(prefix)
	}
}

// WithTimeout limits every remote call (DefaultTimeout by default)
func WithTimeout(timeout time.Duration) Option {
	return func(c *Collection) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithIDAttribute sets the attribute that carries the server id ("id" by default)
func WithIDAttribute(name string) Option {
	return func(c *Collection) {
		if name != "" {
			c.idAttribute = name
		}
	}
}

// WithConcurrency limits the number of records processed in parallel within
// a replay phase. Zero means no limit.
func WithConcurrency(n int) Option {
	return func(c *Collection) {
		if n >= 0 {
			c.concurrency = n
		}
	}
}

// NewCollection creates a collection for the remote collection at path
func NewCollection(path string, store storage.KVStorage, remote RemoteSync, logger *slog.Logger, opts ...Option) *Collection {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Collection{
		store:       store,
		remote:      remote,
		logger:      logger,
		byID:        make(map[string]*Record),
		byClientID:  make(map[string]*Record),
		keys:        NewKeys(""),
		path:        normalizePath(path),
		idAttribute: models.IDAttribute,
		timeout:     DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Path returns the collection path
func (c *Collection) Path() string {
	return c.path
}

// IDAttribute returns the name of the attribute holding the server id
func (c *Collection) IDAttribute() string {
	return c.idAttribute
}

// Keys returns the key derivation used by the collection
func (c *Collection) Keys() Keys {
	return c.keys
}

// Len returns the number of records in the collection
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Records returns the records in insertion order
func (c *Collection) Records() []*Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.records)
}

// Get returns the record with the given server id
func (c *Collection) Get(id string) *Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byID[id]
}

// GetByClientID returns the record with the given client id
func (c *Collection) GetByClientID(clientID string) *Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byClientID[clientID]
}

// Add inserts a record with known state. The id is taken from the id
// attribute; without it the record is new and gets a client id.
// For an id that is already present the existing record is returned unchanged.
// Attributes passed to Add are not tracked as changes.
func (c *Collection) Add(attrs models.Attributes) *Record {
	id := idString(attrs[c.idAttribute])

	c.mu.Lock()
	defer c.mu.Unlock()

	if id != "" {
		if existing, ok := c.byID[id]; ok {
			return existing
		}
	}

	r := c.newRecord(id, "", attrs)
	c.insertLocked(r)
	return r
}

// Create queues a new record and saves it.
//
// An empty clientID is replaced by a generated UUID. The client id is written
// to the create queue before the record is saved, so the creation survives a
// restart. The record is returned even if the save fails: it stays queued
// and is created by a later Replay.
func (c *Collection) Create(ctx context.Context, clientID string, attrs models.Attributes) (*Record, error) {
	if clientID == "" {
		clientID = uuid.New().String()
	}

	if err := c.queueCreation(ctx, clientID); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLocalStorage, err)
	}

	c.mu.Lock()
	r, ok := c.byClientID[clientID]
	if !ok {
		r = c.newRecord("", clientID, nil)
		c.insertLocked(r)
	}
	c.mu.Unlock()

	if err := r.Save(ctx, attrs); err != nil {
		return r, err
	}

	return r, nil
}

// PendingState is the persisted queue state of a collection
type PendingState struct {
	CreateQueue  []string
	DestroyQueue []string
}

// Pending reads the persisted queues
func (c *Collection) Pending(ctx context.Context) (*PendingState, error) {
	c.queueMu.Lock()
	defer c.queueMu.Unlock()

	if err := c.reloadQueuesLocked(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLocalStorage, err)
	}

	return &PendingState{
		CreateQueue:  slices.Clone(c.createQueue),
		DestroyQueue: slices.Clone(c.destroyQueue),
	}, nil
}

// KeyLister lists stored keys by prefix
type KeyLister interface {
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// PendingUpdates returns ids of synced records that have a stored update delta
func (c *Collection) PendingUpdates(ctx context.Context, lister KeyLister) ([]string, error) {
	keys, err := lister.Keys(ctx, c.keys.Prefix+c.path+"/")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list keys: %w", ErrLocalStorage, err)
	}

	var ids []string
	for _, key := range keys {
		if id, ok := c.keys.ParseUpdateKey(c.path, key); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Recover adds the records listed by PendingUpdates that the collection does
// not hold yet, so a following Replay re-sends their stored changes.
// It returns the ids of the added records.
func (c *Collection) Recover(ctx context.Context, lister KeyLister) ([]string, error) {
	ids, err := c.PendingUpdates(ctx, lister)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var added []string
	for _, id := range ids {
		if _, ok := c.byID[id]; ok {
			continue
		}
		c.insertLocked(c.newRecord(id, "", nil))
		added = append(added, id)
	}

	if len(added) > 0 {
		c.logger.Info("Recovered records with pending updates",
			"collection", c.path,
			"count", len(added))
	}
	return added, nil
}

func (c *Collection) newRecord(serverID, clientID string, attrs models.Attributes) *Record {
	if serverID == "" && clientID == "" {
		clientID = uuid.New().String()
	}

	a := attrs.Clone()
	if serverID != "" {
		a[c.idAttribute] = serverID
	}

	return &Record{
		coll:     c,
		attrs:    a,
		delta:    NewDeltaTracker(),
		serverID: serverID,
		clientID: clientID,
	}
}

func (c *Collection) insertLocked(r *Record) {
	c.records = append(c.records, r)
	if id := r.ID(); id != "" {
		c.byID[id] = r
	}
	if cid := r.ClientID(); cid != "" {
		c.byClientID[cid] = r
	}
}

// index регистрирует серверный id записи после подтверждения создания
func (c *Collection) index(r *Record) {
	id := r.ID()
	if id == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if slices.Contains(c.records, r) {
		c.byID[id] = r
	}
}

func (c *Collection) remove(r *Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = slices.DeleteFunc(c.records, func(x *Record) bool { return x == r })
	if id := r.ID(); id != "" && c.byID[id] == r {
		delete(c.byID, id)
	}
	if cid := r.ClientID(); cid != "" && c.byClientID[cid] == r {
		delete(c.byClientID, cid)
	}
}

// queueCreation добавляет client id в очередь создания; повторный вызов
// ничего не записывает
func (c *Collection) queueCreation(ctx context.Context, clientID string) error {
	if _, err := c.mutateQueue(ctx, createQueue, func(ids []string) []string {
		return union(ids, clientID)
	}); err != nil {
		return fmt.Errorf("failed to queue creation: %w", err)
	}
	return nil
}

// track убирает запись из очереди создания, как только сервер присвоил ей id
func (c *Collection) track(ctx context.Context, r *Record) error {
	cid := r.ClientID()
	if r.IsNew() || cid == "" {
		return nil
	}

	_, err := c.mutateQueue(ctx, createQueue, func(ids []string) []string {
		return without(ids, cid)
	})
	return err
}

// destroyStarted фиксирует намерение удалить запись до обращения к серверу
func (c *Collection) destroyStarted(ctx context.Context, r *Record) error {
	id := r.ID()
	_, err := c.mutateQueue(ctx, destroyQueue, func(ids []string) []string {
		return union(ids, id)
	})
	return err
}

// destroySucceeded убирает id из очереди удаления и запись из коллекции
func (c *Collection) destroySucceeded(ctx context.Context, r *Record) error {
	c.remove(r)

	id := r.ID()
	_, err := c.mutateQueue(ctx, destroyQueue, func(ids []string) []string {
		return without(ids, id)
	})
	return err
}

// forgetCreated удаляет локальные следы записи, которая так и не попала на сервер
func (c *Collection) forgetCreated(ctx context.Context, r *Record) error {
	cid := r.ClientID()

	if err := c.store.Delete(ctx, c.keys.NewRecordKey(c.path, cid)); err != nil {
		return fmt.Errorf("failed to delete new record snapshot: %w", err)
	}

	if _, err := c.mutateQueue(ctx, createQueue, func(ids []string) []string {
		return without(ids, cid)
	}); err != nil {
		return err
	}

	c.remove(r)
	return nil
}

// mutateQueue читает очередь из хранилища, применяет fn и записывает результат.
// Хранилище остается источником истины даже если в нем есть записи,
// о которых этот процесс не знает.
func (c *Collection) mutateQueue(ctx context.Context, kind queueKind, fn func([]string) []string) ([]string, error) {
	c.queueMu.Lock()
	defer c.queueMu.Unlock()

	key := c.queueKey(kind)

	ids, err := loadQueue(ctx, c.store, key, kind)
	if err != nil {
		return nil, err
	}

	updated := fn(ids)
	if !slices.Equal(ids, updated) {
		if err := saveQueue(ctx, c.store, key, kind, updated); err != nil {
			return nil, err
		}
	}

	c.setQueueLocked(kind, updated)
	return updated, nil
}

func (c *Collection) reloadQueuesLocked(ctx context.Context) error {
	created, err := loadQueue(ctx, c.store, c.queueKey(createQueue), createQueue)
	if err != nil {
		return err
	}
	destroyed, err := loadQueue(ctx, c.store, c.queueKey(destroyQueue), destroyQueue)
	if err != nil {
		return err
	}

	c.setQueueLocked(createQueue, created)
	c.setQueueLocked(destroyQueue, destroyed)
	return nil
}

func (c *Collection) queueKey(kind queueKind) string {
	if kind == createQueue {
		return c.keys.CreateQueueKey(c.path)
	}
	return c.keys.DestroyQueueKey(c.path)
}

func (c *Collection) setQueueLocked(kind queueKind, ids []string) {
	if kind == createQueue {
		c.createQueue = slices.Clone(ids)
		return
	}
	c.destroyQueue = slices.Clone(ids)
}

// deleteKey удаляет ключ; ошибка только логируется, так как оставшийся
// ключ приводит лишь к повторной отправке при следующем replay
func (c *Collection) deleteKey(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, key); err != nil {
		c.logger.Warn("Failed to delete pending key",
			"collection", c.path,
			"key", key,
			"error", err)
	}
}
