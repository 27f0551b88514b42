package queue

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/iudanet/gophqueue/internal/models"
)

// Record is one entity of a Collection together with its pending changes.
//
// Save, Destroy and Replay are serialized per record. Set and Unset may be
// called at any time: changes made while a save is in flight are tracked
// separately and merged back if that save fails.
type Record struct {
	coll  *Collection
	attrs models.Attributes
	delta *DeltaTracker

	serverID  string
	clientID  string
	destroyed bool

	opMu sync.Mutex   // сериализует Save/Destroy/Replay
	mu   sync.RWMutex // защищает attrs, serverID, clientID, destroyed
}

// ID returns the server-assigned id, empty while the record is new
func (r *Record) ID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.serverID
}

// ClientID returns the locally generated id, empty for records that were
// known to the server before they were added to the collection
func (r *Record) ClientID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.clientID
}

// IsNew reports whether the server has not assigned an id yet
func (r *Record) IsNew() bool {
	return r.ID() == ""
}

// Path returns the entity path of a synced record, empty while new
func (r *Record) Path() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pathLocked()
}

func (r *Record) pathLocked() string {
	if r.serverID == "" {
		return ""
	}
	return EntityPath(r.coll.path, r.serverID)
}

// Get returns the current value of a field
func (r *Record) Get(key string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.attrs[key]
	return v, ok
}

// Attributes returns a copy of the current attributes
func (r *Record) Attributes() models.Attributes {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.attrs.Clone()
}

// Dirty reports whether the record has changes that were not handed to a save yet
func (r *Record) Dirty() bool {
	return r.delta.Len() > 0
}

// Changes returns a copy of the tracked changes
func (r *Record) Changes() models.Attributes {
	return r.delta.Snapshot()
}

// Set applies field values and tracks them as pending changes.
// A nil value removes the field; the removal is sent to the remote as null.
// The id attribute is assigned by the server only and is ignored here.
func (r *Record) Set(fields models.Attributes) {
	if len(fields) == 0 {
		return
	}
	fields = fields.Omit(r.coll.idAttribute)

	r.mu.Lock()
	r.attrs = r.attrs.Patch(fields)
	r.mu.Unlock()

	r.delta.Apply(fields)
}

// Unset removes fields from the record.
//
// For a new record the fields are dropped from the pending changes: the whole
// attribute set is sent on creation anyway. For a synced record the removal
// itself is a pending change and overrides values stored by earlier failed
// saves.
func (r *Record) Unset(keys ...string) {
	keys = slices.DeleteFunc(slices.Clone(keys), func(k string) bool {
		return k == r.coll.idAttribute
	})
	if len(keys) == 0 {
		return
	}

	r.mu.Lock()
	for _, k := range keys {
		delete(r.attrs, k)
	}
	synced := r.serverID != ""
	r.mu.Unlock()

	if !synced {
		r.delta.Unapply(keys...)
		return
	}

	removed := make(models.Attributes, len(keys))
	for _, k := range keys {
		removed[k] = nil
	}
	r.delta.Apply(removed)
}

// Save applies changes and pushes the record to the remote store.
//
// The pending changes are written to the local store before the remote call.
// On success the stored copies are removed; on failure the changes are kept
// (in memory and in the store) for the next Save or Replay.
func (r *Record) Save(ctx context.Context, changes models.Attributes) error {
	r.opMu.Lock()
	defer r.opMu.Unlock()

	return r.save(ctx, changes)
}

func (r *Record) save(ctx context.Context, changes models.Attributes) error {
	c := r.coll

	if r.isDestroyed() {
		return ErrRecordDestroyed
	}

	r.Set(changes)
	snapshot := r.delta.SnapshotAndReset()

	r.mu.RLock()
	isNew := r.serverID == ""
	clientID := r.clientID
	entityPath := r.pathLocked()
	payload := r.attrs.Clone()
	r.mu.RUnlock()

	// Фиксируем намерение локально до обращения к серверу
	pending := snapshot
	if isNew {
		// Запись, добавленная через Add без id, тоже попадает в очередь создания
		if err := c.queueCreation(ctx, clientID); err != nil {
			r.delta.Restore(snapshot)
			return fmt.Errorf("%w: %w", ErrLocalStorage, err)
		}
		if err := saveAttributes(ctx, c.store, c.keys.NewRecordKey(c.path, clientID), payload); err != nil {
			r.delta.Restore(snapshot)
			return fmt.Errorf("%w: %w", ErrLocalStorage, err)
		}
	} else {
		updateKey := c.keys.UpdateKey(entityPath)

		// Изменения, сохраненные прошлыми неудачными попытками (в том числе до
		// перезапуска процесса), объединяются с текущими - новые побеждают
		stored, _, err := loadAttributes(ctx, c.store, updateKey)
		if err != nil {
			r.delta.Restore(snapshot)
			return fmt.Errorf("%w: %w", ErrLocalStorage, err)
		}
		pending = stored.Merge(snapshot)

		if len(pending) > 0 {
			if err := saveAttributes(ctx, c.store, updateKey, pending); err != nil {
				r.delta.Restore(snapshot)
				return fmt.Errorf("%w: %w", ErrLocalStorage, err)
			}
		}
		payload = payload.Merge(pending)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.remote.Save(reqCtx, SaveRequest{
		Attributes:     payload,
		CollectionPath: c.path,
		EntityPath:     entityPath,
		ClientID:       clientID,
	})
	if err == nil && isNew && idString(result[c.idAttribute]) == "" {
		err = ErrMissingID
	}
	if err != nil {
		r.delta.Restore(pending)
		c.logger.Warn("Remote save failed, changes kept for replay",
			"collection", c.path,
			"record", r.label(),
			"error", err)
		return fmt.Errorf("%w: %w", ErrRemoteSave, err)
	}

	r.adopt(result)

	// Состояние сервера теперь авторитетно - локальные копии больше не нужны
	if clientID != "" {
		c.deleteKey(ctx, c.keys.NewRecordKey(c.path, clientID))
	}
	c.deleteKey(ctx, c.keys.UpdateKey(r.Path()))

	if err := c.track(ctx, r); err != nil {
		c.logger.Warn("Failed to update create queue",
			"collection", c.path,
			"record", r.label(),
			"error", err)
	}

	c.logger.Debug("Record saved", "collection", c.path, "record", r.label())
	return nil
}

// adopt применяет подтвержденные сервером атрибуты. Поля, измененные во время
// запроса (включая удаленные), остаются локальными - они новее ответа сервера.
func (r *Record) adopt(result models.Attributes) {
	newer := r.delta.Snapshot()

	r.mu.Lock()
	r.attrs = r.attrs.Patch(result).Patch(newer)
	assigned := false
	if id := idString(result[r.coll.idAttribute]); id != "" && id != r.serverID {
		r.serverID = id
		r.attrs[r.coll.idAttribute] = id
		assigned = true
	}
	r.mu.Unlock()

	if assigned {
		r.coll.index(r)
	}
}

// Destroy deletes the record on the remote store.
//
// The id is added to the collection destroy queue before the remote call and
// removed only after the server confirms, so an interrupted deletion is
// replayed by the next Collection.Replay. A record that never reached the
// server is only forgotten locally.
func (r *Record) Destroy(ctx context.Context) error {
	r.opMu.Lock()
	defer r.opMu.Unlock()

	return r.destroy(ctx)
}

func (r *Record) destroy(ctx context.Context) error {
	c := r.coll

	if r.isDestroyed() {
		return nil
	}

	if r.IsNew() {
		if err := c.forgetCreated(ctx, r); err != nil {
			return fmt.Errorf("%w: %w", ErrLocalStorage, err)
		}
		r.markDestroyed()
		return nil
	}

	if err := c.destroyStarted(ctx, r); err != nil {
		return fmt.Errorf("%w: %w", ErrLocalStorage, err)
	}

	path := r.Path()

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.remote.Destroy(reqCtx, path); err != nil {
		c.logger.Warn("Remote destroy failed, id kept in destroy queue",
			"collection", c.path,
			"record", r.label(),
			"error", err)
		return fmt.Errorf("%w: %w", ErrRemoteDestroy, err)
	}

	c.deleteKey(ctx, c.keys.UpdateKey(path))

	if err := c.destroySucceeded(ctx, r); err != nil {
		// Запись уже удалена на сервере; повторное удаление при следующем
		// replay безопасно, поэтому ошибку только логируем
		c.logger.Warn("Failed to update destroy queue",
			"collection", c.path,
			"record", r.label(),
			"error", err)
	}

	r.markDestroyed()
	c.logger.Debug("Record destroyed", "collection", c.path, "record", r.label())
	return nil
}

// Replay re-sends changes stored by earlier failed attempts.
// It is a no-op for a synced record without stored changes.
func (r *Record) Replay(ctx context.Context) error {
	_, err := r.replay(ctx)
	return err
}

// replay возвращает attempted=true, если была попытка отправки
func (r *Record) replay(ctx context.Context) (bool, error) {
	r.opMu.Lock()
	defer r.opMu.Unlock()

	if r.isDestroyed() {
		return false, nil
	}

	c := r.coll

	r.mu.RLock()
	isNew := r.serverID == ""
	clientID := r.clientID
	entityPath := r.pathLocked()
	r.mu.RUnlock()

	changes := models.Attributes{}

	if clientID != "" {
		snapshot, _, err := loadAttributes(ctx, c.store, c.keys.NewRecordKey(c.path, clientID))
		if err != nil {
			return false, fmt.Errorf("%w: %w", ErrLocalStorage, err)
		}
		changes = changes.Merge(snapshot)
	}

	if entityPath != "" {
		update, _, err := loadAttributes(ctx, c.store, c.keys.UpdateKey(entityPath))
		if err != nil {
			return false, fmt.Errorf("%w: %w", ErrLocalStorage, err)
		}
		// Дельта обновления логически новее снимка новой записи
		changes = changes.Merge(update)
	}

	// Новая запись существует только локально - её нужно создать в любом случае
	if len(changes) == 0 && !isNew {
		return false, nil
	}

	return true, r.save(ctx, changes)
}

func (r *Record) isDestroyed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.destroyed
}

func (r *Record) markDestroyed() {
	r.mu.Lock()
	r.destroyed = true
	r.mu.Unlock()
}

// label возвращает идентификатор записи для логов
func (r *Record) label() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.serverID != "" {
		return r.serverID
	}
	return "cid:" + r.clientID
}

// IsRemoteFailure reports whether err is a remote save or destroy failure,
// i.e. the change is queued and will be retried by the next replay
func IsRemoteFailure(err error) bool {
	return errors.Is(err, ErrRemoteSave) || errors.Is(err, ErrRemoteDestroy)
}
