package queue

import (
	"sync"

	"github.com/iudanet/gophqueue/internal/models"
)

// DeltaTracker накапливает изменения полей записи с момента последней
// успешной отправки на сервер.
type DeltaTracker struct {
	changes models.Attributes
	mu      sync.Mutex
}

// NewDeltaTracker создает пустой трекер
func NewDeltaTracker() *DeltaTracker {
	return &DeltaTracker{changes: models.Attributes{}}
}

// Apply добавляет новые значения полей (более новые значения перезаписывают старые)
func (d *DeltaTracker) Apply(fields models.Attributes) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for k, v := range fields {
		d.changes[k] = v
	}
}

// Unapply удаляет поля из накопленных изменений (используется при unset)
func (d *DeltaTracker) Unapply(keys ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, k := range keys {
		delete(d.changes, k)
	}
}

// SnapshotAndReset атомарно возвращает накопленные изменения и очищает трекер.
// Изменения, сделанные во время отправки, попадают уже в новый пустой набор.
func (d *DeltaTracker) SnapshotAndReset() models.Attributes {
	d.mu.Lock()
	defer d.mu.Unlock()

	snapshot := d.changes
	d.changes = models.Attributes{}
	return snapshot
}

// Restore возвращает неудачно отправленный набор batch обратно в трекер.
// Результат: batch, поверх которого наложены изменения, накопленные после снимка
// (они новее и побеждают при совпадении ключей).
func (d *DeltaTracker) Restore(batch models.Attributes) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.changes = batch.Merge(d.changes)
}

// Snapshot возвращает копию накопленных изменений без очистки
func (d *DeltaTracker) Snapshot() models.Attributes {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.changes.Clone()
}

// Len возвращает количество измененных полей
func (d *DeltaTracker) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.changes)
}
