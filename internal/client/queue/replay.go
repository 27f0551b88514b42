package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ReplayResult summarizes one Collection.Replay run
type ReplayResult struct {
	Errors        []error
	Duration      time.Duration
	Materialized  int // записи, восстановленные из очереди создания
	Saved         int
	SaveFailed    int
	Destroyed     int
	DestroyFailed int
}

// Failed returns the number of records that stay queued after the run
func (r *ReplayResult) Failed() int {
	return r.SaveFailed + r.DestroyFailed
}

// Err joins all per-record errors, nil if every record succeeded
func (r *ReplayResult) Err() error {
	return errors.Join(r.Errors...)
}

// Replay pushes all pending work of the collection to the remote store.
//
// Phases run strictly one after another:
//  1. records listed in the create queue but missing from the collection are
//     restored as new records;
//  2. every record re-sends its stored changes (new records are created);
//  3. ids in the destroy queue are deleted remotely.
//
// Within a phase records are processed concurrently. A failed record does
// not stop the others; failures are reported in the result and stay queued.
// Only a failure to read the queues themselves aborts the run.
func (c *Collection) Replay(ctx context.Context) (*ReplayResult, error) {
	start := time.Now()
	result := &ReplayResult{}

	c.queueMu.Lock()
	err := c.reloadQueuesLocked(ctx)
	createIDs := append([]string(nil), c.createQueue...)
	destroyIDs := append([]string(nil), c.destroyQueue...)
	c.queueMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load queues: %w", ErrLocalStorage, err)
	}

	c.logger.Info("Replay started",
		"collection", c.path,
		"create_queue", len(createIDs),
		"destroy_queue", len(destroyIDs))

	// Фаза 1: восстанавливаем записи, созданные до перезапуска
	result.Materialized = c.materialize(createIDs)

	// Фаза 2: создание и обновление
	var mu sync.Mutex
	c.runPhase(ctx, c.Records(), func(ctx context.Context, r *Record) {
		attempted, err := r.replay(ctx)

		mu.Lock()
		defer mu.Unlock()
		switch {
		case err != nil:
			result.SaveFailed++
			result.Errors = append(result.Errors, fmt.Errorf("save %s: %w", r.label(), err))
		case attempted:
			result.Saved++
		}
	})

	// Фаза 3: удаление
	targets := c.destroyTargets(destroyIDs)
	c.runPhase(ctx, targets, func(ctx context.Context, r *Record) {
		err := r.Destroy(ctx)

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			result.DestroyFailed++
			result.Errors = append(result.Errors, fmt.Errorf("destroy %s: %w", r.label(), err))
			return
		}
		result.Destroyed++
	})

	result.Duration = time.Since(start)

	c.logger.Info("Replay finished",
		"collection", c.path,
		"materialized", result.Materialized,
		"saved", result.Saved,
		"save_failed", result.SaveFailed,
		"destroyed", result.Destroyed,
		"destroy_failed", result.DestroyFailed,
		"duration", result.Duration)

	return result, nil
}

// materialize добавляет в коллекцию пустые новые записи для client id из
// очереди создания; их атрибуты подтянутся из хранилища на фазе 2
func (c *Collection) materialize(clientIDs []string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	added := 0
	for _, cid := range clientIDs {
		if _, ok := c.byClientID[cid]; ok {
			continue
		}
		c.insertLocked(c.newRecord("", cid, nil))
		added++
	}
	return added
}

// destroyTargets возвращает записи для id из очереди удаления. Для id,
// которых нет в коллекции, создаются временные записи вне коллекции.
func (c *Collection) destroyTargets(ids []string) []*Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	targets := make([]*Record, 0, len(ids))
	for _, id := range ids {
		if r, ok := c.byID[id]; ok {
			targets = append(targets, r)
			continue
		}
		targets = append(targets, c.newRecord(id, "", nil))
	}
	return targets
}

// runPhase обрабатывает записи параллельно и ждет завершения всех.
// fn не возвращает ошибку: сбой одной записи не должен отменять остальные.
func (c *Collection) runPhase(ctx context.Context, records []*Record, fn func(context.Context, *Record)) {
	if len(records) == 0 {
		return
	}

	var g errgroup.Group
	if c.concurrency > 0 {
		g.SetLimit(c.concurrency)
	}

	for _, r := range records {
		g.Go(func() error {
			fn(ctx, r)
			return nil
		})
	}

	_ = g.Wait()
}
