package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/gophqueue/internal/client/storage"
)

const keyLastReplayPrefix = "last_replay:"

// SaveLastReplay saves the time of the last replay of a collection
func (s *Storage) SaveLastReplay(ctx context.Context, collection string, at time.Time) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		// Храним unix nano в big endian
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(at.UnixNano()))

		if err := bucket.Put([]byte(keyLastReplayPrefix+collection), buf); err != nil {
			return fmt.Errorf("failed to save last replay time: %w", err)
		}

		return nil
	})
}

// GetLastReplay retrieves the time of the last replay of a collection
// Returns zero time if the collection was never replayed
func (s *Storage) GetLastReplay(ctx context.Context, collection string) (time.Time, error) {
	if s.db == nil {
		return time.Time{}, storage.ErrStorageClosed
	}

	var at time.Time

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		buf := bucket.Get([]byte(keyLastReplayPrefix + collection))
		if buf == nil {
			return nil
		}
		if len(buf) != 8 {
			return fmt.Errorf("corrupted last replay value for %q", collection)
		}

		at = time.Unix(0, int64(binary.BigEndian.Uint64(buf)))
		return nil
	})

	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get last replay time: %w", err)
	}

	return at, nil
}
