package storage

import "context"

//go:generate moq -out kvstorage_mock.go . KVStorage

// KVStorage defines the persistent key-value store used by the offline queue.
// Keys are opaque strings, values are JSON documents.
type KVStorage interface {
	// Get returns the value stored under key
	// Returns ErrKeyNotFound if the key is absent
	Get(ctx context.Context, key string) ([]byte, error)

	// Save stores value under key, replacing any previous value
	Save(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error
	Delete(ctx context.Context, key string) error
}
