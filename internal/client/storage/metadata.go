package storage

import (
	"context"
	"time"
)

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveLastReplay saves the time of the last replay of a collection
	SaveLastReplay(ctx context.Context, collection string, at time.Time) error

	// GetLastReplay retrieves the time of the last replay of a collection
	// Returns zero time if the collection was never replayed
	GetLastReplay(ctx context.Context, collection string) (time.Time, error)
}
