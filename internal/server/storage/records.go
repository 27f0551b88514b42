package storage

import (
	"context"

	"github.com/iudanet/gophqueue/internal/models"
)

//go:generate moq -out recordstorage_mock.go . RecordStorage

// RecordStorage defines interface for collection records persistence.
// All methods are scoped to the owner: records of other users are invisible.
type RecordStorage interface {
	// CreateRecord inserts a new record.
	// If rec.ClientID is not empty and the owner already has a record with the same
	// client id in the collection, the existing record is returned with created=false
	CreateRecord(ctx context.Context, rec *models.StoredRecord) (stored *models.StoredRecord, created bool, err error)

	// GetRecord retrieves a single record
	// Returns ErrRecordNotFound if record doesn't exist
	GetRecord(ctx context.Context, ownerID, collection, id string) (*models.StoredRecord, error)

	// ListRecords retrieves all records of the collection ordered by creation time
	// Returns empty slice if no records found
	ListRecords(ctx context.Context, ownerID, collection string) ([]*models.StoredRecord, error)

	// UpdateRecord merges attrs into the stored attributes and returns the result
	// Returns ErrRecordNotFound if record doesn't exist
	UpdateRecord(ctx context.Context, ownerID, collection, id string, attrs models.Attributes) (*models.StoredRecord, error)

	// DeleteRecord deletes the record
	// Returns ErrRecordNotFound if record doesn't exist
	DeleteRecord(ctx context.Context, ownerID, collection, id string) error
}
