package queue

import (
	"context"

	"github.com/iudanet/gophqueue/internal/models"
)

//go:generate moq -out remotesync_mock.go . RemoteSync

// RemoteSync persists single records on the remote store.
type RemoteSync interface {
	// Save creates (EntityPath is empty) or updates a record and returns
	// the attributes confirmed by the server, including the record id
	Save(ctx context.Context, req SaveRequest) (models.Attributes, error)

	// Destroy deletes the record at path
	Destroy(ctx context.Context, path string) error
}

// SaveRequest describes one remote save of a record
type SaveRequest struct {
	Attributes     models.Attributes
	CollectionPath string
	EntityPath     string // пусто, пока сервер не присвоил записи id
	ClientID       string
}

// IsNew reports whether the request creates a record
func (r SaveRequest) IsNew() bool {
	return r.EntityPath == ""
}
