package queue

import "errors"

var (
	// ErrRemoteSave indicates that the remote store rejected or did not confirm a save.
	// Pending changes are kept for the next attempt
	ErrRemoteSave = errors.New("remote save failed")

	// ErrRemoteDestroy indicates that the remote store did not confirm a deletion.
	// The id stays in the destroy queue
	ErrRemoteDestroy = errors.New("remote destroy failed")

	// ErrLocalStorage indicates a failure of the local persistent store
	ErrLocalStorage = errors.New("local storage failure")

	// ErrRecordDestroyed indicates an operation on a record that was already destroyed
	ErrRecordDestroyed = errors.New("record is destroyed")

	// ErrMissingID indicates that the remote confirmed a creation without returning an id
	ErrMissingID = errors.New("server response has no record id")
)
