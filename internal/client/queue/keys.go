package queue

import "strings"

// DefaultKeyPrefix префикс ключей локального хранилища по умолчанию
const DefaultKeyPrefix = "queue-storage-"

// Action тип отложенной операции, входит в суффикс ключа
type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDestroy Action = "destroy"
)

// Keys derives storage keys for pending changes.
// Keys depend only on the prefix, paths and ids, so the same record maps to
// the same key across process restarts.
type Keys struct {
	Prefix string
}

// NewKeys returns key derivation with the given prefix (DefaultKeyPrefix when empty)
func NewKeys(prefix string) Keys {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return Keys{Prefix: prefix}
}

// ActionKey returns prefix + path + "[action]"
func (k Keys) ActionKey(path string, action Action) string {
	return k.Prefix + path + "[" + string(action) + "]"
}

// UpdateKey is the key of the pending update delta of a synced record
func (k Keys) UpdateKey(entityPath string) string {
	return k.ActionKey(entityPath, ActionUpdate)
}

// CreateQueueKey is the key of the collection create queue
func (k Keys) CreateQueueKey(collectionPath string) string {
	return k.ActionKey(collectionPath, ActionCreate)
}

// DestroyQueueKey is the key of the collection destroy queue
func (k Keys) DestroyQueueKey(collectionPath string) string {
	return k.ActionKey(collectionPath, ActionDestroy)
}

// NewRecordKey is the key of the full attribute snapshot of a record
// that has not been created on the server yet
func (k Keys) NewRecordKey(collectionPath, clientID string) string {
	return k.Prefix + collectionPath + "/" + clientID
}

// ParseUpdateKey extracts the record id from an update key of the collection.
// ok is false for keys of other collections, nested paths and other actions.
func (k Keys) ParseUpdateKey(collectionPath, key string) (id string, ok bool) {
	rest, found := strings.CutPrefix(key, k.Prefix+collectionPath+"/")
	if !found {
		return "", false
	}
	id, found = strings.CutSuffix(rest, "["+string(ActionUpdate)+"]")
	if !found || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

// EntityPath returns the path of a synced record inside its collection
func EntityPath(collectionPath, id string) string {
	return collectionPath + "/" + id
}

// normalizePath убирает завершающие "/", чтобы пути записей не содержали "//"
func normalizePath(path string) string {
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		return path
	}
	return trimmed
}
