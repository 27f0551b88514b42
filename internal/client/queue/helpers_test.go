package queue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/iudanet/gophqueue/internal/client/storage"
	"github.com/iudanet/gophqueue/internal/models"
)

var errBackend = errors.New("backend unavailable")

// memStore хранилище в памяти поверх KVStorageMock
type memStore struct {
	data     map[string][]byte
	mock     *storage.KVStorageMock
	failSave func(key string) bool
	failGet  func(key string) bool
	mu       sync.Mutex
}

func newMemStore() *memStore {
	s := &memStore{data: make(map[string][]byte)}
	s.mock = &storage.KVStorageMock{
		GetFunc: func(ctx context.Context, key string) ([]byte, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.failGet != nil && s.failGet(key) {
				return nil, errBackend
			}
			v, ok := s.data[key]
			if !ok {
				return nil, storage.ErrKeyNotFound
			}
			return append([]byte(nil), v...), nil
		},
		SaveFunc: func(ctx context.Context, key string, value []byte) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.failSave != nil && s.failSave(key) {
				return errBackend
			}
			s.data[key] = append([]byte(nil), value...)
			return nil
		},
		DeleteFunc: func(ctx context.Context, key string) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.data, key)
			return nil
		},
	}
	return s
}

func (s *memStore) raw(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return string(v), ok
}

func (s *memStore) put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = []byte(value)
}

// Keys реализует KeyLister
func (s *memStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var out []string
	for _, k := range s.keys() {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *memStore) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.data))
	for k := range s.data {
		out = append(out, k)
	}
	return out
}

// fakeRemote сервер в памяти поверх RemoteSyncMock: присваивает id
// последовательно и запоминает порядок операций
type fakeRemote struct {
	records  map[string]models.Attributes
	mock     *RemoteSyncMock
	failSave func(req SaveRequest) error
	failDel  func(path string) error
	ops      []string
	nextID   int
	mu       sync.Mutex
}

func newFakeRemote() *fakeRemote {
	f := &fakeRemote{records: make(map[string]models.Attributes), nextID: 1}
	f.mock = &RemoteSyncMock{
		SaveFunc: func(ctx context.Context, req SaveRequest) (models.Attributes, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.failSave != nil {
				if err := f.failSave(req); err != nil {
					return nil, err
				}
			}

			path := req.EntityPath
			if req.IsNew() {
				id := fmt.Sprint(f.nextID)
				f.nextID++
				path = EntityPath(req.CollectionPath, id)
				f.records[path] = models.Attributes{"id": id}
				f.ops = append(f.ops, "create:"+req.ClientID)
			} else {
				f.ops = append(f.ops, "update:"+path)
			}

			merged := f.records[path].Patch(req.Attributes)
			f.records[path] = merged
			return merged.Clone(), nil
		},
		DestroyFunc: func(ctx context.Context, path string) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.failDel != nil {
				if err := f.failDel(path); err != nil {
					return err
				}
			}
			delete(f.records, path)
			f.ops = append(f.ops, "destroy:"+path)
			return nil
		},
	}
	return f
}

func (f *fakeRemote) operations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ops...)
}

func (f *fakeRemote) record(path string) models.Attributes {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.records[path])
}

func (f *fakeRemote) setFailSave(fn func(req SaveRequest) error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSave = fn
}

func (f *fakeRemote) setFailDestroy(fn func(path string) error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failDel = fn
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCollection(t *testing.T, store *memStore, remote *fakeRemote, opts ...Option) *Collection {
	t.Helper()
	return NewCollection("/api/notes", store.mock, remote.mock, testLogger(), opts...)
}
