package database

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryBackend is an in-process Backend used by tests and the regtool CLI.
// Records keep insertion order per collection, like Mongo's natural order.
type MemoryBackend struct {
	mu   sync.RWMutex
	cols map[string][]Doc
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{cols: make(map[string][]Doc)}
}

func (m *MemoryBackend) Insert(ctx context.Context, collection string, doc map[string]any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := primitive.NewObjectID()
	stored := Doc(doc).Fields()
	stored["_id"] = id
	m.cols[collection] = append(m.cols[collection], stored)
	return id.Hex(), nil
}

func (m *MemoryBackend) Find(ctx context.Context, collection string, filter map[string]any, limit int64) ([]Doc, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Doc{}
	for _, d := range m.cols[collection] {
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		if matches(d, filter) {
			out = append(out, Doc(d.Fields()))
		}
	}
	return out, nil
}

func (m *MemoryBackend) FindByID(ctx context.Context, collection string, id primitive.ObjectID) (Doc, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.cols[collection] {
		if d["_id"] == id {
			return Doc(d.Fields()), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryBackend) CollectionNames(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.cols))
	for name := range m.cols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func matches(d Doc, filter map[string]any) bool {
	for k, want := range filter {
		got, ok := d[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
