package store_engines

import (
	"context"
	"maps"
	"sync"
)

type MemoryStore struct {
	mtx    sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: map[string]string{},
	}
}

// NewMemoryStoreFrom seeds the store, used when replaying a dumped state
func NewMemoryStoreFrom(values map[string]string) *MemoryStore {
	store := NewMemoryStore()
	maps.Copy(store.values, values)
	return store
}

func (engine *MemoryStore) GetId() string {
	return "MemoryStore"
}

func (engine *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	engine.mtx.RLock()
	defer engine.mtx.RUnlock()
	value, ok := engine.values[key]
	return value, ok, nil
}

func (engine *MemoryStore) Set(ctx context.Context, key string, value string) error {
	engine.mtx.Lock()
	defer engine.mtx.Unlock()
	engine.values[key] = value
	return nil
}

func (engine *MemoryStore) Delete(ctx context.Context, key string) error {
	engine.mtx.Lock()
	defer engine.mtx.Unlock()
	delete(engine.values, key)
	return nil
}

func (engine *MemoryStore) Values() map[string]string {
	engine.mtx.RLock()
	defer engine.mtx.RUnlock()
	return maps.Clone(engine.values)
}
