package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps buckets in process memory. It backs tests and the
// zero-setup dev mode; contents vanish on shutdown.
type MemoryStore struct {
	mu      sync.RWMutex
	buckets map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, bucket string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.buckets[bucket]
	if !ok {
		return nil, ErrBucketNotFound
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

func (m *MemoryStore) Put(_ context.Context, bucket string, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buckets[bucket] = cp
	return nil
}

func (m *MemoryStore) Close() error { return nil }
