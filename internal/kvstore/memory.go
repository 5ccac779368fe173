package kvstore

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

const backendMemory = "memory"

// MemoryStore keeps encoded values in process memory. Values are stored as
// JSON so callers never share references with the store.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	logger *zap.SugaredLogger
}

func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		data:   make(map[string][]byte),
		logger: logger.Sugar(),
	}
}

func (m *MemoryStore) Get(_ context.Context, key string, dest any) bool {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return false
	}
	if err := decodeInto(raw, dest); err != nil {
		m.logger.Warnw("Failed to decode stored value", "key", key, "error", err)
		record(backendMemory, "get", false)
		return false
	}
	record(backendMemory, "get", true)
	return true
}

func (m *MemoryStore) Set(_ context.Context, key string, value any) bool {
	raw, err := encode(value)
	if err != nil {
		m.logger.Errorw("Failed to encode value", "key", key, "error", err)
		record(backendMemory, "set", false)
		return false
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	record(backendMemory, "set", true)
	return true
}

func (m *MemoryStore) Remove(_ context.Context, key string) bool {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	record(backendMemory, "remove", true)
	return true
}

// SetRaw stores bytes verbatim. Used to seed legacy or corrupt payloads.
func (m *MemoryStore) SetRaw(key string, raw []byte) {
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
}

func (m *MemoryStore) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[key]
	return ok
}
