package store

import (
	"encoding/json"
	"sync"
)

// MemoryStore keeps collections in process memory. It is the default
// backend and the substitute the service tests inject instead of a real
// persistent store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Read(collection string, out any) error {
	s.mu.RLock()
	raw, ok := s.data[collection]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (s *MemoryStore) Write(collection string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[collection] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error { return nil }
