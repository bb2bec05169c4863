// Package storage persists the player profile through a small key-value
// store. The desktop store is backed by gdata; a memory store serves tests
// and the degraded mode used when no data directory is available.
package storage

import (
	"fmt"
	"sync"

	"github.com/quasilyte/gdata/v2"
)

// Store is a synchronous key-value store.
type Store interface {
	// Get returns the value for key. ok is false when the key was never set.
	Get(key string) (data []byte, ok bool, err error)
	Set(key string, data []byte) error
}

// GdataStore keeps every key as a property of one gdata object.
type GdataStore struct {
	manager *gdata.Manager
	object  string
}

// OpenGdata opens the per-user data directory for appName.
func OpenGdata(appName string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("opening gdata for %q: %w", appName, err)
	}
	return NewGdataStore(m), nil
}

// NewGdataStore wraps an existing gdata manager.
func NewGdataStore(m *gdata.Manager) *GdataStore {
	return &GdataStore{manager: m, object: "save"}
}

func (s *GdataStore) Get(key string) ([]byte, bool, error) {
	if !s.manager.ObjectPropExists(s.object, key) {
		return nil, false, nil
	}
	data, err := s.manager.LoadObjectProp(s.object, key)
	if err != nil {
		return nil, false, fmt.Errorf("loading %s: %w", key, err)
	}
	return data, true, nil
}

func (s *GdataStore) Set(key string, data []byte) error {
	if err := s.manager.SaveObjectProp(s.object, key, data); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *MemoryStore) Set(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(data))
	copy(v, data)
	s.data[key] = v
	return nil
}
