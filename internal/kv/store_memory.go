package kv

import (
	"encoding/json"
	"sync"
)

type MemStore struct {
	mu sync.RWMutex
	m  map[string]json.RawMessage
}

func NewMemStore() *MemStore {
	return &MemStore{m: make(map[string]json.RawMessage)}
}

func (s *MemStore) Get(key string, v any) (bool, error) {
	if !validKey(key) {
		return false, ErrBadKey
	}

	s.mu.RLock()
	raw, ok := s.m[key]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MemStore) Set(key string, v any) error {
	if !validKey(key) {
		return ErrBadKey
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.m[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemStore) Delete(key string) error {
	if !validKey(key) {
		return ErrBadKey
	}

	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
	return nil
}
