package store

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
)

// Memory is an in-process Store. Contents are lost on restart.
type Memory struct {
	mu    sync.RWMutex
	docs  map[string][]byte
	lists map[string][][]byte
}

func NewMemory() *Memory {
	return &Memory{
		docs:  make(map[string][]byte),
		lists: make(map[string][][]byte),
	}
}

func (m *Memory) Get(_ context.Context, key string, dst any) (bool, error) {
	m.mu.RLock()
	data, ok := m.docs[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) Put(_ context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.docs[key] = data
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.docs, key)
	delete(m.lists, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Append(_ context.Context, key string, v any, limit int) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	list := append(m.lists[key], data)
	if limit > 0 && len(list) > limit {
		// Drop oldest
		list = append([][]byte(nil), list[len(list)-limit:]...)
	}
	m.lists[key] = list
	return nil
}

func (m *Memory) List(_ context.Context, key string) ([]json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := m.lists[key]
	out := make([]json.RawMessage, len(list))
	for i, item := range list {
		out[i] = append(json.RawMessage(nil), item...)
	}
	return out, nil
}

func (m *Memory) Remove(_ context.Context, key string, item json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.lists[key]
	for i, existing := range list {
		if bytes.Equal(existing, item) {
			m.lists[key] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
