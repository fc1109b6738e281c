package kv

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/colonyops/dashbell/pkg/kv"
)

// Memory is a process-local KV backend. Nothing survives process exit.
type Memory struct {
	data *kv.Store[string, Entry]
	now  func() time.Time
}

var _ KV = (*Memory)(nil)

// NewMemory creates an empty in-memory KV backend.
func NewMemory() *Memory {
	return &Memory{
		data: kv.New[string, Entry](),
		now:  time.Now,
	}
}

// GetRaw returns the entry stored under key.
func (m *Memory) GetRaw(_ context.Context, key string) (Entry, error) {
	entry, ok := m.data.Get(key)
	if !ok {
		return Entry{}, fmt.Errorf("kv get %q: %w", key, ErrNotFound)
	}
	entry.Value = slices.Clone(entry.Value)
	return entry, nil
}

// SetRaw stores value under key, preserving the original creation time.
func (m *Memory) SetRaw(_ context.Context, key string, value []byte) error {
	now := m.now()
	m.data.Update(key, func(prev Entry, ok bool) Entry {
		created := now
		if ok {
			created = prev.CreatedAt
		}
		return Entry{
			Key:       key,
			Value:     slices.Clone(value),
			CreatedAt: created,
			UpdatedAt: now,
		}
	})
	return nil
}

// Delete removes a key.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.data.Delete(key)
	return nil
}

// Has returns whether a key exists.
func (m *Memory) Has(_ context.Context, key string) (bool, error) {
	return m.data.Has(key), nil
}

// ListKeys returns all keys in sorted order.
func (m *Memory) ListKeys(_ context.Context) ([]string, error) {
	keys := m.data.Keys()
	slices.Sort(keys)
	return keys, nil
}
