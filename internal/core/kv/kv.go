// Package kv defines the key-value persistence boundary used for read state.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned (wrapped) when a key does not exist.
var ErrNotFound = errors.New("key not found")

// Entry represents a raw KV entry with metadata.
// Value holds the stored bytes as-is and is not guaranteed to be valid JSON.
type Entry struct {
	Key       string
	Value     json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// KV is the interface for a persistent string-keyed store.
// Backends store raw bytes; use Get and Set for JSON-encoded values.
// GetRaw on a missing key returns an error wrapping ErrNotFound.
type KV interface {
	GetRaw(ctx context.Context, key string) (Entry, error)
	SetRaw(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	ListKeys(ctx context.Context) ([]string, error)
}

// Get retrieves the value stored under key and decodes it into dest.
func Get(ctx context.Context, store KV, key string, dest any) error {
	entry, err := store.GetRaw(ctx, key)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(entry.Value, dest); err != nil {
		return fmt.Errorf("kv get %q unmarshal: %w", key, err)
	}

	return nil
}

// Set encodes value as JSON and stores it under key.
func Set(ctx context.Context, store KV, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", key, err)
	}

	return store.SetRaw(ctx, key, data)
}
