package kv

import (
	"context"
)

// TypedKV provides type-safe access to a KV store for a specific type T.
type TypedKV[T any] struct {
	store  KV
	prefix string
}

// Scoped returns a TypedKV[T] that prefixes all keys with "namespace:".
// An empty namespace leaves keys untouched.
func Scoped[T any](store KV, namespace string) *TypedKV[T] {
	prefix := ""
	if namespace != "" {
		prefix = namespace + ":"
	}

	return &TypedKV[T]{
		store:  store,
		prefix: prefix,
	}
}

// Key returns the fully qualified key as stored in the backend.
func (t *TypedKV[T]) Key(key string) string {
	return t.prefix + key
}

// Get retrieves and deserializes a value by key.
func (t *TypedKV[T]) Get(ctx context.Context, key string) (T, error) {
	var v T
	if err := Get(ctx, t.store, t.prefix+key, &v); err != nil {
		return v, err
	}
	return v, nil
}

// Set stores a value.
func (t *TypedKV[T]) Set(ctx context.Context, key string, value T) error {
	return Set(ctx, t.store, t.prefix+key, value)
}

// Delete removes a key.
func (t *TypedKV[T]) Delete(ctx context.Context, key string) error {
	return t.store.Delete(ctx, t.prefix+key)
}

// Has returns whether a key exists.
func (t *TypedKV[T]) Has(ctx context.Context, key string) (bool, error) {
	return t.store.Has(ctx, t.prefix+key)
}
