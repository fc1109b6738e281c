// Package redisstore implements kv.KV on Redis so several dashboards can
// share read state.
package redisstore

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/colonyops/dashbell/internal/core/kv"
)

const (
	fieldValue     = "value"
	fieldCreatedAt = "created_at"
	fieldUpdatedAt = "updated_at"
)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// KVStore implements kv.KV with one Redis hash per key.
type KVStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

var _ kv.KV = (*KVStore)(nil)

// New creates a store with its own client.
func New(opts Options) *KVStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewWithClient(client, opts.Prefix)
}

// NewWithClient wraps an existing client. Keys are stored as prefix+key.
func NewWithClient(client *redis.Client, prefix string) *KVStore {
	return &KVStore{client: client, prefix: prefix, now: time.Now}
}

// Ping checks connectivity.
func (s *KVStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close releases the client's connections.
func (s *KVStore) Close() error {
	return s.client.Close()
}

// GetRaw returns the entry stored under key.
func (s *KVStore) GetRaw(ctx context.Context, key string) (kv.Entry, error) {
	fields, err := s.client.HGetAll(ctx, s.key(key)).Result()
	if err != nil {
		return kv.Entry{}, fmt.Errorf("kv get %q: %w", key, err)
	}

	value, ok := fields[fieldValue]
	if !ok {
		return kv.Entry{}, fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
	}

	return kv.Entry{
		Key:       key,
		Value:     []byte(value),
		CreatedAt: parseNanos(fields[fieldCreatedAt]),
		UpdatedAt: parseNanos(fields[fieldUpdatedAt]),
	}, nil
}

// SetRaw stores value under key. The creation time of an existing key is kept.
func (s *KVStore) SetRaw(ctx context.Context, key string, value []byte) error {
	now := formatNanos(s.now())
	k := s.key(key)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSetNX(ctx, k, fieldCreatedAt, now)
		pipe.HSet(ctx, k, fieldValue, string(value), fieldUpdatedAt, now)
		return nil
	})
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

// Delete removes a key.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// Has returns whether a key exists.
func (s *KVStore) Has(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("kv has %q: %w", key, err)
	}
	return n > 0, nil
}

// ListKeys returns all keys under the prefix in sorted order, prefix removed.
func (s *KVStore) ListKeys(ctx context.Context) ([]string, error) {
	var keys []string

	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("kv list keys: %w", err)
	}

	slices.Sort(keys)
	return slices.Compact(keys), nil
}

func (s *KVStore) key(key string) string {
	return s.prefix + key
}

func parseNanos(v string) time.Time {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(0, n)
}

func formatNanos(t time.Time) string {
	return strconv.FormatInt(t.UnixNano(), 10)
}
