package notify

import (
	"context"
	"errors"
	"slices"

	"github.com/colonyops/dashbell/internal/core/kv"
	"github.com/rs/zerolog"
)

// DefaultStorageKey is the key the read IDs are persisted under.
const DefaultStorageKey = "notification-read-ids"

// ReadIDStore persists the set of IDs the user has read. Implementations
// never fail: problems are logged and Load degrades to an empty list.
type ReadIDStore interface {
	Load(ctx context.Context) []string
	Save(ctx context.Context, ids []string)
}

// KVReadIDStore stores read IDs as a JSON array of strings under a single
// key of a kv.KV backend.
type KVReadIDStore struct {
	store *kv.TypedKV[[]string]
	key   string
	log   zerolog.Logger
}

// NewKVReadIDStore returns a ReadIDStore backed by store. namespace scopes
// the key (empty for none). An empty key uses DefaultStorageKey.
func NewKVReadIDStore(store kv.KV, namespace, key string, logger zerolog.Logger) *KVReadIDStore {
	if key == "" {
		key = DefaultStorageKey
	}
	return &KVReadIDStore{
		store: kv.Scoped[[]string](store, namespace),
		key:   key,
		log:   logger,
	}
}

// Key returns the fully qualified storage key.
func (s *KVReadIDStore) Key() string {
	return s.store.Key(s.key)
}

// Load returns the persisted IDs. A missing, corrupt or unreachable value
// yields an empty list.
func (s *KVReadIDStore) Load(ctx context.Context) []string {
	ids, err := s.store.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			s.log.Debug().Ctx(ctx).Str("key", s.Key()).Msg("no read ids stored")
		} else {
			s.log.Warn().Ctx(ctx).Err(err).Str("key", s.Key()).Msg("failed to load read ids, starting empty")
		}
		return []string{}
	}

	if ids == nil {
		return []string{}
	}
	return ids
}

// Save persists ids in sorted order. Write failures are logged and dropped.
func (s *KVReadIDStore) Save(ctx context.Context, ids []string) {
	sorted := slices.Clone(ids)
	if sorted == nil {
		sorted = []string{}
	}
	slices.Sort(sorted)

	if err := s.store.Set(ctx, s.key, sorted); err != nil {
		s.log.Warn().Ctx(ctx).Err(err).Str("key", s.Key()).Int("count", len(sorted)).Msg("failed to save read ids")
		return
	}
	s.log.Debug().Ctx(ctx).Str("key", s.Key()).Int("count", len(sorted)).Msg("saved read ids")
}
