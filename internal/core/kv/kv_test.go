package kv_test

import (
	"context"
	"testing"

	"github.com/colonyops/dashbell/internal/core/kv"
	"github.com/colonyops/dashbell/internal/data/db"
	"github.com/colonyops/dashbell/internal/data/stores"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends returns every KV implementation that lives in-process.
func backends(t *testing.T) map[string]kv.KV {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	return map[string]kv.KV{
		"sqlite": stores.NewKVStore(database),
		"memory": kv.NewMemory(),
	}
}

func TestTypedKV_SetAndGet(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			typed := kv.Scoped[[]string](store, "test")

			require.NoError(t, typed.Set(ctx, "ids", []string{"1", "3"}))

			got, err := typed.Get(ctx, "ids")
			require.NoError(t, err)
			assert.Equal(t, []string{"1", "3"}, got)
		})
	}
}

func TestTypedKV_ScopedPrefix(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			// Two scoped stores with different namespaces
			work := kv.Scoped[int](store, "work")
			home := kv.Scoped[int](store, "home")

			require.NoError(t, work.Set(ctx, "count", 10))
			require.NoError(t, home.Set(ctx, "count", 20))

			w, err := work.Get(ctx, "count")
			require.NoError(t, err)
			assert.Equal(t, 10, w)

			h, err := home.Get(ctx, "count")
			require.NoError(t, err)
			assert.Equal(t, 20, h)

			keys, err := store.ListKeys(ctx)
			require.NoError(t, err)
			assert.Contains(t, keys, "work:count")
			assert.Contains(t, keys, "home:count")
		})
	}
}

func TestTypedKV_EmptyNamespace(t *testing.T) {
	store := kv.NewMemory()
	typed := kv.Scoped[string](store, "")

	assert.Equal(t, "notification-read-ids", typed.Key("notification-read-ids"))
	require.NoError(t, typed.Set(context.Background(), "plain", "v"))

	has, err := store.Has(context.Background(), "plain")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestTypedKV_Delete(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			typed := kv.Scoped[string](store, "ns")

			require.NoError(t, typed.Set(ctx, "key", "val"))
			require.NoError(t, typed.Delete(ctx, "key"))

			has, err := typed.Has(ctx, "key")
			require.NoError(t, err)
			assert.False(t, has)
		})
	}
}

func TestTypedKV_NotFound(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			typed := kv.Scoped[[]string](store, "ns")

			_, err := typed.Get(context.Background(), "missing")
			assert.ErrorIs(t, err, kv.ErrNotFound)
		})
	}
}

func TestTypedKV_CorruptValue(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.SetRaw(ctx, "ns:ids", []byte("not json")))

			typed := kv.Scoped[[]string](store, "ns")
			_, err := typed.Get(ctx, "ids")
			require.Error(t, err)
			assert.NotErrorIs(t, err, kv.ErrNotFound)
			assert.Contains(t, err.Error(), "unmarshal")
		})
	}
}

func TestTypedKV_StructValue(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			type Prefs struct {
				Theme string `json:"theme"`
				Limit int    `json:"limit"`
			}

			typed := kv.Scoped[Prefs](store, "prefs")
			require.NoError(t, typed.Set(ctx, "tui", Prefs{Theme: "gruvbox", Limit: 5}))

			got, err := typed.Get(ctx, "tui")
			require.NoError(t, err)
			assert.Equal(t, "gruvbox", got.Theme)
			assert.Equal(t, 5, got.Limit)
		})
	}
}

func TestMemory_KeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()

	require.NoError(t, store.SetRaw(ctx, "k", []byte(`"a"`)))
	first, err := store.GetRaw(ctx, "k")
	require.NoError(t, err)

	require.NoError(t, store.SetRaw(ctx, "k", []byte(`"b"`)))
	second, err := store.GetRaw(ctx, "k")
	require.NoError(t, err)

	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.JSONEq(t, `"b"`, string(second.Value))
}

func TestMemory_GetRawReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.SetRaw(ctx, "k", []byte(`["1"]`)))

	entry, err := store.GetRaw(ctx, "k")
	require.NoError(t, err)
	entry.Value[2] = '9'

	again, err := store.GetRaw(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `["1"]`, string(again.Value))
}

func TestMemory_ListKeysSorted(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	for _, k := range []string{"c", "a", "b"} {
		require.NoError(t, store.SetRaw(ctx, k, []byte(`1`)))
	}

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}
