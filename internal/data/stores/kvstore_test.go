package stores

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/colonyops/dashbell/internal/core/kv"
	"github.com/colonyops/dashbell/internal/data/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKVStore(t *testing.T) *KVStore {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return NewKVStore(database)
}

func TestKVStore_SetAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestKVStore(t)

	err := kv.Set(ctx, store, "notification-read-ids", []string{"1", "3"})
	require.NoError(t, err)

	var got []string
	err = kv.Get(ctx, store, "notification-read-ids", &got)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, got)
}

func TestKVStore_GetNotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestKVStore(t)

	_, err := store.GetRaw(ctx, "nonexistent")
	assert.ErrorIs(t, err, kv.ErrNotFound)
	assert.True(t, IsNotFoundError(err))
}

func TestKVStore_RawBytesArePreserved(t *testing.T) {
	ctx := context.Background()
	store := newTestKVStore(t)

	require.NoError(t, store.SetRaw(ctx, "key", []byte("not json")))

	entry, err := store.GetRaw(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "not json", string(entry.Value))

	var ids []string
	assert.Error(t, kv.Get(ctx, store, "key", &ids))
}

func TestKVStore_SetOverwriteKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	store := newTestKVStore(t)

	first := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	store.now = func() time.Time { return first }
	require.NoError(t, store.SetRaw(ctx, "key", []byte(`"first"`)))

	store.now = func() time.Time { return second }
	require.NoError(t, store.SetRaw(ctx, "key", []byte(`"second"`)))

	entry, err := store.GetRaw(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, `"second"`, string(entry.Value))
	assert.True(t, entry.CreatedAt.Equal(first), "created_at should not move on overwrite")
	assert.True(t, entry.UpdatedAt.Equal(second))
}

func TestKVStore_DeleteAndHas(t *testing.T) {
	ctx := context.Background()
	store := newTestKVStore(t)

	has, err := store.Has(ctx, "key")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, store.SetRaw(ctx, "key", []byte(`[]`)))
	has, err = store.Has(ctx, "key")
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, store.Delete(ctx, "key"))
	has, err = store.Has(ctx, "key")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestKVStore_ListKeys(t *testing.T) {
	ctx := context.Background()
	store := newTestKVStore(t)

	for _, key := range []string{"b", "a", "c"} {
		require.NoError(t, store.SetRaw(ctx, key, []byte(`1`)))
	}

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(sql.ErrNoRows))
	assert.True(t, IsNotFoundError(fmt.Errorf("wrapped: %w", kv.ErrNotFound)))
	assert.False(t, IsNotFoundError(fmt.Errorf("boom")))
}

func TestRecoverFromCorruption(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, db.FileName)
	require.NoError(t, os.WriteFile(dbPath, []byte("garbage"), 0o644))
	require.NoError(t, os.WriteFile(dbPath+"-wal", []byte("garbage"), 0o644))

	require.NoError(t, RecoverFromCorruption(dir))

	_, err := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err), "corrupt database should be moved aside")
	_, err = os.Stat(dbPath + "-wal")
	assert.True(t, os.IsNotExist(err), "wal file should be moved aside")

	matches, err := filepath.Glob(filepath.Join(dir, db.FileName+".corrupt.*"))
	require.NoError(t, err)
	assert.NotEmpty(t, matches)
}

func TestRecoverFromCorruption_MissingFile(t *testing.T) {
	assert.NoError(t, RecoverFromCorruption(t.TempDir()))
}
