package notify

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadState_Initialize(t *testing.T) {
	ctx := context.Background()
	storage := &recordingStore{initial: []string{"2", "1"}}
	state := NewReadState(storage)

	require.NoError(t, state.Initialize(ctx))
	assert.True(t, state.Has("1"))
	assert.True(t, state.Has("2"))
	assert.False(t, state.Has("3"))
	assert.Equal(t, []string{"1", "2"}, state.IDs())
	assert.Equal(t, 2, state.Len())

	assert.ErrorIs(t, state.Initialize(ctx), ErrAlreadyInitialized)
	assert.Empty(t, storage.saves, "initialize must not write")
}

func TestReadState_MarkAsRead(t *testing.T) {
	ctx := context.Background()
	storage := &recordingStore{}
	state := NewReadState(storage)
	require.NoError(t, state.Initialize(ctx))

	state.MarkAsRead(ctx, "3")
	assert.True(t, state.Has("3"))
	assert.Equal(t, []string{"3"}, storage.last())

	state.MarkAsRead(ctx, "1")
	assert.Equal(t, []string{"1", "3"}, storage.last())
}

func TestReadState_MarkAsReadIdempotentStillPersists(t *testing.T) {
	ctx := context.Background()
	storage := &recordingStore{}
	state := NewReadState(storage)
	require.NoError(t, state.Initialize(ctx))

	state.MarkAsRead(ctx, "1")
	state.MarkAsRead(ctx, "1")

	assert.Equal(t, 1, state.Len())
	assert.Len(t, storage.saves, 2)
}

func TestReadState_MarkAll(t *testing.T) {
	ctx := context.Background()
	storage := &recordingStore{initial: []string{"9"}}
	state := NewReadState(storage)
	require.NoError(t, state.Initialize(ctx))

	state.MarkAll(ctx, []string{"2", "1", "2"})

	assert.Equal(t, []string{"1", "2", "9"}, state.IDs())
	require.Len(t, storage.saves, 1)
	assert.Equal(t, []string{"1", "2", "9"}, storage.last())
}

func TestReadState_MarkBeforeInitializeKeepsStoredIDs(t *testing.T) {
	ctx := context.Background()
	storage := &recordingStore{initial: []string{"4"}}
	state := NewReadState(storage)

	state.MarkAsRead(ctx, "1")

	assert.Equal(t, []string{"1", "4"}, storage.last())
	assert.ErrorIs(t, state.Initialize(ctx), ErrAlreadyInitialized)
}

func TestReadState_FreshStoreFromStorage(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestReadIDStore(t)

	first := NewReadState(store)
	require.NoError(t, first.Initialize(ctx))
	first.MarkAsRead(ctx, "1")
	first.MarkAsRead(ctx, "5")

	second := NewReadState(store)
	require.NoError(t, second.Initialize(ctx))
	assert.Equal(t, []string{"1", "5"}, second.IDs())
}

func TestReadState_ConcurrentMarks(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestReadIDStore(t)
	state := NewReadState(store)
	require.NoError(t, state.Initialize(ctx))

	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			state.MarkAsRead(ctx, id)
			_ = state.Has(id)
		}()
	}
	wg.Wait()

	assert.Equal(t, ids, state.IDs())
	assert.Equal(t, ids, store.Load(ctx))
}

func TestReadState_ReloadUnionsWithStorage(t *testing.T) {
	ctx := context.Background()
	storage := &recordingStore{initial: []string{"1"}}
	state := NewReadState(storage)
	require.NoError(t, state.Initialize(ctx))
	state.MarkAsRead(ctx, "local")

	storage.mu.Lock()
	storage.initial = []string{"1", "2", "3"}
	storage.mu.Unlock()

	assert.Equal(t, 2, state.Reload(ctx))
	assert.Equal(t, []string{"1", "2", "3", "local"}, state.IDs(), "reload never drops local ids")
	assert.Equal(t, 0, state.Reload(ctx))
}

func TestReadState_SetIsACopy(t *testing.T) {
	ctx := context.Background()
	state := NewReadState(&recordingStore{initial: []string{"1"}})
	require.NoError(t, state.Initialize(ctx))

	set := state.Set()
	state.MarkAsRead(ctx, "2")

	assert.True(t, set.Has("1"))
	assert.False(t, set.Has("2"))
	assert.True(t, state.Set().Has("2"))
}
