package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/colonyops/dashbell/internal/core/kv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// fiveEntryCatalog has ids "1".."5" with "4" and "5" read by default.
func fiveEntryCatalog(t *testing.T) *Catalog {
	t.Helper()
	entries := []Notification{
		{ID: "1", Title: "New user", Message: "m1", Timestamp: testNow.Add(-5 * time.Minute), Category: CategoryUser},
		{ID: "2", Title: "Report", Message: "m2", Timestamp: testNow.Add(-1 * time.Hour), Category: CategoryReport},
		{ID: "3", Title: "Alert", Message: "m3", Timestamp: testNow.Add(-2 * time.Hour), Category: CategoryAlert},
		{ID: "4", Title: "Maintenance", Message: "m4", Timestamp: testNow.Add(-26 * time.Hour), IsRead: true, Category: CategorySystem},
		{ID: "5", Title: "Info", Message: "m5", Timestamp: testNow.Add(-50 * time.Hour), IsRead: true, Category: CategoryInfo},
	}
	c, err := NewCatalog(entries)
	require.NoError(t, err)
	return c
}

func newTestReadIDStore(t *testing.T) (*KVReadIDStore, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	return NewKVReadIDStore(mem, "", "", zerolog.Nop()), mem
}

// recordingStore is an in-memory ReadIDStore that records every save.
type recordingStore struct {
	mu      sync.Mutex
	initial []string
	saves   [][]string
}

func (r *recordingStore) Load(context.Context) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.initial...)
}

func (r *recordingStore) Save(_ context.Context, ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, append([]string(nil), ids...))
}

func (r *recordingStore) last() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.saves) == 0 {
		return nil
	}
	return r.saves[len(r.saves)-1]
}
