// Package jsonfile implements kv.KV on top of a single JSON document on disk.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/colonyops/dashbell/internal/core/kv"
)

// FileName is the document created inside the data directory.
const FileName = "dashbell-kv.json"

// ErrCorrupt is returned when the document on disk cannot be decoded.
var ErrCorrupt = errors.New("kv document is corrupt")

// KVFile is the root JSON structure stored on disk.
type KVFile struct {
	Entries map[string]FileEntry `json:"entries"`
}

// FileEntry holds one value. Values are kept as strings so arbitrary,
// possibly invalid, JSON survives a round trip.
type FileEntry struct {
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// KVStore implements kv.KV using a JSON file for persistence.
type KVStore struct {
	path string
	mu   sync.RWMutex
	now  func() time.Time
}

var _ kv.KV = (*KVStore)(nil)

// NewKVStore creates a new JSON file KV store at the given path.
func NewKVStore(path string) *KVStore {
	return &KVStore{path: path, now: time.Now}
}

// Path returns the backing file path.
func (s *KVStore) Path() string {
	return s.path
}

// GetRaw returns the entry stored under key.
func (s *KVStore) GetRaw(_ context.Context, key string) (kv.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return kv.Entry{}, fmt.Errorf("kv get %q: %w", key, err)
	}

	entry, ok := file.Entries[key]
	if !ok {
		return kv.Entry{}, fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
	}

	return kv.Entry{
		Key:       key,
		Value:     json.RawMessage(entry.Value),
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}, nil
}

// SetRaw stores value under key and rewrites the file atomically.
func (s *KVStore) SetRaw(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}

	now := s.now()
	entry := FileEntry{Value: string(value), CreatedAt: now, UpdatedAt: now}
	if prev, ok := file.Entries[key]; ok {
		entry.CreatedAt = prev.CreatedAt
	}
	file.Entries[key] = entry

	if err := s.save(file); err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (s *KVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}

	if _, ok := file.Entries[key]; !ok {
		return nil
	}
	delete(file.Entries, key)

	if err := s.save(file); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// Has returns whether a key exists.
func (s *KVStore) Has(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return false, fmt.Errorf("kv has %q: %w", key, err)
	}

	_, ok := file.Entries[key]
	return ok, nil
}

// ListKeys returns all keys in sorted order.
func (s *KVStore) ListKeys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("kv list keys: %w", err)
	}

	keys := make([]string, 0, len(file.Entries))
	for k := range file.Entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// Check decodes the document without changing it. A document that cannot
// be decoded yields an error wrapping ErrCorrupt.
func (s *KVStore) Check() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := s.load()
	return err
}

// MoveAside renames the document to a timestamped ".corrupt" sibling so the
// next write starts from an empty document. It returns the backup path.
func (s *KVStore) MoveAside() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	backup := fmt.Sprintf("%s.corrupt.%s", s.path, s.now().Format("20060102-150405"))
	if err := os.Rename(s.path, backup); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("move aside %s: %w", s.path, err)
	}
	return backup, nil
}

// load reads the document from disk.
// Returns an empty document if the file doesn't exist or is empty.
func (s *KVStore) load() (KVFile, error) {
	file := KVFile{Entries: map[string]FileEntry{}}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return file, nil
		}
		return file, err
	}

	if len(data) == 0 {
		return file, nil
	}

	if err := json.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("decode %s: %w: %w", s.path, ErrCorrupt, err)
	}
	if file.Entries == nil {
		file.Entries = map[string]FileEntry{}
	}

	return file, nil
}

// save writes the document to disk atomically.
func (s *KVStore) save(file KVFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}
