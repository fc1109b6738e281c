package doctor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/colonyops/dashbell/internal/core/kv"
)

// StorageCheck verifies the storage backend is reachable and the read-ID
// value decodes. With autofix, a corrupt value is reset to an empty list.
type StorageCheck struct {
	store   kv.KV
	backend string
	key     string
	autofix bool
}

// NewStorageCheck creates a new storage check. key is the fully qualified
// storage key.
func NewStorageCheck(store kv.KV, backend, key string, autofix bool) *StorageCheck {
	return &StorageCheck{store: store, backend: backend, key: key, autofix: autofix}
}

func (c *StorageCheck) Name() string {
	return "Storage"
}

func (c *StorageCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	keys, err := c.store.ListKeys(ctx)
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  c.backend,
			Status: StatusFail,
			Detail: fmt.Sprintf("unreachable: %v", err),
		})
		return result
	}
	result.Items = append(result.Items, CheckItem{
		Label:  c.backend,
		Status: StatusPass,
		Detail: fmt.Sprintf("%d key(s)", len(keys)),
	})

	entry, err := c.store.GetRaw(ctx, c.key)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		result.Items = append(result.Items, CheckItem{
			Label:  c.key,
			Status: StatusPass,
			Detail: "no read ids stored yet",
		})
		return result
	case err != nil:
		result.Items = append(result.Items, CheckItem{
			Label:  c.key,
			Status: StatusFail,
			Detail: fmt.Sprintf("read failed: %v", err),
		})
		return result
	}

	var ids []string
	if err := json.Unmarshal(entry.Value, &ids); err != nil {
		result.Items = append(result.Items, c.corrupt(ctx, err))
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:  c.key,
		Status: StatusPass,
		Detail: fmt.Sprintf("%d read id(s)", len(ids)),
	})
	return result
}

func (c *StorageCheck) corrupt(ctx context.Context, decodeErr error) CheckItem {
	if !c.autofix {
		return CheckItem{
			Label:   c.key,
			Status:  StatusWarn,
			Detail:  fmt.Sprintf("stored value is not a JSON string array: %v", decodeErr),
			Fixable: true,
		}
	}

	if err := c.store.SetRaw(ctx, c.key, []byte("[]")); err != nil {
		return CheckItem{
			Label:  c.key,
			Status: StatusFail,
			Detail: fmt.Sprintf("reset corrupt value: %v", err),
		}
	}
	return CheckItem{
		Label:  c.key,
		Status: StatusPass,
		Detail: "reset corrupt value to an empty list",
	}
}
