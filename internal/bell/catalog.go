package bell

import (
	"fmt"
	"os"
	"time"

	"github.com/colonyops/dashbell/internal/core/config"
	"github.com/colonyops/dashbell/internal/core/notify"
)

// SourceBuiltin names the embedded seed catalog.
const SourceBuiltin = "built-in"

// Validator returns the notification validator configured by cfg.
func Validator(cfg *config.Config, now func() time.Time) notify.Validator {
	return notify.Validator{
		Categories: cfg.Categories(),
		Now:        now,
	}
}

// LoadCatalog loads the catalog file configured in cfg, or the built-in
// catalog when none is set. The second return value names the source.
func LoadCatalog(cfg *config.Config, now func() time.Time) (*notify.Catalog, string, error) {
	v := Validator(cfg, now)

	path := cfg.CatalogPath()
	if path == "" {
		catalog, err := notify.SeedCatalog(v)
		if err != nil {
			return nil, "", fmt.Errorf("load built-in catalog: %w", err)
		}
		return catalog, SourceBuiltin, nil
	}

	catalog, err := LoadCatalogFile(path, v)
	if err != nil {
		return nil, "", err
	}
	return catalog, path, nil
}

// LoadCatalogFile reads and validates a YAML or JSON catalog file.
func LoadCatalogFile(path string, v notify.Validator) (*notify.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	catalog, err := notify.LoadCatalog(f, v)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return catalog, nil
}
