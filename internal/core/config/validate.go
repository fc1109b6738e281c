package config

import (
	"fmt"
	"net"
	"os"

	"github.com/colonyops/dashbell/internal/core/validate"
	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// file accessibility and storage settings. The configPath argument specifies
// the config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateStorage(),
		c.validateCategories(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Storage.Backend == BackendMemory {
		warnings = append(warnings, ValidationWarning{
			Category: "Storage",
			Item:     "backend",
			Message:  "memory backend does not persist read state between runs",
		})
	}

	if c.Storage.Backend != BackendRedis && c.Storage.Redis.Password != "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Storage",
			Item:     "redis.password",
			Message:  fmt.Sprintf("redis settings are ignored by the %s backend", c.Storage.Backend),
		})
	}

	if len(c.Catalog.Categories) > 0 && c.Catalog.Path == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Catalog",
			Item:     "categories",
			Message:  "category allow-list also applies to the built-in catalog",
		})
	}

	return warnings
}

// validateFileAccess checks config file, data directory, and catalog file.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("catalog.path", c.CatalogPath(), isReadableFile),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// isReadableFile validates that a path, when set, is an existing regular file.
func isReadableFile(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	return nil
}

func (c *Config) validateStorage() error {
	var errs criterio.FieldErrorsBuilder

	if err := validate.StorageKey(c.Storage.Key); err != nil {
		errs = errs.Append("storage.key", err)
	}

	if c.Storage.Profile != "" {
		if err := validate.StorageKey(c.Storage.Profile); err != nil {
			errs = errs.Append("storage.profile", err)
		}
	}

	if c.Storage.Backend == BackendRedis {
		if _, _, err := net.SplitHostPort(c.Storage.Redis.Addr); err != nil {
			errs = errs.Append("storage.redis.addr", fmt.Errorf("invalid address %q: %w", c.Storage.Redis.Addr, err))
		}
	}

	return errs.ToError()
}

func (c *Config) validateCategories() error {
	var errs criterio.FieldErrorsBuilder
	seen := make(map[string]bool, len(c.Catalog.Categories))

	for i, name := range c.Catalog.Categories {
		field := fmt.Sprintf("catalog.categories[%d]", i)
		if err := validate.Category(name, nil); err != nil {
			errs = errs.Append(field, err)
			continue
		}
		if seen[name] {
			errs = errs.Append(field, fmt.Errorf("duplicate category %q", name))
			continue
		}
		seen[name] = true
	}

	return errs.ToError()
}
