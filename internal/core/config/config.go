// Package config handles configuration loading and validation for dashbell.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/colonyops/dashbell/internal/core/notify"
	"gopkg.in/yaml.v3"
)

// Storage backends for the read-state key.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// TUI color themes.
const (
	ThemeTokyoNight = "tokyo-night"
	ThemeGruvbox    = "gruvbox"
)

// Built-in action names for TUI keybindings.
const (
	ActionRead    = "read"
	ActionReadAll = "read-all"
	ActionRefresh = "refresh"
)

// defaultKeybindings provides built-in keybindings that users can override.
var defaultKeybindings = map[string]Keybinding{
	"enter": {Action: ActionRead, Help: "mark read"},
	"a":     {Action: ActionReadAll, Help: "mark all read"},
	"r":     {Action: ActionRefresh, Help: "refresh"},
}

// ReservedKeys are the fixed TUI navigation keys. They cannot be rebound.
var ReservedKeys = []string{"up", "k", "down", "j", "tab", "?", "q", "esc", "ctrl+c"}

// Config holds the application configuration.
type Config struct {
	Storage     StorageConfig         `yaml:"storage"`
	Database    DatabaseConfig        `yaml:"database"`
	Catalog     CatalogConfig         `yaml:"catalog"`
	Display     DisplayConfig         `yaml:"display"`
	TUI         TUIConfig             `yaml:"tui"`
	Keybindings map[string]Keybinding `yaml:"keybindings"`
	DataDir     string                `yaml:"-"` // set by caller, not from config file
	ConfigDir   string                `yaml:"-"` // directory of the loaded config file
}

// StorageConfig selects where read IDs are persisted.
type StorageConfig struct {
	Backend string      `yaml:"backend"` // sqlite, file, memory or redis
	Key     string      `yaml:"key"`     // storage key for the read ID list
	Profile string      `yaml:"profile"` // optional key namespace
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig holds connection settings for the redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// DatabaseConfig holds SQLite connection pool settings.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// CatalogConfig controls where notifications come from.
type CatalogConfig struct {
	// Path to a YAML or JSON catalog. Empty uses the built-in catalog.
	// Relative paths resolve against the config file directory.
	Path string `yaml:"path"`
	// Categories restricts accepted categories. Empty accepts any.
	Categories []string `yaml:"categories"`
}

// DisplayConfig controls the bell panel.
type DisplayConfig struct {
	Limit int `yaml:"limit"`
}

// TUIConfig holds TUI appearance settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// Keybinding maps a key to a built-in TUI action.
type Keybinding struct {
	Action string `yaml:"action"` // built-in action name (read, read-all, refresh)
	Help   string `yaml:"help"`   // help text shown in TUI
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Key:     notify.DefaultStorageKey,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "dashbell:",
			},
		},
		Database: DatabaseConfig{
			MaxOpenConns: 4,
			MaxIdleConns: 2,
			BusyTimeout:  5000,
		},
		Display: DisplayConfig{
			Limit: notify.DefaultDisplayLimit,
		},
		TUI: TUIConfig{
			Theme: ThemeTokyoNight,
		},
		Keybindings: mergeKeybindings(defaultKeybindings, nil),
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
		cfg.ConfigDir = filepath.Dir(configPath)
	}
	cfg.DataDir = dataDir

	// Merge user keybindings into defaults (user config overrides defaults)
	cfg.Keybindings = mergeKeybindings(defaultKeybindings, cfg.Keybindings)

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Storage.Key == "" {
		c.Storage.Key = defaults.Storage.Key
	}
	if c.Storage.Redis.Addr == "" {
		c.Storage.Redis.Addr = defaults.Storage.Redis.Addr
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
	if c.Display.Limit == 0 {
		c.Display.Limit = defaults.Display.Limit
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// mergeKeybindings merges user keybindings into defaults.
// User keybindings override defaults for the same key.
func mergeKeybindings(defaults, user map[string]Keybinding) map[string]Keybinding {
	result := make(map[string]Keybinding, len(defaults)+len(user))

	// Copy defaults first
	for k, v := range defaults {
		result[k] = v
	}

	// Override with user config
	for k, v := range user {
		result[k] = v
	}

	return result
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if !isValidBackend(c.Storage.Backend) {
		return fmt.Errorf("storage.backend %q is not one of sqlite, file, memory, redis", c.Storage.Backend)
	}

	if c.Storage.Key == "" {
		return fmt.Errorf("storage.key cannot be empty")
	}

	if c.Storage.Backend == BackendRedis && c.Storage.Redis.DB < 0 {
		return fmt.Errorf("storage.redis.db must not be negative")
	}

	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database.max_open_conns must be at least 1")
	}

	if c.Database.MaxIdleConns < 0 || c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns must be between 0 and max_open_conns")
	}

	if c.Database.BusyTimeout < 0 {
		return fmt.Errorf("database.busy_timeout must not be negative")
	}

	if c.Display.Limit < 1 {
		return fmt.Errorf("display.limit must be at least 1")
	}

	if !isValidTheme(c.TUI.Theme) {
		return fmt.Errorf("tui.theme %q is not one of %s, %s", c.TUI.Theme, ThemeTokyoNight, ThemeGruvbox)
	}

	for key, kb := range c.Keybindings {
		if slices.Contains(ReservedKeys, key) {
			return fmt.Errorf("keybinding %q is reserved for navigation", key)
		}
		if kb.Action == "" {
			return fmt.Errorf("keybinding %q must have an action", key)
		}
		if !isValidAction(kb.Action) {
			return fmt.Errorf("keybinding %q has invalid action %q", key, kb.Action)
		}
	}

	return nil
}

// CatalogPath returns the catalog file path resolved against the config
// directory, or empty when the built-in catalog is used.
func (c *Config) CatalogPath() string {
	if c.Catalog.Path == "" {
		return ""
	}
	if filepath.IsAbs(c.Catalog.Path) || c.ConfigDir == "" {
		return c.Catalog.Path
	}
	return filepath.Join(c.ConfigDir, c.Catalog.Path)
}

// Categories returns the configured category allow-list.
func (c *Config) Categories() []notify.Category {
	out := make([]notify.Category, len(c.Catalog.Categories))
	for i, name := range c.Catalog.Categories {
		out[i] = notify.Category(name)
	}
	return out
}

// LogFile returns the default path of the JSON log file.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "dashbell.log")
}

func isValidBackend(backend string) bool {
	switch backend {
	case BackendSQLite, BackendFile, BackendMemory, BackendRedis:
		return true
	default:
		return false
	}
}

func isValidTheme(theme string) bool {
	switch theme {
	case ThemeTokyoNight, ThemeGruvbox:
		return true
	default:
		return false
	}
}

func isValidAction(action string) bool {
	switch action {
	case ActionRead, ActionReadAll, ActionRefresh:
		return true
	default:
		return false
	}
}
