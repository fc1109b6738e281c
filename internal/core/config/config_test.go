package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load("", dataDir)
	require.NoError(t, err)

	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "notification-read-ids", cfg.Storage.Key)
	assert.Empty(t, cfg.Storage.Profile)
	assert.Equal(t, 3, cfg.Display.Limit)
	assert.Equal(t, ThemeTokyoNight, cfg.TUI.Theme)
	assert.Equal(t, 4, cfg.Database.MaxOpenConns)
	assert.Empty(t, cfg.CatalogPath())
	assert.Empty(t, cfg.Categories())
	assert.Equal(t, filepath.Join(dataDir, "dashbell.log"), cfg.LogFile())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: redis
  profile: work
  redis:
    addr: redis.internal:6380
    db: 2
catalog:
  path: notifications.yaml
  categories: [system, alert]
display:
  limit: 5
tui:
  theme: gruvbox
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "work", cfg.Storage.Profile)
	assert.Equal(t, "notification-read-ids", cfg.Storage.Key, "unset key keeps default")
	assert.Equal(t, "redis.internal:6380", cfg.Storage.Redis.Addr)
	assert.Equal(t, "dashbell:", cfg.Storage.Redis.Prefix)
	assert.Equal(t, 2, cfg.Storage.Redis.DB)
	assert.Equal(t, 5, cfg.Display.Limit)
	assert.Equal(t, ThemeGruvbox, cfg.TUI.Theme)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "notifications.yaml"), cfg.CatalogPath())
	assert.Len(t, cfg.Categories(), 2)
}

func TestLoad_AbsoluteCatalogPath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "catalog.json")
	path := writeConfig(t, "catalog:\n  path: "+abs+"\n")

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.CatalogPath())
}

func TestLoad_ParseError(t *testing.T) {
	path := writeConfig(t, "storage: [not, a, map")

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown backend", "storage:\n  backend: s3\n", "storage.backend"},
		{"negative limit", "display:\n  limit: -1\n", "display.limit"},
		{"unknown theme", "tui:\n  theme: solarized\n", "tui.theme"},
		{"idle above open", "database:\n  max_open_conns: 1\n  max_idle_conns: 3\n", "max_idle_conns"},
		{"keybinding without action", "keybindings:\n  x:\n    help: nothing\n", "must have an action"},
		{"keybinding unknown action", "keybindings:\n  x:\n    action: delete\n", "invalid action"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_EmptyDataDir(t *testing.T) {
	_, err := Load("", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data directory")
}

func TestMergeKeybindings(t *testing.T) {
	path := writeConfig(t, `
keybindings:
  enter:
    action: read-all
    help: everything
  x:
    action: read
    help: read
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ActionReadAll, cfg.Keybindings["enter"].Action, "user overrides default")
	assert.Equal(t, ActionRead, cfg.Keybindings["x"].Action)
	assert.Equal(t, ActionReadAll, cfg.Keybindings["a"].Action, "defaults kept")
	assert.Equal(t, ActionRefresh, cfg.Keybindings["r"].Action)
}

func TestDefaultConfig_Keybindings(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ActionRead, cfg.Keybindings["enter"].Action)
	assert.Equal(t, ActionReadAll, cfg.Keybindings["a"].Action)
	assert.Equal(t, ActionRefresh, cfg.Keybindings["r"].Action)

	cfg.Keybindings["enter"] = Keybinding{Action: ActionRefresh}
	assert.Equal(t, ActionRead, DefaultConfig().Keybindings["enter"].Action, "defaults are copied")
}

func TestLoad_RejectsReservedKeybinding(t *testing.T) {
	for _, k := range []string{"j", "k", "q", "tab", "?"} {
		t.Run(k, func(t *testing.T) {
			path := writeConfig(t, fmt.Sprintf("keybindings:\n  %q:\n    action: read\n", k))

			_, err := Load(path, t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "reserved for navigation")
		})
	}
}
