package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"

	"github.com/colonyops/dashbell/internal/core/config"
)

// KeyMap holds the bell panel key bindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Read    key.Binding
	ReadAll key.Binding
	Refresh key.Binding
	Toggle  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// NewKeyMap builds the key map. Navigation keys are fixed; action keys come
// from the configured keybindings.
func NewKeyMap(bindings map[string]config.Keybinding) KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Read:    actionBinding(bindings, config.ActionRead, "mark read"),
		ReadAll: actionBinding(bindings, config.ActionReadAll, "mark all read"),
		Refresh: actionBinding(bindings, config.ActionRefresh, "refresh"),
		Toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "recent/all"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// actionBinding collects every key bound to action. The help text of the
// first key (sorted) wins, falling back to defaultHelp.
func actionBinding(bindings map[string]config.Keybinding, action, defaultHelp string) key.Binding {
	var keys []string
	for k, kb := range bindings {
		if kb.Action == action {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}

	help := bindings[keys[0]].Help
	if help == "" {
		help = defaultHelp
	}

	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], help),
	)
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Read, k.ReadAll, k.Toggle, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Read, k.ReadAll, k.Refresh},
		{k.Help, k.Quit},
	}
}
