// Package tui implements the interactive bell panel.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/colonyops/dashbell/internal/core/config"
	"github.com/colonyops/dashbell/internal/core/logging"
	"github.com/colonyops/dashbell/internal/core/notify"
)

type readMarkedMsg struct {
	id    string
	title string
}

type allReadMarkedMsg struct {
	marked int
}

type refreshedMsg struct {
	added int
}

// Opts configures the bell panel.
type Opts struct {
	Center      *notify.Center
	Keybindings map[string]config.Keybinding
	Logger      *zerolog.Logger
}

// Model is the bubbletea model for the bell panel.
type Model struct {
	ctx    context.Context
	center *notify.Center
	keys   KeyMap
	help   help.Model
	toasts *ToastController
	log    zerolog.Logger

	cursor  int
	showAll bool
	width   int
	height  int
}

// New creates the bell panel model.
func New(ctx context.Context, opts Opts) Model {
	log := logging.Component("tui")
	if opts.Logger != nil {
		log = *opts.Logger
	}

	bindings := opts.Keybindings
	if bindings == nil {
		bindings = config.DefaultConfig().Keybindings
	}

	return Model{
		ctx:    ctx,
		center: opts.Center,
		keys:   NewKeyMap(bindings),
		help:   help.New(),
		toasts: NewToastController(),
		log:    log,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// items returns the notifications currently listed: the recent display
// slice by default, the whole catalog when toggled.
func (m Model) items() []notify.Notification {
	if m.showAll {
		return notify.TopByRecency(m.center.Notifications(), m.center.Catalog().Len())
	}
	return m.center.DisplayNotifications()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case readMarkedMsg:
		m.toasts.Push(fmt.Sprintf("Marked %q as read", msg.title))
		return m, m.toasts.StartTicking()

	case allReadMarkedMsg:
		if msg.marked == 0 {
			m.toasts.Push("Nothing to mark, all caught up")
		} else {
			m.toasts.Push(fmt.Sprintf("Marked %d notifications as read", msg.marked))
		}
		return m, m.toasts.StartTicking()

	case refreshedMsg:
		m.cursor = m.clampCursor(len(m.items()))
		if msg.added > 0 {
			m.toasts.Push(fmt.Sprintf("Picked up %d read notifications", msg.added))
			return m, m.toasts.StartTicking()
		}
		return m, nil

	case toastTickMsg:
		return m, m.toasts.HandleTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.items()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		m.showAll = !m.showAll
		m.cursor = 0

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Read):
		if len(items) == 0 {
			return m, nil
		}
		return m, m.markRead(items[m.clampCursor(len(items))])

	case key.Matches(msg, m.keys.ReadAll):
		return m, m.markAllRead()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()
	}

	return m, nil
}

func (m Model) clampCursor(n int) int {
	if m.cursor >= n {
		return max(n-1, 0)
	}
	return m.cursor
}

func (m Model) markRead(n notify.Notification) tea.Cmd {
	ctx, center := m.ctx, m.center
	return func() tea.Msg {
		center.MarkAsRead(ctx, n.ID)
		return readMarkedMsg{id: n.ID, title: n.Title}
	}
}

func (m Model) markAllRead() tea.Cmd {
	ctx, center := m.ctx, m.center
	return func() tea.Msg {
		unread := center.UnreadCount()
		center.MarkAllAsRead(ctx)
		return allReadMarkedMsg{marked: unread}
	}
}

func (m Model) refresh() tea.Cmd {
	ctx, center, log := m.ctx, m.center, m.log
	return func() tea.Msg {
		added := center.Refresh(ctx)
		log.Debug().Int("added", added).Msg("refresh requested")
		return refreshedMsg{added: added}
	}
}
