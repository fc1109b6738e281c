package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/dashbell/internal/core/notify"
	"github.com/colonyops/dashbell/internal/core/styles"
)

const (
	defaultPanelWidth = 60
	messagePreviewLen = 80
)

func (m Model) View() string {
	width := m.width
	if width <= 0 || width > defaultPanelWidth+4 {
		width = defaultPanelWidth
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	items := m.items()
	if len(items) == 0 {
		b.WriteString(styles.EmptyStyle.Render("No notifications"))
		b.WriteString("\n")
	} else {
		cursor := m.clampCursor(len(items))
		for i, n := range items {
			b.WriteString(m.renderItem(n, i == cursor))
			b.WriteString("\n")
		}
	}

	for _, text := range m.toasts.Texts() {
		b.WriteString("\n")
		b.WriteString(styles.StatusStyle.Render(styles.IconCheck + " " + text))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return styles.PanelStyle.Width(width).Render(b.String())
}

func (m Model) renderHeader() string {
	title := styles.PanelTitleStyle.Render(styles.IconBell + " Notifications")

	label, show := m.center.BadgeDisplay()
	var right string
	if show {
		right = styles.BadgeStyle.Render(label)
	} else {
		right = styles.TextMutedStyle.Render("All caught up")
	}

	scope := "recent"
	if m.showAll {
		scope = "all"
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		title, " ", right, " ", styles.TextMutedStyle.Render("("+scope+")"),
	)
}

func (m Model) renderItem(n notify.Notification, selected bool) string {
	marker := "  "
	if selected {
		marker = styles.SelectedStyle.Render(styles.IconSelected) + " "
	}

	dot := styles.ReadDotStyle.Render(styles.IconRead)
	title := styles.ItemTitleReadStyle.Render(n.Title)
	if !n.IsRead {
		dot = styles.UnreadDotStyle.Render(styles.IconUnread)
		title = styles.ItemTitleStyle.Render(n.Title)
	}

	meta := styles.CategoryStyle(string(n.Category)).Render(string(n.Category)) +
		styles.TextMutedStyle.Render(" · ") +
		styles.ItemTimeStyle.Render(notify.FormatRelativeTime(n.Timestamp, m.center.Now()))

	line := marker + dot + " " + title + "  " + meta
	preview := "    " + styles.ItemMessageStyle.Render(notify.Preview(strings.Join(strings.Fields(n.Message), " "), messagePreviewLen))

	return line + "\n" + preview
}
