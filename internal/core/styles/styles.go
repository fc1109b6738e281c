// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"sort"

	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	// CLI styles.
	TextPrimaryBoldStyle    lipgloss.Style
	TextForegroundStyle     lipgloss.Style
	TextForegroundBoldStyle lipgloss.Style
	TextMutedStyle          lipgloss.Style
	TextSuccessStyle        lipgloss.Style
	TextWarningStyle        lipgloss.Style
	TextErrorStyle          lipgloss.Style
	TableHeaderStyle        lipgloss.Style

	// Bell panel styles.
	PanelStyle         lipgloss.Style
	PanelTitleStyle    lipgloss.Style
	BadgeStyle         lipgloss.Style
	UnreadDotStyle     lipgloss.Style
	ReadDotStyle       lipgloss.Style
	ItemTitleStyle     lipgloss.Style
	ItemTitleReadStyle lipgloss.Style
	ItemMessageStyle   lipgloss.Style
	ItemTimeStyle      lipgloss.Style
	SelectedStyle      lipgloss.Style
	EmptyStyle         lipgloss.Style
	StatusStyle        lipgloss.Style
)

// colorPool is used for deterministic color hashing of categories.
var colorPool []lipgloss.Color

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	TextPrimaryBoldStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	TextForegroundStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	TextForegroundBoldStyle = lipgloss.NewStyle().Foreground(p.Foreground).Bold(true)
	TextMutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	TextSuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	TextWarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	TextErrorStyle = lipgloss.NewStyle().Foreground(p.Error)
	TableHeaderStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(0, 1)
	PanelTitleStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Bold(true)
	BadgeStyle = lipgloss.NewStyle().
		Background(p.Error).
		Foreground(p.Background).
		Bold(true).
		Padding(0, 1)
	UnreadDotStyle = lipgloss.NewStyle().Foreground(p.Primary)
	ReadDotStyle = lipgloss.NewStyle().Foreground(p.Muted)
	ItemTitleStyle = lipgloss.NewStyle().Foreground(p.Foreground).Bold(true)
	ItemTitleReadStyle = lipgloss.NewStyle().Foreground(p.Muted)
	ItemMessageStyle = lipgloss.NewStyle().Foreground(p.Muted)
	ItemTimeStyle = lipgloss.NewStyle().Foreground(p.Muted).Italic(true)
	SelectedStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	EmptyStyle = lipgloss.NewStyle().Foreground(p.Muted).Italic(true)
	StatusStyle = lipgloss.NewStyle().Foreground(p.Success)

	colorPool = []lipgloss.Color{
		p.Primary,
		p.Secondary,
		p.Success,
		p.Warning,
		p.Error,
	}
}

// ColorForString returns a deterministic color for a given string.
// The same string always produces the same color.
func ColorForString(s string) lipgloss.Color {
	var hash uint32
	for _, c := range s {
		hash = hash*31 + uint32(c)
	}
	return colorPool[hash%uint32(len(colorPool))]
}

// CategoryStyle returns the style used to render a category label.
func CategoryStyle(category string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorForString(category))
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

func colorPtr(c lipgloss.Color) *string {
	if c == "" {
		return nil
	}
	s := string(c)
	return &s
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() ansi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig
	p := CurrentPalette

	fg := colorPtr(p.Foreground)
	primary := colorPtr(p.Primary)
	secondary := colorPtr(p.Secondary)
	muted := colorPtr(p.Muted)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = fg
	cfg.H1.BackgroundColor = colorPtr(p.Surface)
	cfg.H2.Color = primary
	cfg.H3.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Link.Color = secondary
	cfg.LinkText.Color = secondary

	cfg.Code.Color = secondary
	cfg.CodeBlock.Color = muted

	cfg.Strong.Color = primary

	return cfg
}
