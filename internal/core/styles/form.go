package styles

import "github.com/charmbracelet/huh"

// FormTheme returns a huh theme derived from the active palette.
func FormTheme() *huh.Theme {
	p := CurrentPalette
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(p.Primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(p.Muted)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(p.Background).Background(p.Primary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(p.Foreground).Background(p.Surface)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(p.Error)

	t.Blurred = t.Focused
	return t
}
