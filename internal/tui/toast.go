package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultToastTTL   = 3 * time.Second
	defaultMaxToasts  = 3
	toastTickInterval = 100 * time.Millisecond
)

type toast struct {
	text      string
	remaining time.Duration
}

type toastTickMsg struct{}

// ToastController manages the lifecycle of status toasts.
// It handles push, eviction, and TTL countdown.
type ToastController struct {
	toasts  []toast
	ticking bool
}

func NewToastController() *ToastController {
	return &ToastController{}
}

// Push adds a toast. If the stack exceeds defaultMaxToasts, the oldest
// toast is evicted.
func (c *ToastController) Push(text string) {
	c.toasts = append(c.toasts, toast{text: text, remaining: defaultToastTTL})
	if len(c.toasts) > defaultMaxToasts {
		c.toasts = c.toasts[len(c.toasts)-defaultMaxToasts:]
	}
}

// Tick decrements the remaining TTL on all toasts by d and removes
// any that have expired.
func (c *ToastController) Tick(d time.Duration) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// HasToasts returns true if there are any active toasts.
func (c *ToastController) HasToasts() bool {
	return len(c.toasts) > 0
}

// Texts returns the active toast texts, oldest first.
func (c *ToastController) Texts() []string {
	out := make([]string, len(c.toasts))
	for i, t := range c.toasts {
		out[i] = t.text
	}
	return out
}

// StartTicking returns the tick command if the countdown is not running.
func (c *ToastController) StartTicking() tea.Cmd {
	if c.ticking || !c.HasToasts() {
		return nil
	}
	c.ticking = true
	return toastTick()
}

// HandleTick advances the countdown and returns the next tick command, or
// nil once every toast has expired.
func (c *ToastController) HandleTick() tea.Cmd {
	c.Tick(toastTickInterval)
	if !c.HasToasts() {
		c.ticking = false
		return nil
	}
	return toastTick()
}

func toastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(time.Time) tea.Msg {
		return toastTickMsg{}
	})
}
