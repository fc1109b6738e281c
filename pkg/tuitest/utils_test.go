package tuitest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	in := "\x1b[1mbold\x1b[0m   \nplain  \n\n"
	assert.Equal(t, "bold\nplain", StripANSI(in))
}

func TestKeyMessages(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want string
	}{
		{"rune", KeyPress('a'), "a"},
		{"string", KeyPressString("ab"), "ab"},
		{"down", KeyDown(), "down"},
		{"up", KeyUp(), "up"},
		{"enter", KeyEnter(), "enter"},
		{"tab", KeyTab(), "tab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.msg.String())
		})
	}
}
