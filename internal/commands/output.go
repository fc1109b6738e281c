package commands

import (
	"io"
	"os"

	"golang.org/x/term"
)

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func statusWord(isRead bool) string {
	if isRead {
		return "read"
	}
	return "unread"
}
