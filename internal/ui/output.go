package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// DisableColorUnlessTerminal drops colors when out is piped or redirected.
func DisableColorUnlessTerminal(out *os.File) {
	if !IsTerminal(out) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Success.Render("✔ "+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Error.Render("✖ "+msg))
}

func Note(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Muted.Render(msg))
}
