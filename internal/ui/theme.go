package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme bundles styles, checkbox symbols and the panel border.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                 string
	Title, Muted, Accent, Success, Error lipgloss.Style
	Selected, Done                       lipgloss.Style
	BoxUnchecked, BoxChecked             string
	Border                               lipgloss.Border
	BorderColor                          lipgloss.TerminalColor
}

var current = classic()

func classic() Theme {
	return Theme{
		Name:         "classic",
		Title:        lipgloss.NewStyle().Bold(true),
		Muted:        lipgloss.NewStyle().Faint(true),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
		BoxUnchecked: "☐",
		BoxChecked:   "☑",
		Border:       lipgloss.RoundedBorder(),
		BorderColor:  lipgloss.Color("8"),
	}
}

// SetTheme switches the active theme. Unknown names select classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		t := classic()
		t.Name = "neon"
		t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
		t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		t.BoxUnchecked, t.BoxChecked = "◻", "◼"
		t.BorderColor = lipgloss.Color("13")
		current = t
	case "mono":
		lipgloss.SetColorProfile(termenv.Ascii)
		plain := lipgloss.NewStyle()
		current = Theme{
			Name:  "mono",
			Title: plain, Muted: plain, Accent: plain, Success: plain, Error: plain,
			Selected: plain, Done: plain,
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.NoColor{},
		}
	default:
		current = classic()
	}
}

// Current returns the active theme.
func Current() Theme { return current }
