package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a bar filled to percent (0-100) followed by the number.
func ProgressBar(percent, width int) string {
	if width < 5 {
		width = 5
	}
	percent = max(0, min(100, percent))
	filled := percent * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %3d%%", bar, percent)
}

// Panel frames lines with the current theme's border.
func Panel(lines []string) string {
	t := current
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
