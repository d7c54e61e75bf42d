package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Color palette.
const (
	colorAccent  = lipgloss.Color("39")
	colorMuted   = lipgloss.Color("245")
	colorZebra   = lipgloss.Color("235")
	colorSelect  = lipgloss.Color("24")
	colorError   = lipgloss.Color("196")
	colorBorder  = lipgloss.Color("240")
	colorInkDull = lipgloss.Color("250")
)

// Sort carets shown next to the sorted header.
const (
	caretUp   = "▲"
	caretDown = "▼"
)

// Scrollbar glyphs.
const (
	scrollTrack = "│"
	scrollThumb = "┃"
)

//nolint:gochecknoglobals // Shared styles.
var (
	headerStyle        = lipgloss.NewStyle().Bold(true).Foreground(colorInkDull)
	focusedHeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colorAccent)
	selectedRowStyle   = lipgloss.NewStyle().Background(colorSelect).Foreground(lipgloss.Color("255"))
	zebraRowStyle      = lipgloss.NewStyle().Background(colorZebra)
	statusStyle        = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle         = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	scrollStyle        = lipgloss.NewStyle().Foreground(colorBorder)
	inspectorStyle     = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder).
				Padding(0, 1)
	inspectorLabelStyle = lipgloss.NewStyle().Foreground(colorMuted)
	inspectorTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
)

// fit truncates s to w cells with tail and pads it with spaces to exactly w.
func fit(s string, w int, tail string) string {
	if w <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > w {
		s = ansi.Truncate(s, w, tail)
	}
	return s + strings.Repeat(" ", max(w-ansi.StringWidth(s), 0))
}
