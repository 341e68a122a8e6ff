package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ftahirops/rebootcheck/checks"
)

var (
	// Colors
	colorRed     = lipgloss.Color("#FF5555")
	colorYellow  = lipgloss.Color("#F1FA8C")
	colorGreen   = lipgloss.Color("#50FA7B")
	colorCyan    = lipgloss.Color("#8BE9FD")
	colorOrange  = lipgloss.Color("#FFB86C")
	colorWhite   = lipgloss.Color("#F8F8F2")
	colorGray    = lipgloss.Color("#6272A4")
	colorMagenta = lipgloss.Color("#FF79C6")

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)

	TitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	LabelStyle  = lipgloss.NewStyle().Foreground(colorGray)
	ValueStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	HeaderStyle = lipgloss.NewStyle().Foreground(colorMagenta).Bold(true)
	DimStyle    = lipgloss.NewStyle().Foreground(colorGray)

	okStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	warnStyle   = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	orangeStyle = lipgloss.NewStyle().Foreground(colorOrange).Bold(true)
	critStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

// ResultStyle colours a result by severity.
func ResultStyle(r checks.Result) lipgloss.Style {
	switch r {
	case checks.RestartSession:
		return warnStyle
	case checks.Reboot:
		return orangeStyle
	case checks.KernelUpdate:
		return critStyle
	default:
		return okStyle
	}
}

// Icon returns the status glyph for a result.
func Icon(r checks.Result) string {
	switch r {
	case checks.Nothing:
		return "✓"
	case checks.RestartSession:
		return "⚠"
	default:
		return "✗"
	}
}
