package render

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	ColorWhite     = lipgloss.Color("#FFFFFF")
	ColorLightGray = lipgloss.Color("#CCCCCC")
	ColorGray      = lipgloss.Color("#888888")
	ColorPurple    = lipgloss.Color("#8524a6")
	ColorRed       = lipgloss.Color("#FF5555")
)

var (
	HeadingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			MarginTop(1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)
)
