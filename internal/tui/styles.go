package tui

import (
	"codeberg.org/algopatterns/codeassist/internal/render"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(render.ColorWhite)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(render.ColorLightGray)

	languageStyle = lipgloss.NewStyle().
			Foreground(render.ColorGray).
			Padding(0, 1)

	languageSelectedStyle = lipgloss.NewStyle().
				Foreground(render.ColorWhite).
				Background(render.ColorPurple).
				Bold(true).
				Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(render.ColorGray)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(render.ColorPurple)

	statusStyle = lipgloss.NewStyle().
			Foreground(render.ColorGray).
			Italic(true)

	errorBannerStyle = lipgloss.NewStyle().
				Foreground(render.ColorWhite).
				Background(render.ColorRed).
				Bold(true).
				Padding(0, 1)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(render.ColorGray).
				Italic(true)
)

const title = "CODEASSIST"
