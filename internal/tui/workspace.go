package tui

import (
	"strings"

	"codeberg.org/algopatterns/codeassist/internal/codeassist"
	"codeberg.org/algopatterns/codeassist/internal/workflow"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	if !m.ready {
		return "\n  loading..."
	}

	s := m.ctrl.Snapshot()

	var b strings.Builder

	// header
	header := lipgloss.JoinHorizontal(lipgloss.Left,
		titleStyle.Render(title),
		"  ",
		subtitleStyle.Render("generate and optimize code"),
	)
	b.WriteString(header)
	b.WriteString("\n\n")

	b.WriteString(languageSelector(s.Language))
	b.WriteString("\n")

	// problem statement
	b.WriteString(borderStyle.Width(m.width - 2).Render(m.input.View()))
	b.WriteString("\n")

	// status line
	b.WriteString(m.statusLine(s))
	b.WriteString("\n")

	// output
	b.WriteString(borderStyle.Width(m.width - 2).Render(m.output.View()))
	b.WriteString("\n")

	// only offer what the current state allows
	keys := m.keys
	keys.generate.SetEnabled(s.CanGenerate())
	keys.optimize.SetEnabled(s.CanOptimize())
	b.WriteString(m.help.View(keys))

	return b.String()
}

func (m *Model) statusLine(s workflow.State) string {
	if label := busyLabel(s.Phase); label != "" {
		return m.spinner.View() + " " + statusStyle.Render(label)
	}

	if msg := s.ErrorMessage(); msg != "" {
		return errorBannerStyle.Render(msg)
	}

	return statusStyle.Render(m.status)
}

// label shown next to the spinner while an operation is outstanding
func busyLabel(phase workflow.Phase) string {
	switch phase {
	case workflow.PhaseGenerating:
		return "Generating..."
	case workflow.PhaseOptimizing:
		return "Optimizing..."
	default:
		return ""
	}
}

func languageSelector(current codeassist.Language) string {
	langs := codeassist.SupportedLanguages()
	items := make([]string, 0, len(langs))

	for _, opt := range langs {
		if opt.Language == current {
			items = append(items, languageSelectedStyle.Render(opt.Label))
		} else {
			items = append(items, languageStyle.Render(opt.Label))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Left, items...)
}
