package tui

import (
	"errors"

	"codeberg.org/algopatterns/codeassist/internal/workflow"
	tea "github.com/charmbracelet/bubbletea"
)

// waits for a started operation off the update loop
func waitCmd(p *workflow.Pending) tea.Cmd {
	return func() tea.Msg {
		err := p.Wait()
		return OperationDoneMsg{Operation: p.Operation(), Err: err}
	}
}

func copyCmd(write func(string) error, what, text string) tea.Cmd {
	return func() tea.Msg {
		if text == "" {
			return CopiedMsg{What: what, Err: errors.New("nothing to copy")}
		}

		return CopiedMsg{What: what, Err: write(text)}
	}
}
