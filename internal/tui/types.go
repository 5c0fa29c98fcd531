package tui

import (
	"context"

	"codeberg.org/algopatterns/codeassist/internal/render"
	"codeberg.org/algopatterns/codeassist/internal/workflow"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
)

// main TUI application model
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	ctrl     *workflow.Controller
	renderer *render.Renderer
	style    string
	clip     func(string) error

	keys    keyMap
	help    help.Model
	input   textarea.Model
	output  viewport.Model
	spinner spinner.Model

	width  int
	height int
	ready  bool
	status string
}

type Option func(*Model)

// sent when a started operation has completed
type OperationDoneMsg struct {
	Operation workflow.Operation
	Err       error
}

// sent after a copy to the clipboard was attempted
type CopiedMsg struct {
	What string
	Err  error
}
