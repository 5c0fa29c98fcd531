package tui

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/algopatterns/codeassist/internal/codeassist"
	"codeberg.org/algopatterns/codeassist/internal/logger"
	"codeberg.org/algopatterns/codeassist/internal/render"
	"codeberg.org/algopatterns/codeassist/internal/workflow"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	inputHeight  = 5
	chromeHeight = inputHeight + 11
)

// sets the glamour style used for code panels
func WithStyle(style string) Option {
	return func(m *Model) {
		m.style = style
	}
}

// replaces the system clipboard
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		m.clip = write
	}
}

// creates the TUI model driving ctrl
func NewApp(ctx context.Context, ctrl *workflow.Controller, opts ...Option) *Model {
	ctx, cancel := context.WithCancel(ctx)

	ta := textarea.New()
	ta.Placeholder = "describe the problem you want solved..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(inputHeight)
	ta.Focus()

	vp := viewport.New(80, 20)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = spinnerStyle

	m := &Model{
		ctx:     ctx,
		cancel:  cancel,
		ctrl:    ctrl,
		style:   render.StyleDark,
		clip:    clipboard.WriteAll,
		keys:    defaultKeyMap(),
		help:    help.New(),
		input:   ta,
		output:  vp,
		spinner: sp,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.input.SetValue(ctrl.Snapshot().ProblemStatement)
	m.setWidth(80)

	return m
}

// runs the TUI until the user quits or ctx is done
func Run(ctx context.Context, ctrl *workflow.Controller, opts ...Option) error {
	app := NewApp(ctx, ctrl, opts...)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	_, err := p.Run()
	app.cancel()

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running tui: %w", err)
	}

	return nil
}

func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.setWidth(msg.Width)
		m.output.Height = max(3, msg.Height-chromeHeight)
		m.refresh()
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		// stop ticking once nothing is outstanding
		if !m.ctrl.Snapshot().Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case OperationDoneMsg:
		if errors.Is(msg.Err, workflow.ErrSuperseded) {
			return m, nil
		}
		m.status = ""
		m.refresh()
		m.output.GotoTop()
		return m, nil

	case CopiedMsg:
		if msg.Err != nil {
			logger.Warn("clipboard write failed", "error", msg.Err)
			m.status = "could not copy " + msg.What
		} else {
			m.status = "copied " + msg.What
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.nextLanguage):
		m.cycleLanguage(1)
		return m, nil

	case key.Matches(msg, m.keys.prevLanguage):
		m.cycleLanguage(-1)
		return m, nil

	case key.Matches(msg, m.keys.generate):
		return m, m.startGenerate()

	case key.Matches(msg, m.keys.optimize):
		return m, m.startOptimize()

	case key.Matches(msg, m.keys.reset):
		m.ctrl.Reset()
		m.input.Reset()
		m.status = ""
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.copyCode):
		return m, copyCmd(m.clip, "generated code", m.ctrl.Snapshot().GeneratedCode)

	case key.Matches(msg, m.keys.copyOptim):
		var code string
		if opt := m.ctrl.Snapshot().Optimization; opt != nil {
			code = opt.OptimizedCode
		}
		return m, copyCmd(m.clip, "optimized code", code)

	case key.Matches(msg, m.output.KeyMap.PageUp, m.output.KeyMap.PageDown):
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetProblemStatement(m.input.Value())

	return m, cmd
}

func (m *Model) startGenerate() tea.Cmd {
	m.ctrl.SetProblemStatement(m.input.Value())

	s := m.ctrl.Snapshot()
	if s.Busy() {
		return nil
	}

	p, err := m.ctrl.StartGenerate(m.ctx, s.Language, m.input.Value())
	m.status = ""
	m.refresh()
	if err != nil {
		return nil
	}

	return tea.Batch(m.spinner.Tick, waitCmd(p))
}

func (m *Model) startOptimize() tea.Cmd {
	s := m.ctrl.Snapshot()
	if s.Busy() {
		return nil
	}

	p, err := m.ctrl.StartOptimize(m.ctx, s.Language, s.GeneratedCode)
	m.status = ""
	m.refresh()
	if err != nil {
		return nil
	}

	return tea.Batch(m.spinner.Tick, waitCmd(p))
}

func (m *Model) cycleLanguage(step int) {
	langs := codeassist.SupportedLanguages()
	current := m.ctrl.Snapshot().Language

	idx := 0
	for i, opt := range langs {
		if opt.Language == current {
			idx = i
			break
		}
	}

	idx = (idx + step + len(langs)) % len(langs)
	if err := m.ctrl.SetLanguage(langs[idx].Language); err != nil {
		logger.Warn("failed to set language", "error", err)
	}

	m.refresh()
}

// resizes the widgets and the markdown renderer to width columns
func (m *Model) setWidth(width int) {
	inner := max(20, width-4)

	m.input.SetWidth(inner)
	m.output.Width = inner
	m.help.Width = width

	r, err := render.New(inner-2, m.style)
	if err != nil {
		logger.Warn("failed to create renderer", "error", err)
		return
	}

	m.renderer = r
}

// redraws the output panel from the current snapshot
func (m *Model) refresh() {
	if m.renderer == nil {
		return
	}

	s := m.ctrl.Snapshot()

	content := m.renderer.Results(s)
	if content == "" {
		content = placeholderStyle.Render("generated code will appear here. press ctrl+g to generate.")
	}

	m.output.SetContent(content)
}
