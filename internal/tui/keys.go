package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	nextLanguage key.Binding
	prevLanguage key.Binding
	generate     key.Binding
	optimize     key.Binding
	reset        key.Binding
	copyCode     key.Binding
	copyOptim    key.Binding
	quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		nextLanguage: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next language"),
		),
		prevLanguage: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev language"),
		),
		generate: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "generate"),
		),
		optimize: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "optimize"),
		),
		reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset"),
		),
		copyCode: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy code"),
		),
		copyOptim: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "copy optimized"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.generate, k.optimize, k.reset, k.nextLanguage, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.generate, k.optimize, k.reset},
		{k.nextLanguage, k.prevLanguage},
		{k.copyCode, k.copyOptim, k.quit},
	}
}
