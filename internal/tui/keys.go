package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	refresh key.Binding
	info    key.Binding
	esc     key.Binding
	quit    key.Binding
}

var keys = keyMap{
	refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	info:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "version")),
	esc:     key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc", "close")),
	quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.refresh, k.info, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.esc}}
}
