package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

type KeyMap struct {
	Search   key.Binding
	Done     key.Binding
	Industry key.Binding
	Location key.Binding
	SortBy   key.Binding
	Order    key.Binding
	Prev     key.Binding
	Next     key.Binding
	View     key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Search, km.Industry, km.Location, km.SortBy, km.Order, km.Help, km.Quit}
}

func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Search, km.Done},
		{km.Industry, km.Location, km.Reset},
		{km.SortBy, km.Order, km.View},
		{km.Prev, km.Next},
		{km.Help, km.Quit},
	}
}

// *KeyMap implements help.KeyMap
var _ help.KeyMap = (*KeyMap)(nil)

var DefaultKeyMap = KeyMap{
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Done: key.NewBinding(
		key.WithKeys("enter", "esc"),
		key.WithHelp("enter/esc", "leave search"),
	),
	Industry: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "industry"),
	),
	Location: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "location"),
	),
	SortBy: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort by"),
	),
	Order: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "order"),
	),
	Prev: key.NewBinding(
		key.WithKeys("left", "p", "pgup"),
		key.WithHelp("←/p", "prev page"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "n", "pgdown"),
		key.WithHelp("→/n", "next page"),
	),
	View: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "table/cards"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset filters"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
