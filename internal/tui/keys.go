package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search  key.Binding
	Open    key.Binding
	Back    key.Binding
	Refresh key.Binding
	Quit    key.Binding

	NextCity  key.Binding
	PrevCity  key.Binding
	NextDate  key.Binding
	PrevDate  key.Binding
	NextMonth key.Binding
	PrevMonth key.Binding
	Book      key.Binding

	detail bool
}

func newKeyMap() keyMap {
	return keyMap{
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		NextCity:  key.NewBinding(key.WithKeys("tab", "down", "j"), key.WithHelp("tab", "next city")),
		PrevCity:  key.NewBinding(key.WithKeys("shift+tab", "up", "k"), key.WithHelp("shift+tab", "prev city")),
		NextDate:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next date")),
		PrevDate:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev date")),
		NextMonth: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next month")),
		PrevMonth: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev month")),
		Book:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "book")),
	}
}

// ShortHelp and FullHelp implement help.KeyMap for the current screen.
func (k keyMap) ShortHelp() []key.Binding {
	if k.detail {
		return []key.Binding{k.NextCity, k.PrevCity, k.NextDate, k.PrevDate, k.NextMonth, k.PrevMonth, k.Book, k.Refresh, k.Back, k.Quit}
	}
	return []key.Binding{k.Search, k.Open, k.Refresh, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
