package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rohitvarshney-web/schengen-slots/internal/model"
	"github.com/rohitvarshney-web/schengen-slots/internal/ui"
)

// cityItem adapts a centre to bubbles/list.Item
type cityItem struct {
	city model.CityAvailability
}

func (i cityItem) FilterValue() string { return i.city.Name }

// Custom delegate to control how cities render (single line)
type cityDelegate struct{}

func (d cityDelegate) Height() int                               { return 1 }
func (d cityDelegate) Spacing() int                              { return 0 }
func (d cityDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d cityDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(cityItem)
	fmt.Fprint(w, ui.CityLine(it.city, index == m.Index()))
}

func newCityList(s model.Summary, width, height int) list.Model {
	items := make([]list.Item, 0, len(s.Cities))
	for _, c := range s.Cities {
		items = append(items, cityItem{city: c})
	}
	l := list.New(items, cityDelegate{}, width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(len(items) > height)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}
