package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/rohitvarshney-web/schengen-slots/internal/dashboard"
	"github.com/rohitvarshney-web/schengen-slots/internal/model"
	"github.com/rohitvarshney-web/schengen-slots/internal/slots"
	"github.com/rohitvarshney-web/schengen-slots/internal/ui"
)

// Provider is what the dashboard reads from. *slots.Provider implements it.
type Provider interface {
	Countries(ctx context.Context) (slots.CountriesResult, error)
	Summary(ctx context.Context, code string) (slots.SummaryResult, error)
	Refresh()
}

type screen int

const (
	screenList screen = iota
	screenDetail
)

const title = "Schengen appointments"

// ---------------------------------------------------
// messages
// ---------------------------------------------------

type countriesMsg struct {
	res slots.CountriesResult
	err error
}

type summaryMsg struct {
	code string
	res  slots.SummaryResult
	err  error
}

// Model is the Bubble Tea model of the dashboard.
type Model struct {
	provider Provider
	ctx      context.Context
	now      func() time.Time

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	search  textinput.Model
	table   table.Model
	cities  list.Model

	screen    screen
	loading   bool
	countries []model.Country
	visible   []model.Country
	advisory  string

	detail         *dashboard.Detail
	detailAdvisory string
	pending        string // country code whose slots are loading
	status         string
	err            error

	width, height int
}

// New builds the dashboard model. now may be nil.
func New(ctx context.Context, p Provider, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	m := Model{
		provider: p,
		ctx:      ctx,
		now:      now,
		keys:     newKeyMap(),
		help:     help.New(),
		loading:  true,
		width:    80,
		height:   24,
	}

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))

	// search box, shown above the table
	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.search.Placeholder = "search by country or code..."
	m.search.CharLimit = 40

	m.table = table.New(
		table.WithColumns(columns(m.width)),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	st.Selected = ui.Current().Selected
	m.table.SetStyles(st)
	return m
}

func columns(width int) []table.Column {
	name := max(width-4-6-17-7-16, 12)
	return []table.Column{
		{Title: ui.CountryHeaders[0], Width: 4},
		{Title: ui.CountryHeaders[1], Width: name},
		{Title: ui.CountryHeaders[2], Width: 6},
		{Title: ui.CountryHeaders[3], Width: 17},
		{Title: ui.CountryHeaders[4], Width: 7},
	}
}

func (m Model) tableHeight() int { return max(m.height-12, 3) }

// ---------------------------------------------------
// commands
// ---------------------------------------------------

func (m Model) loadCountries() tea.Cmd {
	ctx, p := m.ctx, m.provider
	return func() tea.Msg {
		res, err := p.Countries(ctx)
		return countriesMsg{res: res, err: err}
	}
}

func (m Model) loadSummary(code string) tea.Cmd {
	ctx, p := m.ctx, m.provider
	return func() tea.Msg {
		res, err := p.Summary(ctx, code)
		return summaryMsg{code: code, res: res, err: err}
	}
}

// ---------------------------------------------------
// Bubble Tea
// ---------------------------------------------------

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCountries())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetColumns(columns(m.width))
		m.table.SetHeight(m.tableHeight())
		m.help.Width = m.width
		if m.detail != nil {
			m.cities.SetSize(m.cityWidth(), m.cityHeight())
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading && m.pending == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case countriesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.countries = msg.res.Countries
		m.advisory = msg.res.Advisory
		m.applyFilter()
		return m, nil

	case summaryMsg:
		if msg.err != nil {
			m.err = msg.err
			m.pending = ""
			return m, nil
		}
		m.mergeSummary(msg.code, msg.res.Summary)
		if msg.code == m.pending {
			m.pending = ""
			c, _ := dashboard.Find(m.countries, msg.code)
			m.detail = dashboard.NewDetail(c, msg.res.Summary, m.now)
			m.detailAdvisory = msg.res.Advisory
			m.cities = newCityList(msg.res.Summary, m.cityWidth(), m.cityHeight())
		}
		return m, nil

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		if m.screen == screenDetail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.Blur()
		m.table.Focus()
		return m, nil
	case "esc":
		m.search.SetValue("")
		m.search.Blur()
		m.table.Focus()
		m.applyFilter()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.table.Blur()
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Back):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.applyFilter()
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.provider.Refresh()
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadCountries())
	case key.Matches(msg, m.keys.Open):
		c, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m.open(c)
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) open(c model.Country) (tea.Model, tea.Cmd) {
	m.screen = screenDetail
	m.keys.detail = true
	m.detail = nil
	m.detailAdvisory = ""
	m.status = ""
	m.pending = c.Code
	return m, tea.Batch(m.spinner.Tick, m.loadSummary(c.Code))
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.screen = screenList
		m.keys.detail = false
		m.detail = nil
		m.pending = ""
		m.status = ""
		return m, nil
	}
	if m.detail == nil {
		return m, nil
	}

	d := m.detail
	switch {
	case key.Matches(msg, m.keys.Refresh):
		// the whole cache is dropped, so the list reloads too
		m.provider.Refresh()
		m.loading = true
		next, cmd := m.open(d.Country)
		return next, tea.Batch(cmd, m.loadCountries())
	case key.Matches(msg, m.keys.NextCity):
		d.NextCity()
	case key.Matches(msg, m.keys.PrevCity):
		d.PrevCity()
	case key.Matches(msg, m.keys.NextDate):
		d.NextDate()
	case key.Matches(msg, m.keys.PrevDate):
		d.PrevDate()
	case key.Matches(msg, m.keys.NextMonth):
		d.NextMonth()
	case key.Matches(msg, m.keys.PrevMonth):
		d.PrevMonth()
	case key.Matches(msg, m.keys.Book):
		m.status = m.book()
	}
	m.cities.Select(d.CityIndex())
	return m, nil
}

// book logs a booking intent. Nothing is submitted.
func (m Model) book() string {
	b, err := m.detail.Book()
	if err != nil {
		return ui.Current().Error.Render(ui.Current().SymFail + " " + err.Error())
	}
	log.WithFields(log.Fields{
		"reference": b.Reference.String(),
		"country":   b.CountryCode,
		"city":      b.City,
		"date":      model.DateKey(b.Date),
	}).Info("booking requested (placeholder, not submitted)")
	return ui.Current().Success.Render(fmt.Sprintf("%s Booking request logged for %s, %s (ref %s)",
		ui.Current().SymOK, b.City, ui.FormatDate(b.Date), b.Reference.String()[:8]))
}

// ---------------------------------------------------
// state helpers
// ---------------------------------------------------

func (m *Model) applyFilter() {
	m.visible = dashboard.Filter(m.countries, m.search.Value())
	rows := make([]table.Row, 0, len(m.visible))
	for _, c := range m.visible {
		rows = append(rows, table.Row(ui.CountryRow(c)))
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *Model) mergeSummary(code string, s model.Summary) {
	for i, c := range m.countries {
		if c.Code == code {
			m.countries[i] = c.WithSummary(s)
		}
	}
	m.applyFilter()
}

func (m Model) selected() (model.Country, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return model.Country{}, false
	}
	return m.visible[i], true
}

func (m Model) cityWidth() int  { return max(m.width/3, 20) }
func (m Model) cityHeight() int { return max(m.height-16, 3) }
