package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rohitvarshney-web/schengen-slots/internal/dashboard"
	"github.com/rohitvarshney-web/schengen-slots/internal/ui"
)

func (m Model) View() string {
	var content string
	if m.screen == screenDetail {
		content = m.detailView()
	} else {
		content = m.listView()
	}
	return ui.Panel(content)
}

func (m Model) listView() string {
	t := ui.Current()
	stats := dashboard.ComputeStats(m.countries)

	lines := []string{
		ui.Header(title, stats),
		t.Muted.Render(ui.ProgressBar(stats.Available, stats.Total, 28) + " with open slots"),
	}
	if m.advisory != "" {
		lines = append(lines, t.Advisory.Render(t.SymWarn+" "+m.advisory))
	}
	if m.err != nil {
		lines = append(lines, t.Error.Render(t.SymFail+" "+m.err.Error()))
	}
	lines = append(lines, "")

	if m.loading {
		lines = append(lines, m.spinner.View()+" Loading countries...")
	} else {
		if m.search.Focused() || m.search.Value() != "" {
			lines = append(lines, m.search.View())
		}
		if len(m.visible) == 0 {
			lines = append(lines, t.Muted.Render("no countries match"))
		} else {
			lines = append(lines, m.table.View())
		}
	}
	lines = append(lines, "", m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

func (m Model) detailView() string {
	t := ui.Current()
	if m.detail == nil {
		name := m.pending
		if c, ok := dashboard.Find(m.countries, m.pending); ok {
			name = c.Name
		}
		lines := []string{m.spinner.View() + " Loading slots for " + name + "..."}
		if m.err != nil {
			lines = append(lines, t.Error.Render(t.SymFail+" "+m.err.Error()))
		}
		return strings.Join(append(lines, "", m.help.View(m.keys)), "\n")
	}

	d := m.detail
	c := d.Country
	lines := []string{
		t.Title.Render(strings.TrimSpace(c.Flag + " " + c.Name + " (" + c.Code + ")")),
		t.Accent.Render("Next available ") + ui.FormatDate(d.Summary.NextAvailable) +
			"   " + t.Accent.Render("Slots ") + ui.SlotsLabel(c.WithSummary(d.Summary)),
	}
	if m.detailAdvisory != "" {
		lines = append(lines, t.Advisory.Render(t.SymWarn+" "+m.detailAdvisory))
	}
	lines = append(lines, "")

	if d.Summary.Empty() {
		lines = append(lines, t.Muted.Render("No appointment slots found."))
	} else {
		city, _ := d.City()
		left := lipgloss.JoinVertical(lipgloss.Left,
			t.Accent.Render("Cities"),
			m.cities.View(),
		)
		middle := lipgloss.JoinVertical(lipgloss.Left,
			t.Accent.Render("Dates in "+city.Name),
			ui.DateList(city, d.Date()),
		)
		right := ui.Calendar(d.Month(), d.Grid())
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", middle, "    ", right))
	}
	if m.status != "" {
		lines = append(lines, "", m.status)
	}
	lines = append(lines, "", m.help.View(m.keys))
	return strings.Join(lines, "\n")
}
