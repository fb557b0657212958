package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rohitvarshney-web/schengen-slots/internal/dashboard"
	"github.com/rohitvarshney-web/schengen-slots/internal/model"
)

// FormatDate is how a day is shown in tables and lists.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("Mon 02 Jan 2006")
}

// SlotsLabel shows a row's slot count, "?" until it is known.
func SlotsLabel(c model.Country) string {
	if !c.SlotsKnown {
		return "?"
	}
	return strconv.Itoa(c.SlotCount)
}

// CountryRow is the cell text of one list row, in CountryHeaders order.
func CountryRow(c model.Country) []string {
	return []string{c.Flag, c.Name, c.Code, FormatDate(c.NextAvailable), SlotsLabel(c)}
}

var CountryHeaders = []string{"", "Country", "Code", "Next available", "Slots"}

// Header is the title line with counts and availability share.
func Header(title string, s dashboard.Stats) string {
	t := current
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		t.Title.Render(title),
		t.Success.Render(t.SymSlot), s.Available,
		t.Pending.Render("slots"), s.Slots,
		t.Accent.Render("Total"), s.Total,
	)
}

// CountryTable renders the list view for non-interactive output. A
// positive width fits the table to it; zero keeps its natural width.
func CountryTable(countries []model.Country, width int) string {
	if len(countries) == 0 {
		return current.Muted.Render("no countries match")
	}
	rows := make([][]string, 0, len(countries))
	for _, c := range countries {
		rows = append(rows, CountryRow(c))
	}
	t := table.New().
		Border(current.Border).
		BorderStyle(lipgloss.NewStyle().Foreground(current.BorderColor)).
		Headers(CountryHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			st := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return st.Inherit(current.Title)
			}
			if col == 4 && rows[row][4] != "?" && rows[row][4] != "0" {
				return st.Inherit(current.Available)
			}
			return st
		})
	if width > 0 {
		t = t.Width(width)
	}
	return t.String()
}

// DateList renders the days of one city, marking the focused one.
func DateList(city model.CityAvailability, focused time.Time) string {
	if len(city.Dates) == 0 {
		return current.Muted.Render("no available dates")
	}
	lines := make([]string, 0, len(city.Dates))
	for _, d := range city.Dates {
		count := "slots open"
		if d.Count > 0 {
			count = fmt.Sprintf("%d slot%s", d.Count, plural(d.Count))
		}
		line := fmt.Sprintf("%s  %s", FormatDate(d.Date), current.Muted.Render(count))
		if d.Date.Equal(focused) {
			line = current.Selected.Render("> "+FormatDate(d.Date)) + "  " + count
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Calendar renders a month grid produced by dashboard.MonthGrid.
func Calendar(month time.Time, weeks []dashboard.Week) string {
	var b strings.Builder
	title := month.Format("January 2006")
	b.WriteString(lipgloss.PlaceHorizontal(7*3, lipgloss.Center, current.Title.Render(title)))
	b.WriteString("\n")
	for _, wd := range dashboard.Weekdays {
		b.WriteString(current.Muted.Render(fmt.Sprintf("%-3s", wd)))
	}
	for _, w := range weeks {
		b.WriteString("\n")
		for _, c := range w {
			b.WriteString(cell(c))
		}
	}
	return b.String()
}

func cell(c dashboard.Cell) string {
	if c.Blank {
		return "   "
	}
	txt := fmt.Sprintf("%2d", c.Date.Day())
	switch {
	case c.Selected:
		txt = current.Selected.Render(txt)
	case c.Available:
		txt = current.Available.Render(txt)
	case c.Today:
		txt = current.Today.Render(txt)
	default:
		txt = current.Muted.Render(txt)
	}
	return txt + " "
}

// CityLine is one entry of the city list.
func CityLine(c model.CityAvailability, focused bool) string {
	n := 0
	for _, d := range c.Dates {
		n += d.Weight()
	}
	text := fmt.Sprintf("%s (%d)", c.Name, n)
	if focused {
		return current.Selected.Render("> " + text)
	}
	return "  " + text
}

// Detail renders the whole detail view for non-interactive output.
func Detail(d *dashboard.Detail, advisory string) string {
	var lines []string
	title := strings.TrimSpace(fmt.Sprintf("%s %s (%s)", d.Country.Flag, d.Country.Name, d.Country.Code))
	lines = append(lines, current.Title.Render(title))
	lines = append(lines, fmt.Sprintf("%s %s   %s %d",
		current.Accent.Render("Next available"), FormatDate(d.Summary.NextAvailable),
		current.Accent.Render("Slots"), d.Summary.TotalSlots))
	if advisory != "" {
		lines = append(lines, current.Advisory.Render(current.SymWarn+" "+advisory))
	}
	lines = append(lines, "")

	if d.Summary.Empty() {
		lines = append(lines, current.Muted.Render("No appointment slots found."))
		return PanelLines(lines)
	}

	cities := make([]string, 0, len(d.Summary.Cities))
	for i, c := range d.Summary.Cities {
		cities = append(cities, CityLine(c, i == d.CityIndex()))
	}
	city, _ := d.City()
	left := lipgloss.JoinVertical(lipgloss.Left,
		current.Accent.Render("Cities"), strings.Join(cities, "\n"), "",
		current.Accent.Render("Dates in "+city.Name), DateList(city, d.Date()))
	right := Calendar(d.Month(), d.Grid())
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))
	return PanelLines(lines)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
