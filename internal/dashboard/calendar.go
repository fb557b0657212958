package dashboard

import (
	"time"

	"github.com/rohitvarshney-web/schengen-slots/internal/model"
)

// Cell is one day square of the month grid. Blank cells pad the first and
// last week and have a zero Date.
type Cell struct {
	Date      time.Time
	Blank     bool
	Available bool
	Count     int
	Selected  bool
	Today     bool
}

// Week always holds seven cells, Monday first.
type Week [7]Cell

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// MonthGrid lays out month (any day in it) as weeks. available maps
// model.DateKey days to slot counts; selected and today may be zero.
func MonthGrid(month time.Time, available map[string]int, selected, today time.Time) []Week {
	start := MonthStart(month)
	end := start.AddDate(0, 1, 0)
	selected, today = model.Day(selected), model.Day(today)

	// Monday = 0
	lead := (int(start.Weekday()) + 6) % 7

	var weeks []Week
	var w Week
	col := 0
	for i := 0; i < lead; i++ {
		w[col] = Cell{Blank: true}
		col++
	}
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		n, ok := available[model.DateKey(d)]
		w[col] = Cell{
			Date:      d,
			Available: ok,
			Count:     n,
			Selected:  d.Equal(selected),
			Today:     d.Equal(today),
		}
		col++
		if col == 7 {
			weeks = append(weeks, w)
			w, col = Week{}, 0
		}
	}
	if col > 0 {
		for ; col < 7; col++ {
			w[col] = Cell{Blank: true}
		}
		weeks = append(weeks, w)
	}
	return weeks
}

// Weekdays are the grid column headers.
var Weekdays = [7]string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}
