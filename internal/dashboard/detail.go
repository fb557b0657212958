package dashboard

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rohitvarshney-web/schengen-slots/internal/model"
)

var (
	ErrNothingSelected = errors.New("no city and date selected")
	ErrDateUnavailable = errors.New("date is not available for this city")
	ErrUnknownCity     = errors.New("unknown city")
)

// Detail is the drill-down state for one country. The zero value is not
// usable; build it with NewDetail.
type Detail struct {
	Country model.Country
	Summary model.Summary

	city  int
	date  time.Time
	month time.Time
	now   func() time.Time
}

// NewDetail focuses the first city and its first date. now is used for the
// initial month when there is nothing to show, and for booking timestamps.
func NewDetail(c model.Country, s model.Summary, now func() time.Time) *Detail {
	if now == nil {
		now = time.Now
	}
	d := &Detail{Country: c, Summary: s, now: now}
	d.focusCity(0)
	return d
}

func (d *Detail) focusCity(i int) {
	d.city = i
	d.date = time.Time{}
	if c, ok := d.City(); ok && len(c.Dates) > 0 {
		d.date = c.Dates[0].Date
		d.month = MonthStart(d.date)
		return
	}
	d.month = MonthStart(d.now())
}

// City is the focused centre.
func (d *Detail) City() (model.CityAvailability, bool) {
	if d.city < 0 || d.city >= len(d.Summary.Cities) {
		return model.CityAvailability{}, false
	}
	return d.Summary.Cities[d.city], true
}

func (d *Detail) CityIndex() int { return d.city }

// Date is the focused day, zero when the city has none.
func (d *Detail) Date() time.Time { return d.date }

// Month is the first day of the displayed month.
func (d *Detail) Month() time.Time { return d.month }

func (d *Detail) NextCity() { d.stepCity(1) }
func (d *Detail) PrevCity() { d.stepCity(-1) }

func (d *Detail) stepCity(delta int) {
	n := len(d.Summary.Cities)
	if n == 0 {
		return
	}
	d.focusCity(((d.city+delta)%n + n) % n)
}

// SelectCity focuses a centre by name.
func (d *Detail) SelectCity(name string) error {
	for i, c := range d.Summary.Cities {
		if c.Name == name {
			d.focusCity(i)
			return nil
		}
	}
	return ErrUnknownCity
}

func (d *Detail) NextDate() { d.stepDate(1) }
func (d *Detail) PrevDate() { d.stepDate(-1) }

// stepDate moves among the focused city's days, stopping at either end.
func (d *Detail) stepDate(delta int) {
	c, ok := d.City()
	if !ok || len(c.Dates) == 0 {
		return
	}
	i := 0
	for j, ds := range c.Dates {
		if ds.Date.Equal(d.date) {
			i = j
			break
		}
	}
	i = min(max(i+delta, 0), len(c.Dates)-1)
	d.date = c.Dates[i].Date
	d.month = MonthStart(d.date)
}

// SelectDate focuses day if the focused city offers it.
func (d *Detail) SelectDate(day time.Time) error {
	c, ok := d.City()
	if !ok {
		return ErrNothingSelected
	}
	ds, ok := c.Has(day)
	if !ok {
		return ErrDateUnavailable
	}
	d.date = ds.Date
	d.month = MonthStart(ds.Date)
	return nil
}

func (d *Detail) NextMonth() { d.month = d.month.AddDate(0, 1, 0) }
func (d *Detail) PrevMonth() { d.month = d.month.AddDate(0, -1, 0) }

// SetMonth shows the month containing t without moving the focused date.
func (d *Detail) SetMonth(t time.Time) { d.month = MonthStart(t) }

// Grid is the displayed month of the focused city.
func (d *Detail) Grid() []Week {
	avail := map[string]int{}
	if c, ok := d.City(); ok {
		for _, ds := range c.Dates {
			avail[model.DateKey(ds.Date)] = ds.Count
		}
	}
	return MonthGrid(d.month, avail, d.date, d.now())
}

// Book builds the placeholder booking for the focused city and date.
// Nothing is submitted; callers log the result.
func (d *Detail) Book() (model.Booking, error) {
	c, ok := d.City()
	if !ok || d.date.IsZero() {
		return model.Booking{}, ErrNothingSelected
	}
	return model.Booking{
		Reference:   uuid.New(),
		CountryCode: d.Country.Code,
		City:        c.Name,
		Date:        d.date,
		RequestedAt: d.now(),
	}, nil
}
