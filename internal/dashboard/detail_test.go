package dashboard

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitvarshney-web/schengen-slots/internal/model"
)

func clock() time.Time { return time.Date(2025, 2, 20, 9, 0, 0, 0, time.UTC) }

func sampleDetail() *Detail {
	s := model.BuildSummary("FR", map[string][]model.DateSlot{
		"Mumbai":    {{Date: date(2025, 3, 30), Count: 1}, {Date: date(2025, 4, 2), Count: 2}},
		"Bengaluru": {{Date: date(2025, 3, 5), Count: 3}},
	})
	return NewDetail(model.Country{Code: "FR", Name: "France"}, s, clock)
}

func TestDetail_InitialFocus(t *testing.T) {
	d := sampleDetail()
	c, ok := d.City()
	require.True(t, ok)
	assert.Equal(t, "Bengaluru", c.Name)
	assert.Equal(t, date(2025, 3, 5), d.Date())
	assert.Equal(t, date(2025, 3, 1), d.Month())
}

func TestDetail_CityNavigationWraps(t *testing.T) {
	d := sampleDetail()
	d.NextCity()
	c, _ := d.City()
	assert.Equal(t, "Mumbai", c.Name)
	assert.Equal(t, date(2025, 3, 30), d.Date())

	d.NextCity()
	assert.Equal(t, 0, d.CityIndex())
	d.PrevCity()
	assert.Equal(t, 1, d.CityIndex())

	assert.ErrorIs(t, d.SelectCity("Paris"), ErrUnknownCity)
	require.NoError(t, d.SelectCity("Bengaluru"))
	assert.Equal(t, 0, d.CityIndex())
}

func TestDetail_DateNavigationClampsAndMovesMonth(t *testing.T) {
	d := sampleDetail()
	require.NoError(t, d.SelectCity("Mumbai"))

	d.PrevDate()
	assert.Equal(t, date(2025, 3, 30), d.Date())

	d.NextDate()
	assert.Equal(t, date(2025, 4, 2), d.Date())
	assert.Equal(t, date(2025, 4, 1), d.Month())

	d.NextDate()
	assert.Equal(t, date(2025, 4, 2), d.Date())
}

func TestDetail_SelectDate(t *testing.T) {
	d := sampleDetail()
	assert.ErrorIs(t, d.SelectDate(date(2025, 3, 6)), ErrDateUnavailable)
	assert.Equal(t, date(2025, 3, 5), d.Date())

	require.NoError(t, d.SelectCity("Mumbai"))
	require.NoError(t, d.SelectDate(time.Date(2025, 4, 2, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, date(2025, 4, 2), d.Date())
}

func TestDetail_MonthPaging(t *testing.T) {
	d := sampleDetail()
	d.NextMonth()
	assert.Equal(t, date(2025, 4, 1), d.Month())
	d.PrevMonth()
	d.PrevMonth()
	assert.Equal(t, date(2025, 2, 1), d.Month())
	// focus does not move with the page
	assert.Equal(t, date(2025, 3, 5), d.Date())

	weeks := d.Grid()
	for _, w := range weeks {
		for _, c := range w {
			assert.False(t, c.Available)
		}
	}
}

func TestDetail_GridMarksFocus(t *testing.T) {
	d := sampleDetail()
	found := false
	for _, w := range d.Grid() {
		for _, c := range w {
			if c.Selected {
				found = true
				assert.True(t, c.Available)
				assert.Equal(t, 3, c.Count)
			}
		}
	}
	assert.True(t, found)
}

func TestDetail_EmptySummary(t *testing.T) {
	d := NewDetail(model.Country{Code: "IS"}, model.BuildSummary("IS", nil), clock)
	_, ok := d.City()
	assert.False(t, ok)
	assert.True(t, d.Date().IsZero())
	assert.Equal(t, date(2025, 2, 1), d.Month())

	d.NextCity()
	d.NextDate()
	_, err := d.Book()
	assert.ErrorIs(t, err, ErrNothingSelected)
}

func TestDetail_Book(t *testing.T) {
	d := sampleDetail()
	b, err := d.Book()
	require.NoError(t, err)
	assert.Equal(t, "FR", b.CountryCode)
	assert.Equal(t, "Bengaluru", b.City)
	assert.Equal(t, date(2025, 3, 5), b.Date)
	assert.Equal(t, clock(), b.RequestedAt)
	assert.NotEqual(t, uuid.Nil, b.Reference)
}
