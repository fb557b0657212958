package model

import (
	"sort"
	"time"
)

// DefaultCity names the bucket used when the upstream data has no city.
const DefaultCity = "All centres"

// DateSlot is one available day. Count 0 means the day was listed without a
// count; it is still an available day.
type DateSlot struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// Weight is the number of slots the day contributes to totals.
func (d DateSlot) Weight() int {
	if d.Count <= 0 {
		return 1
	}
	return d.Count
}

// CityAvailability holds the days offered by one application centre.
type CityAvailability struct {
	Name  string     `json:"name"`
	Dates []DateSlot `json:"dates"`
}

// Summary is the normalized availability of one destination country.
type Summary struct {
	CountryCode   string             `json:"countryCode"`
	Cities        []CityAvailability `json:"cities"`
	NextAvailable time.Time          `json:"nextAvailable"`
	TotalSlots    int                `json:"totalSlots"`
}

// Empty reports whether the summary has no available day at all.
func (s Summary) Empty() bool { return len(s.Cities) == 0 }

// City looks a centre up by name.
func (s Summary) City(name string) (CityAvailability, bool) {
	for _, c := range s.Cities {
		if c.Name == name {
			return c, true
		}
	}
	return CityAvailability{}, false
}

// Has reports whether the city offers the given day.
func (c CityAvailability) Has(day time.Time) (DateSlot, bool) {
	day = Day(day)
	for _, d := range c.Dates {
		if d.Date.Equal(day) {
			return d, true
		}
	}
	return DateSlot{}, false
}

// Day truncates t to a UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateKey formats a day the way it is keyed and shown everywhere.
func DateKey(t time.Time) string { return t.Format(DateLayout) }

// DateLayout is the wire and display format of a day.
const DateLayout = "2006-01-02"

// BuildSummary turns raw per-city days into a Summary: days are truncated,
// merged per day, sorted; empty cities are dropped and cities sorted by name.
func BuildSummary(code string, raw map[string][]DateSlot) Summary {
	s := Summary{CountryCode: NormalizeCode(code), Cities: []CityAvailability{}}
	for name, days := range raw {
		merged := map[time.Time]int{}
		for _, d := range days {
			if d.Date.IsZero() {
				continue
			}
			k := Day(d.Date)
			merged[k] += max(d.Count, 0)
		}
		if len(merged) == 0 {
			continue
		}
		city := CityAvailability{Name: name, Dates: make([]DateSlot, 0, len(merged))}
		for day, n := range merged {
			city.Dates = append(city.Dates, DateSlot{Date: day, Count: n})
		}
		sort.Slice(city.Dates, func(i, j int) bool { return city.Dates[i].Date.Before(city.Dates[j].Date) })
		s.Cities = append(s.Cities, city)
	}
	sort.Slice(s.Cities, func(i, j int) bool { return s.Cities[i].Name < s.Cities[j].Name })

	for _, c := range s.Cities {
		for _, d := range c.Dates {
			s.TotalSlots += d.Weight()
		}
		if first := c.Dates[0].Date; s.NextAvailable.IsZero() || first.Before(s.NextAvailable) {
			s.NextAvailable = first
		}
	}
	return s
}
