package slots

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rohitvarshney-web/schengen-slots/internal/model"
)

// The upstream API has no stable schema. Every lookup below tries a list of
// field names and takes the first one present.
var (
	envelopeKeys = []string{"data", "result", "response"}
	listKeys     = []string{"data", "countries", "items", "results", "result"}

	codeKeys  = []string{"code", "countryCode", "country_code", "iso2", "isoCode", "iso", "id"}
	nameKeys  = []string{"name", "countryName", "country_name", "displayName", "title"}
	flagKeys  = []string{"flag", "emoji", "flagEmoji"}
	nextKeys  = []string{"nextAvailableDate", "next_available_date", "earliestDate", "earliestAvailableDate", "nextSlot", "firstAvailableDate"}
	countKeys = []string{"slotsCount", "slotCount", "availableSlots", "totalSlots", "slots", "count"}

	cityMapKeys  = []string{"citiesWiseSlots", "cityWiseSlots", "citiesWise", "cityWise", "cities_slots"}
	cityListKeys = []string{"cities", "centres", "centers", "vacs", "locations"}
	cityNameKeys = []string{"city", "cityName", "name", "centre", "centreName", "center", "centerName", "location"}
	cityDateKeys = []string{"dates", "availableDates", "slots", "availability", "days"}
	flatSlotKeys = []string{"slots", "availableSlots", "appointments"}
	flatDateKeys = []string{"dates", "availableDates"}
	dateKeys     = []string{"date", "day", "slotDate", "appointmentDate", "start", "startTime", "datetime"}
	dayCountKeys = []string{"count", "slots", "available", "availableSlots", "slotCount"}
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
}

func decode(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return v, nil
}

// ParseCountries normalizes a countries document. A well-formed document
// with no recognizable records yields an empty slice.
func ParseCountries(body []byte) ([]model.Country, error) {
	doc, err := decode(body)
	if err != nil {
		return nil, err
	}
	return countriesFrom(doc), nil
}

func countriesFrom(doc any) []model.Country {
	out := []model.Country{}
	seen := map[string]bool{}
	add := func(c model.Country, ok bool) {
		if !ok || seen[c.Code] {
			return
		}
		seen[c.Code] = true
		out = append(out, c)
	}

	switch v := doc.(type) {
	case []any:
		for _, rec := range v {
			add(countryFrom(rec, ""))
		}
	case map[string]any:
		if inner, ok := first(v, listKeys...); ok && isContainer(inner) {
			return countriesFrom(inner)
		}
		// keyed by code: {"FR": {...}, "DE": {...}}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, isRec := v[k].(map[string]any); isRec {
				add(countryFrom(v[k], k))
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func countryFrom(rec any, keyCode string) (model.Country, bool) {
	if s, ok := rec.(string); ok {
		code := model.NormalizeCode(s)
		return model.Country{Code: code, Name: code}, code != ""
	}
	m, ok := rec.(map[string]any)
	if !ok {
		return model.Country{}, false
	}

	c := model.Country{Code: model.NormalizeCode(str(m, codeKeys...))}
	if c.Code == "" {
		c.Code = model.NormalizeCode(keyCode)
	}
	if c.Code == "" {
		return model.Country{}, false
	}
	c.Name = strings.TrimSpace(str(m, nameKeys...))
	if c.Name == "" {
		c.Name = c.Code
	}
	c.Flag = str(m, flagKeys...)
	if v, ok := first(m, nextKeys...); ok {
		if t, ok := parseDate(v); ok {
			c.NextAvailable = t
		}
	}
	if v, ok := first(m, countKeys...); ok {
		if n, ok := count(v); ok {
			c.SlotCount, c.SlotsKnown = n, true
		}
	}
	return c, true
}

// ParseSlots extracts a per-city summary from a slots document. When no
// known layout matches, the summary is empty.
func ParseSlots(code string, body []byte) (model.Summary, error) {
	doc, err := decode(body)
	if err != nil {
		return model.Summary{}, err
	}
	return model.BuildSummary(code, citiesFrom(doc)), nil
}

func citiesFrom(doc any) map[string][]model.DateSlot {
	raw := map[string][]model.DateSlot{}

	m, ok := doc.(map[string]any)
	if !ok {
		if list, isList := doc.([]any); isList {
			collectFlat(raw, list)
		}
		return raw
	}

	// 1. envelopes
	for _, k := range envelopeKeys {
		if inner, ok := m[k]; ok {
			if got := citiesFrom(inner); len(got) > 0 {
				return got
			}
		}
	}

	// 2. {city: dates}
	if v, ok := first(m, cityMapKeys...); ok {
		if cm, ok := v.(map[string]any); ok {
			for city, entry := range cm {
				var dates any = entry
				if em, ok := entry.(map[string]any); ok {
					if v, found := first(em, cityDateKeys...); found {
						dates = v
					}
					// otherwise em itself is a {date: count} map
				}
				raw[cityName(city)] = append(raw[cityName(city)], dateSlots(dates)...)
			}
			if len(raw) > 0 {
				return raw
			}
		}
	}

	// 3. [{city, dates}]
	if v, ok := first(m, cityListKeys...); ok {
		if list, ok := v.([]any); ok {
			for _, e := range list {
				em, ok := e.(map[string]any)
				if !ok {
					continue
				}
				dates, _ := first(em, cityDateKeys...)
				name := cityName(str(em, cityNameKeys...))
				raw[name] = append(raw[name], dateSlots(dates)...)
			}
			if len(raw) > 0 {
				return raw
			}
		}
	}

	// 4. [{date, city}]
	if v, ok := first(m, flatSlotKeys...); ok {
		if list, ok := v.([]any); ok {
			collectFlat(raw, list)
			if len(raw) > 0 {
				return raw
			}
		}
	}

	// 5. [date]
	if v, ok := first(m, flatDateKeys...); ok {
		if ds := dateSlots(v); len(ds) > 0 {
			raw[model.DefaultCity] = ds
		}
	}
	return raw
}

func collectFlat(raw map[string][]model.DateSlot, list []any) {
	for _, e := range list {
		ds := dateSlots([]any{e})
		if len(ds) == 0 {
			continue
		}
		name := model.DefaultCity
		if em, ok := e.(map[string]any); ok {
			name = cityName(str(em, cityNameKeys...))
		}
		raw[name] = append(raw[name], ds...)
	}
}

func cityName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.DefaultCity
	}
	return s
}

// dateSlots reads a list of dates, or a {date: count} map.
func dateSlots(v any) []model.DateSlot {
	var out []model.DateSlot
	switch x := v.(type) {
	case []any:
		for _, e := range x {
			if d, ok := dateSlot(e); ok {
				out = append(out, d)
			}
		}
	case map[string]any:
		for k, n := range x {
			t, ok := parseDate(k)
			if !ok {
				continue
			}
			c, _ := count(n)
			out = append(out, model.DateSlot{Date: t, Count: c})
		}
	case string:
		if d, ok := dateSlot(x); ok {
			out = append(out, d)
		}
	}
	return out
}

func dateSlot(e any) (model.DateSlot, bool) {
	switch x := e.(type) {
	case string:
		t, ok := parseDate(x)
		return model.DateSlot{Date: t}, ok
	case map[string]any:
		v, ok := first(x, dateKeys...)
		if !ok {
			return model.DateSlot{}, false
		}
		t, ok := parseDate(v)
		if !ok {
			return model.DateSlot{}, false
		}
		d := model.DateSlot{Date: t}
		if n, ok := first(x, dayCountKeys...); ok {
			d.Count, _ = count(n)
		}
		return d, true
	}
	return model.DateSlot{}, false
}

// ---------------------------------------------------
// field helpers
// ---------------------------------------------------

func first(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func isContainer(v any) bool {
	switch v.(type) {
	case []any, map[string]any:
		return true
	}
	return false
}

func str(m map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return v
			}
		case json.Number:
			return v.String()
		}
	}
	return ""
}

func count(v any) (int, bool) {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return int(n), true
		}
		if f, err := x.Float64(); err == nil {
			return int(f), true
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return n, true
		}
	case []any:
		return len(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func parseDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.Day(t), true
		}
	}
	return time.Time{}, false
}
