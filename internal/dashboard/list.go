package dashboard

import "github.com/rohitvarshney-web/schengen-slots/internal/model"

// Filter keeps the countries whose name or code contains query, ignoring
// case. Order is preserved; a blank query keeps everything.
func Filter(countries []model.Country, query string) []model.Country {
	out := make([]model.Country, 0, len(countries))
	for _, c := range countries {
		if c.Matches(query) {
			out = append(out, c)
		}
	}
	return out
}

// Stats are the header numbers of the list view.
type Stats struct {
	Total     int
	Available int
	Slots     int
}

func ComputeStats(countries []model.Country) Stats {
	s := Stats{Total: len(countries)}
	for _, c := range countries {
		if c.HasAvailability() {
			s.Available++
		}
		if c.SlotsKnown {
			s.Slots += c.SlotCount
		}
	}
	return s
}

// Find looks a country up by code.
func Find(countries []model.Country, code string) (model.Country, bool) {
	code = model.NormalizeCode(code)
	for _, c := range countries {
		if c.Code == code {
			return c, true
		}
	}
	return model.Country{}, false
}
