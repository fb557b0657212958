package slots

import (
	"fmt"
	"time"

	"github.com/rohitvarshney-web/schengen-slots/internal/model"
)

// Advisories shown next to demo data.
const (
	advisoryNotConfigured = "No API endpoint is configured. Showing demo data."
	advisoryForced        = "Demo mode is on. Showing demo data."
	advisoryUnavailable   = "Live availability is unavailable (%s). Showing demo data."
)

func advisoryFor(err error) string {
	return fmt.Sprintf(advisoryUnavailable, shortCause(err))
}

var demoCountries = []model.Country{
	{Code: "AT", Name: "Austria", Flag: "🇦🇹"},
	{Code: "BE", Name: "Belgium", Flag: "🇧🇪"},
	{Code: "CH", Name: "Switzerland", Flag: "🇨🇭"},
	{Code: "CZ", Name: "Czechia", Flag: "🇨🇿"},
	{Code: "DE", Name: "Germany", Flag: "🇩🇪"},
	{Code: "DK", Name: "Denmark", Flag: "🇩🇰"},
	{Code: "ES", Name: "Spain", Flag: "🇪🇸"},
	{Code: "FI", Name: "Finland", Flag: "🇫🇮"},
	{Code: "FR", Name: "France", Flag: "🇫🇷"},
	{Code: "GR", Name: "Greece", Flag: "🇬🇷"},
	{Code: "HU", Name: "Hungary", Flag: "🇭🇺"},
	{Code: "IS", Name: "Iceland", Flag: "🇮🇸"},
	{Code: "IT", Name: "Italy", Flag: "🇮🇹"},
	{Code: "NL", Name: "Netherlands", Flag: "🇳🇱"},
	{Code: "NO", Name: "Norway", Flag: "🇳🇴"},
	{Code: "PL", Name: "Poland", Flag: "🇵🇱"},
	{Code: "PT", Name: "Portugal", Flag: "🇵🇹"},
	{Code: "SE", Name: "Sweden", Flag: "🇸🇪"},
}

var demoCities = []string{"Bengaluru", "Chennai", "Kolkata", "Mumbai", "New Delhi"}

// Demo serves fallback data, either built in or loaded from a fixture.
type Demo struct {
	now     func() time.Time
	fixture *model.Fixture
}

// NewDemo returns the built-in demo set. Dates are relative to now().
func NewDemo(now func() time.Time) *Demo {
	if now == nil {
		now = time.Now
	}
	return &Demo{now: now}
}

// NewDemoFromFixture serves a saved snapshot instead of the built-in set.
func NewDemoFromFixture(f *model.Fixture) *Demo {
	return &Demo{now: time.Now, fixture: f}
}

func (d *Demo) Countries() []model.Country {
	if d.fixture != nil {
		return append([]model.Country(nil), d.fixture.Countries...)
	}
	out := make([]model.Country, 0, len(demoCountries))
	for _, c := range demoCountries {
		out = append(out, c.WithSummary(d.Summary(c.Code)))
	}
	return out
}

// Summary returns demo availability for code. Unknown codes get an empty
// summary from a fixture and generated data from the built-in set.
func (d *Demo) Summary(code string) model.Summary {
	code = model.NormalizeCode(code)
	if d.fixture != nil {
		if s, ok := d.fixture.Slots[code]; ok {
			return s
		}
		return model.BuildSummary(code, nil)
	}

	seed := 0
	for _, r := range code {
		seed = seed*31 + int(r)
	}
	if seed < 0 {
		seed = -seed
	}
	today := model.Day(d.now())

	raw := map[string][]model.DateSlot{}
	nCities := 2 + seed%2
	for i := 0; i < nCities; i++ {
		city := demoCities[(seed+i*2)%len(demoCities)]
		offset := 3 + (seed+i*5)%9
		for j := 0; j < 4+(seed+i)%3; j++ {
			raw[city] = append(raw[city], model.DateSlot{
				Date:  today.AddDate(0, 0, offset),
				Count: 1 + (seed+i+j)%6,
			})
			offset += 2 + (seed+j)%6
		}
	}
	return model.BuildSummary(code, raw)
}
