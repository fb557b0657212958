package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitvarshney-web/schengen-slots/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseCountries_Shapes(t *testing.T) {
	cases := map[string]string{
		"top-level array": `[{"code":"fr","name":"France","flag":"🇫🇷"},{"code":"DE","name":"Germany"}]`,
		"data envelope":   `{"data":[{"countryCode":"FR","countryName":"France"},{"iso2":"de","displayName":"Germany"}]}`,
		"nested envelope": `{"data":{"countries":[{"country_code":"FR","country_name":"France"},{"isoCode":"DE","title":"Germany"}]}}`,
		"keyed by code":   `{"FR":{"name":"France"},"DE":{"name":"Germany"}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseCountries([]byte(body))
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "FR", got[0].Code)
			assert.Equal(t, "France", got[0].Name)
			assert.Equal(t, "DE", got[1].Code)
			assert.Equal(t, "Germany", got[1].Name)
		})
	}
}

func TestParseCountries_Fields(t *testing.T) {
	body := `{"countries":[
		{"code":"IT","name":"Italy","nextAvailableDate":"2025-03-04T09:30:00Z","availableSlots":"12"},
		{"code":"ES","name":"Spain","earliestDate":"05/03/2025","slots":["a","b"]},
		{"code":"ES","name":"Spain again"},
		{"name":"No code"},
		"nl"
	]}`
	got, err := ParseCountries([]byte(body))
	require.NoError(t, err)
	require.Len(t, got, 3)

	byCode := map[string]model.Country{}
	for _, c := range got {
		byCode[c.Code] = c
	}

	assert.Equal(t, day("2025-03-04"), byCode["IT"].NextAvailable)
	assert.Equal(t, 12, byCode["IT"].SlotCount)
	assert.True(t, byCode["IT"].SlotsKnown)

	assert.Equal(t, "Spain", byCode["ES"].Name)
	assert.Equal(t, day("2025-03-05"), byCode["ES"].NextAvailable)
	assert.Equal(t, 2, byCode["ES"].SlotCount)

	assert.Equal(t, "NL", byCode["NL"].Name)
	assert.False(t, byCode["NL"].SlotsKnown)
	assert.True(t, byCode["NL"].NextAvailable.IsZero())
}

func TestParseCountries_NothingRecognizable(t *testing.T) {
	got, err := ParseCountries([]byte(`{"status":"ok","message":"hello"}`))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseCountries_Malformed(t *testing.T) {
	_, err := ParseCountries([]byte(`<html>oops</html>`))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestParseSlots_CityMap(t *testing.T) {
	body := `{"data":{"citiesWiseSlots":{
		"Mumbai":["2025-04-02","2025-04-01","2025-04-01"],
		"Chennai":{"availableDates":[{"date":"2025-04-03","count":4}]},
		"Pune":[]
	}}}`
	s, err := ParseSlots("fr", []byte(body))
	require.NoError(t, err)

	assert.Equal(t, "FR", s.CountryCode)
	require.Len(t, s.Cities, 2)
	assert.Equal(t, "Chennai", s.Cities[0].Name)
	assert.Equal(t, "Mumbai", s.Cities[1].Name)
	// duplicates merge into one day
	require.Len(t, s.Cities[1].Dates, 2)
	assert.Equal(t, day("2025-04-01"), s.Cities[1].Dates[0].Date)
	assert.Equal(t, day("2025-04-01"), s.NextAvailable)
	assert.Equal(t, 6, s.TotalSlots)
}

func TestParseSlots_CityMapOfDateCounts(t *testing.T) {
	body := `{"citiesWiseSlots":{"Mumbai":{"2025-04-02":3,"2025-04-05":1}}}`
	s, err := ParseSlots("FR", []byte(body))
	require.NoError(t, err)

	require.Len(t, s.Cities, 1)
	assert.Equal(t, "Mumbai", s.Cities[0].Name)
	require.Len(t, s.Cities[0].Dates, 2)
	assert.Equal(t, day("2025-04-02"), s.NextAvailable)
	assert.Equal(t, 4, s.TotalSlots)
}

func TestParseSlots_CityList(t *testing.T) {
	body := `{"centres":[
		{"centreName":"New Delhi","slots":[{"slotDate":"2025-05-10 10:00:00","availableSlots":2},{"day":"bogus"}]},
		{"city":"Kolkata","dates":{"2025-05-12":3}}
	]}`
	s, err := ParseSlots("DE", []byte(body))
	require.NoError(t, err)

	require.Len(t, s.Cities, 2)
	assert.Equal(t, "Kolkata", s.Cities[0].Name)
	assert.Equal(t, 3, s.Cities[0].Dates[0].Count)
	assert.Equal(t, "New Delhi", s.Cities[1].Name)
	require.Len(t, s.Cities[1].Dates, 1)
	assert.Equal(t, day("2025-05-10"), s.Cities[1].Dates[0].Date)
	assert.Equal(t, 5, s.TotalSlots)
}

func TestParseSlots_FlatSlots(t *testing.T) {
	body := `{"slots":[
		{"date":"2025-06-01","city":"Mumbai"},
		{"date":"2025-06-02"},
		"2025-06-03"
	]}`
	s, err := ParseSlots("IT", []byte(body))
	require.NoError(t, err)

	require.Len(t, s.Cities, 2)
	assert.Equal(t, model.DefaultCity, s.Cities[0].Name)
	assert.Len(t, s.Cities[0].Dates, 2)
	assert.Equal(t, "Mumbai", s.Cities[1].Name)
}

func TestParseSlots_FlatDates(t *testing.T) {
	s, err := ParseSlots("ES", []byte(`{"availableDates":["2025-07-01","2025-07-02"]}`))
	require.NoError(t, err)

	require.Len(t, s.Cities, 1)
	assert.Equal(t, model.DefaultCity, s.Cities[0].Name)
	assert.Equal(t, 2, s.TotalSlots)
}

func TestParseSlots_NothingMatches(t *testing.T) {
	s, err := ParseSlots("ES", []byte(`{"message":"no slots","slots":0}`))
	require.NoError(t, err)
	assert.True(t, s.Empty())
	assert.Zero(t, s.TotalSlots)
	assert.True(t, s.NextAvailable.IsZero())
}
