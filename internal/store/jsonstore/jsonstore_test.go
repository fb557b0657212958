package jsonstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitvarshney-web/schengen-slots/internal/model"
)

func TestSaveThenLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out", "fixture.json")
	d := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	in := &model.Fixture{
		Countries: []model.Country{{Code: "FR", Name: "France", NextAvailable: d, SlotCount: 2, SlotsKnown: true}},
		Slots: map[string]model.Summary{
			"FR": model.BuildSummary("FR", map[string][]model.DateSlot{"Mumbai": {{Date: d, Count: 2}}}),
		},
	}
	require.NoError(t, Save(p, in))

	out, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, in.Countries, out.Countries)
	assert.Equal(t, 2, out.Slots["FR"].TotalSlots)
	assert.True(t, out.Slots["FR"].NextAvailable.Equal(d))
}

func TestLoad_NormalizesHandWrittenFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"countries":[{"code":"es","name":"Spain"}]}`), 0o644))

	out, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "ES", out.Countries[0].Code)
	assert.NotNil(t, out.Slots)
}

func TestLoad_RekeysSlotsByCode(t *testing.T) {
	p := filepath.Join(t.TempDir(), "fixture.json")
	body := `{"countries":[{"code":"fr","name":"France"}],
	"slots":{"fr":{"countryCode":"fr","cities":[{"name":"Mumbai","dates":[{"date":"2025-04-02T00:00:00Z","count":3}]}],"totalSlots":3}}}`
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

	out, err := Load(p)
	require.NoError(t, err)
	require.Contains(t, out.Slots, "FR")
	assert.NotContains(t, out.Slots, "fr")
	assert.Equal(t, "FR", out.Slots["FR"].CountryCode)
	assert.Equal(t, 3, out.Slots["FR"].TotalSlots)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	p := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(p, []byte(`{`), 0o644))
	_, err = Load(p)
	assert.Error(t, err)
}
