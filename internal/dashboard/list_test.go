package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rohitvarshney-web/schengen-slots/internal/model"
)

var sample = []model.Country{
	{Code: "DE", Name: "Germany", SlotCount: 4, SlotsKnown: true},
	{Code: "FR", Name: "France", NextAvailable: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)},
	{Code: "ES", Name: "Spain", SlotCount: 0, SlotsKnown: true},
	{Code: "NL", Name: "Netherlands"},
}

func codes(cs []model.Country) []string {
	out := []string{}
	for _, c := range cs {
		out = append(out, c.Code)
	}
	return out
}

func TestFilter(t *testing.T) {
	assert.Equal(t, []string{"DE", "FR", "ES", "NL"}, codes(Filter(sample, "")))
	assert.Equal(t, []string{"DE", "FR", "ES", "NL"}, codes(Filter(sample, "   ")))
	assert.Equal(t, []string{"FR"}, codes(Filter(sample, "fRaN")))
	assert.Equal(t, []string{"ES"}, codes(Filter(sample, "es")))
	// "an" hits both names
	assert.Equal(t, []string{"DE", "FR", "NL"}, codes(Filter(sample, "an")))
	assert.Empty(t, Filter(sample, "xyz"))
}

func TestComputeStats(t *testing.T) {
	s := ComputeStats(sample)
	assert.Equal(t, Stats{Total: 4, Available: 2, Slots: 4}, s)
}

func TestFind(t *testing.T) {
	c, ok := Find(sample, " fr ")
	assert.True(t, ok)
	assert.Equal(t, "France", c.Name)

	_, ok = Find(sample, "IT")
	assert.False(t, ok)
}
