package slots

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitvarshney-web/schengen-slots/internal/model"
)

type fakeUpstream struct {
	countries    []model.Country
	countriesErr error
	summaries    map[string]model.Summary
	slotsErr     error

	countryCalls atomic.Int32
	slotCalls    atomic.Int32
}

func (f *fakeUpstream) Countries(ctx context.Context) ([]model.Country, error) {
	f.countryCalls.Add(1)
	return f.countries, f.countriesErr
}

func (f *fakeUpstream) Slots(ctx context.Context, code string) (model.Summary, error) {
	f.slotCalls.Add(1)
	if f.slotsErr != nil {
		return model.Summary{}, f.slotsErr
	}
	return f.summaries[code], nil
}

func fixedNow() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

func TestProvider_LiveCountriesCached(t *testing.T) {
	up := &fakeUpstream{countries: []model.Country{{Code: "FR", Name: "France"}}}
	p := NewProvider(up, NewDemo(fixedNow))

	res, err := p.Countries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.SourceLive, res.Source)
	assert.Empty(t, res.Advisory)
	require.Len(t, res.Countries, 1)

	_, err = p.Countries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), up.countryCalls.Load())

	p.Refresh()
	_, err = p.Countries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), up.countryCalls.Load())
}

func TestProvider_CountriesFallback(t *testing.T) {
	cases := map[string]*fakeUpstream{
		"error": {countriesErr: errors.New("dial tcp: connection refused")},
		"empty": {countries: []model.Country{}},
	}
	for name, up := range cases {
		t.Run(name, func(t *testing.T) {
			p := NewProvider(up, NewDemo(fixedNow))
			res, err := p.Countries(context.Background())
			require.NoError(t, err)
			assert.Equal(t, model.SourceDemo, res.Source)
			assert.Contains(t, res.Advisory, "Showing demo data")
			assert.NotEmpty(t, res.Countries)
		})
	}
}

func TestProvider_LiveClientFailuresServeDemo(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		closed  bool
		cause   string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			cause: ErrUnexpectedStatus.Error(),
		},
		{
			name: "bad json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>maintenance</html>`))
			},
			cause: ErrDecode.Error(),
		},
		{
			name:    "closed server",
			handler: func(w http.ResponseWriter, r *http.Request) {},
			closed:  true,
		},
	}
	prefix, _, _ := strings.Cut(advisoryUnavailable, "%s")
	demo := NewDemo(fixedNow)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			base := srv.URL
			if tt.closed {
				srv.Close()
			} else {
				defer srv.Close()
			}
			p := NewProvider(NewClient(testAPIConfig(base)), NewDemo(fixedNow))

			list, err := p.Countries(context.Background())
			require.NoError(t, err)
			assert.Equal(t, model.SourceDemo, list.Source)
			assert.True(t, strings.HasPrefix(list.Advisory, prefix), list.Advisory)
			assert.Contains(t, list.Advisory, tt.cause)
			assert.Equal(t, demo.Countries(), list.Countries)

			sum, err := p.Summary(context.Background(), "FR")
			require.NoError(t, err)
			assert.Equal(t, model.SourceDemo, sum.Source)
			assert.True(t, strings.HasPrefix(sum.Advisory, prefix), sum.Advisory)
			assert.Equal(t, demo.Summary("FR"), sum.Summary)
		})
	}
}

func TestProvider_AdvisoryVariants(t *testing.T) {
	p := NewProvider(nil, NewDemo(fixedNow))
	res, err := p.Countries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, advisoryForced, res.Advisory)

	p = NewProvider(&fakeUpstream{countriesErr: ErrNotConfigured}, NewDemo(fixedNow))
	res, err = p.Countries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, advisoryNotConfigured, res.Advisory)

	p = NewProvider(&fakeUpstream{countriesErr: context.DeadlineExceeded}, NewDemo(fixedNow))
	res, err = p.Countries(context.Background())
	require.NoError(t, err)
	assert.Contains(t, res.Advisory, "timed out")
}

func TestProvider_SummarySkipsWhenCached(t *testing.T) {
	s := model.BuildSummary("FR", map[string][]model.DateSlot{
		"Mumbai": {{Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Count: 3}},
	})
	up := &fakeUpstream{
		countries: []model.Country{{Code: "FR", Name: "France"}},
		summaries: map[string]model.Summary{"FR": s},
	}
	p := NewProvider(up, NewDemo(fixedNow))
	_, err := p.Countries(context.Background())
	require.NoError(t, err)

	res, err := p.Summary(context.Background(), "fr")
	require.NoError(t, err)
	assert.Equal(t, model.SourceLive, res.Source)
	assert.Equal(t, 3, res.Summary.TotalSlots)

	_, err = p.Summary(context.Background(), "FR")
	require.NoError(t, err)
	assert.Equal(t, int32(1), up.slotCalls.Load())

	// the list row picks up the loaded numbers
	list, err := p.Countries(context.Background())
	require.NoError(t, err)
	assert.True(t, list.Countries[0].SlotsKnown)
	assert.Equal(t, 3, list.Countries[0].SlotCount)
	assert.Equal(t, s.NextAvailable, list.Countries[0].NextAvailable)
}

func TestProvider_SummaryFallback(t *testing.T) {
	up := &fakeUpstream{slotsErr: ErrUnexpectedStatus}
	p := NewProvider(up, NewDemo(fixedNow))

	res, err := p.Summary(context.Background(), "DE")
	require.NoError(t, err)
	assert.Equal(t, model.SourceDemo, res.Source)
	assert.NotEmpty(t, res.Advisory)
	assert.False(t, res.Summary.Empty())
	assert.True(t, res.Summary.NextAvailable.After(fixedNow()))
}

func TestProvider_CanceledContextIsNotCached(t *testing.T) {
	up := &fakeUpstream{slotsErr: context.Canceled}
	p := NewProvider(up, NewDemo(fixedNow))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Summary(ctx, "DE")
	assert.ErrorIs(t, err, context.Canceled)

	_, ok := p.Cached("DE")
	assert.False(t, ok)
}

func TestProvider_Prefetch(t *testing.T) {
	up := &fakeUpstream{summaries: map[string]model.Summary{}}
	p := NewProvider(up, NewDemo(fixedNow))

	codes := []string{"AT", "BE", "DE", "FR", "IT"}
	require.NoError(t, p.Prefetch(context.Background(), codes, 2))
	assert.Equal(t, int32(len(codes)), up.slotCalls.Load())
	for _, c := range codes {
		_, ok := p.Cached(c)
		assert.True(t, ok, c)
	}
}

func TestDemo_Deterministic(t *testing.T) {
	d := NewDemo(fixedNow)
	a, b := d.Summary("fr"), d.Summary("FR")
	assert.Equal(t, a, b)
	assert.GreaterOrEqual(t, len(a.Cities), 2)

	for _, c := range d.Countries() {
		assert.True(t, c.SlotsKnown, c.Code)
		assert.True(t, c.HasAvailability(), c.Code)
	}
}

func TestDemo_Fixture(t *testing.T) {
	f := &model.Fixture{
		Countries: []model.Country{{Code: "PT", Name: "Portugal"}},
		Slots:     map[string]model.Summary{"PT": {CountryCode: "PT", TotalSlots: 9}},
	}
	d := NewDemoFromFixture(f)
	assert.Len(t, d.Countries(), 1)
	assert.Equal(t, 9, d.Summary("pt").TotalSlots)
	assert.True(t, d.Summary("ES").Empty())
}
