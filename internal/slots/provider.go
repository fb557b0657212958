package slots

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rohitvarshney-web/schengen-slots/internal/model"
)

// Upstream is the live data source. *Client implements it.
type Upstream interface {
	Countries(ctx context.Context) ([]model.Country, error)
	Slots(ctx context.Context, code string) (model.Summary, error)
}

var _ Upstream = (*Client)(nil)

type CountriesResult struct {
	Countries []model.Country `json:"countries"`
	Source    model.Source    `json:"source"`
	Advisory  string          `json:"advisory,omitempty"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

type SummaryResult struct {
	Summary  model.Summary `json:"summary"`
	Source   model.Source  `json:"source"`
	Advisory string        `json:"advisory,omitempty"`
}

// Provider answers dashboard queries from the live API, falling back to
// demo data on any failure. Results are kept in memory until Refresh.
type Provider struct {
	live Upstream // nil means demo mode
	demo *Demo
	now  func() time.Time

	mu        sync.Mutex
	countries *CountriesResult
	summaries map[string]SummaryResult
}

// NewProvider wires a live source and its fallback. A nil live source
// serves demo data only.
func NewProvider(live Upstream, demo *Demo) *Provider {
	if demo == nil {
		demo = NewDemo(nil)
	}
	return &Provider{
		live:      live,
		demo:      demo,
		now:       time.Now,
		summaries: map[string]SummaryResult{},
	}
}

// Countries returns the destination list. The only error is ctx's.
func (p *Provider) Countries(ctx context.Context) (CountriesResult, error) {
	p.mu.Lock()
	if p.countries != nil {
		res := *p.countries
		res.Countries = append([]model.Country(nil), p.countries.Countries...)
		p.mu.Unlock()
		return res, nil
	}
	p.mu.Unlock()

	res := CountriesResult{FetchedAt: p.now()}
	var err error
	if p.live != nil {
		res.Countries, err = p.live.Countries(ctx)
		if err == nil && len(res.Countries) == 0 {
			err = errors.New("no countries in response")
		}
	}
	if p.live == nil || err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return CountriesResult{}, ctxErr
		}
		res.Countries = p.demo.Countries()
		res.Source = model.SourceDemo
		res.Advisory = p.advisory(err)
		if err != nil {
			log.WithError(err).Warn("countries: falling back to demo data")
		}
	} else {
		res.Source = model.SourceLive
		log.WithField("count", len(res.Countries)).Info("countries loaded")
	}

	p.mu.Lock()
	// fold in summaries that finished first
	for i, c := range res.Countries {
		if s, ok := p.summaries[c.Code]; ok {
			res.Countries[i] = c.WithSummary(s.Summary)
		}
	}
	stored := res
	stored.Countries = append([]model.Country(nil), res.Countries...)
	p.countries = &stored
	p.mu.Unlock()
	return res, nil
}

// Summary returns availability for one destination, fetching it only if it
// is not cached yet. The only error is ctx's.
func (p *Provider) Summary(ctx context.Context, code string) (SummaryResult, error) {
	code = model.NormalizeCode(code)
	if res, ok := p.Cached(code); ok {
		return res, nil
	}

	var (
		res SummaryResult
		err error
	)
	if p.live != nil {
		res.Summary, err = p.live.Slots(ctx, code)
	}
	if p.live == nil || err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return SummaryResult{}, ctxErr
		}
		res.Summary = p.demo.Summary(code)
		res.Source = model.SourceDemo
		res.Advisory = p.advisory(err)
		if err != nil {
			log.WithError(err).WithField("country", code).Warn("slots: falling back to demo data")
		}
	} else {
		res.Source = model.SourceLive
		log.WithFields(log.Fields{
			"country": code,
			"cities":  len(res.Summary.Cities),
			"slots":   res.Summary.TotalSlots,
		}).Info("slots loaded")
	}

	p.mu.Lock()
	p.summaries[code] = res
	if p.countries != nil {
		for i, c := range p.countries.Countries {
			if c.Code == code {
				p.countries.Countries[i] = c.WithSummary(res.Summary)
			}
		}
	}
	p.mu.Unlock()
	return res, nil
}

// Cached returns a previously loaded summary.
func (p *Provider) Cached(code string) (SummaryResult, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	res, ok := p.summaries[model.NormalizeCode(code)]
	return res, ok
}

// Prefetch loads summaries for codes with at most workers requests in
// flight.
func (p *Provider) Prefetch(ctx context.Context, codes []string, workers int) error {
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, code := range codes {
		g.Go(func() error {
			_, err := p.Summary(gctx, code)
			return err
		})
	}
	return g.Wait()
}

// Refresh drops everything cached so the next calls hit the API again.
func (p *Provider) Refresh() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.countries = nil
	p.summaries = map[string]SummaryResult{}
}

func (p *Provider) advisory(err error) string {
	switch {
	case p.live == nil:
		return advisoryForced
	case errors.Is(err, ErrNotConfigured):
		return advisoryNotConfigured
	default:
		return advisoryFor(err)
	}
}

func shortCause(err error) string {
	var ne net.Error
	switch {
	case err == nil:
		return "unknown error"
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &ne) && ne.Timeout():
		return "request timed out"
	case errors.Is(err, ErrUnexpectedStatus), errors.Is(err, ErrDecode):
		return err.Error()
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 && len(msg) > 60 {
		msg = msg[i+2:]
	}
	if len(msg) > 60 {
		msg = msg[:57] + "..."
	}
	return msg
}
