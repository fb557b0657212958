package model

import (
	"strings"
	"time"
)

// Source tells where a piece of data came from.
type Source string

const (
	SourceLive Source = "live"
	SourceDemo Source = "demo"
)

// Country is one destination row of the dashboard.
// NextAvailable is zero when unknown; SlotCount only means something when
// SlotsKnown is set.
type Country struct {
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Flag          string    `json:"flag,omitempty"`
	NextAvailable time.Time `json:"nextAvailable"`
	SlotCount     int       `json:"slotCount"`
	SlotsKnown    bool      `json:"slotsKnown"`
}

// HasAvailability reports whether the row advertises any open slot.
func (c Country) HasAvailability() bool {
	if c.SlotsKnown {
		return c.SlotCount > 0
	}
	return !c.NextAvailable.IsZero()
}

// Matches is the search predicate used by the list view.
func (c Country) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Code), q)
}

// WithSummary copies headline numbers from a loaded summary onto the row.
func (c Country) WithSummary(s Summary) Country {
	c.NextAvailable = s.NextAvailable
	c.SlotCount = s.TotalSlots
	c.SlotsKnown = true
	return c
}

// NormalizeCode is how country codes are keyed everywhere.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
