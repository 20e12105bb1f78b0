// Package models defines the economic-calendar domain types shared across
// the planner.
package models

import "time"

// Impact labels as they are displayed. ImpactHighForced marks events that the
// keyword override promoted to high impact even though the feed reported
// something lower.
const (
	ImpactHigh       = "High"
	ImpactMedium     = "Medium"
	ImpactLow        = "Low"
	ImpactHighForced = "High (Forced)"
)

// EventRecord is one raw calendar row as it arrives from the feed. Every
// field is an untrusted string; missing cells come through as "" or the
// feed's literal "empty" placeholder. The parsers in internal/calendar are
// responsible for making sense of them.
type EventRecord struct {
	ID       string `json:"id,omitempty"`
	Date     string `json:"date"`     // DD/MM/YYYY, day-first
	Time     string `json:"time"`     // "8:30am", "13:30", "All Day", "Tentative", ...
	Currency string `json:"currency"` // 3-letter code, any case
	Impact   string `json:"impact"`   // free text containing high/medium/low
	Event    string `json:"event"`    // event name
	Actual   string `json:"actual,omitempty"`
	Forecast string `json:"forecast,omitempty"`
	Previous string `json:"previous,omitempty"`
}

// Event is a normalized calendar event ready for display.
type Event struct {
	Name     string `json:"name"`
	Currency string `json:"currency"` // upper-cased, trimmed
	Impact   string `json:"impact"`   // High, Medium, Low or High (Forced)
	Time     string `json:"time"`     // "08:30 AM" or the literal "All Day"
	// RawTime is the parsed time-of-day on the zero date. Only meaningful
	// when HasTime is true.
	RawTime time.Time `json:"-"`
	HasTime bool      `json:"has_time"`
}

// Plan is the qualitative classification for a trading day.
type Plan string

const (
	// PlanStandard is the default when no high-impact USD news is scheduled.
	PlanStandard Plan = "Standard Day Plan"
	// PlanNewsDay applies when at least one timed high-impact USD event exists.
	PlanNewsDay Plan = "News Day Plan"
	// PlanNoTrade applies when a critical USD event lands in the afternoon
	// no-trade window.
	PlanNoTrade Plan = "No Trade Day"
)

// DayAnalysis is the full classification result for one calendar day.
type DayAnalysis struct {
	Date      time.Time `json:"date"`
	Plan      Plan      `json:"plan"`
	Reason    string    `json:"reason"`
	Morning   []Event   `json:"morning"`
	Afternoon []Event   `json:"afternoon"`
	AllDay    []Event   `json:"all_day"`
}

// EventCount returns how many events made it into the buckets. On no-trade
// days this can be fewer than the number of input rows, because analysis
// stops at the triggering event.
func (a *DayAnalysis) EventCount() int {
	return len(a.Morning) + len(a.Afternoon) + len(a.AllDay)
}
