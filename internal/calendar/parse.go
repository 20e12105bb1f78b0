// Package calendar implements the economic-calendar parsing and day
// classification rules behind the trading plan.
//
// The feed this operates on is scraped from a third-party site and is dirty
// by design: mixed 12/24-hour time styles, placeholder cells like "Tentative"
// or "Day 1", and free-text impact labels. Every parser here is a total
// function that degrades to a safe default instead of returning an error.
package calendar

import (
	"strings"
	"time"

	"github.com/eddiefleurent/newsday_planner/internal/models"
)

// timeLayouts are tried in order against a lower-cased, trimmed cell. The
// feed mixes "8:30am", "8:30 am" and 24-hour "13:30" styles.
var timeLayouts = []string{"3:04pm", "3:04 pm", "15:04"}

// dateLayout is day-first. The feed writes 01/07/2025 for July 1st, not
// January 7th.
const dateLayout = "02/01/2006"

// ParseTimeOfDay parses a free-form time cell into a time-of-day on the zero
// date. The boolean is false when the cell is empty or not a clock time
// ("All Day", "Tentative", ...).
func ParseTimeOfDay(s string) (time.Time, bool) {
	clean := strings.ToLower(strings.TrimSpace(s))
	if clean == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, clean); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDate parses a day-first DD/MM/YYYY cell. The boolean is false on any
// malformed input.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseImpact maps a free-text impact cell onto High/Medium/Low. The match is
// a case-insensitive substring check so "High Impact Expected" still counts.
// Anything unrecognized, including an empty cell, defaults to Low.
func ParseImpact(s string) string {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "high"):
		return models.ImpactHigh
	case strings.Contains(lower, "medium"):
		return models.ImpactMedium
	case strings.Contains(lower, "low"):
		return models.ImpactLow
	default:
		return models.ImpactLow
	}
}

// Clock builds a comparable time-of-day on the same zero date the parsers
// produce, so cutoffs can be compared directly against parsed event times.
func Clock(hour, min int) time.Time {
	return time.Date(0, time.January, 1, hour, min, 0, 0, time.UTC)
}
