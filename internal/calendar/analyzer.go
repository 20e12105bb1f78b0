package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/eddiefleurent/newsday_planner/internal/models"
)

// Config carries the strategy thresholds and keyword lists. Treat values as
// immutable once the analyzer is constructed.
type Config struct {
	// MorningCutoff splits timed events into morning (strictly before) and
	// afternoon (at or after) buckets.
	MorningCutoff time.Time
	// AfternoonNoTradeStart is the time at or after which a no-trade keyword
	// match on a USD event shuts the day down.
	AfternoonNoTradeStart time.Time
	// NoTradeKeywords and ForcedHighImpactKeywords are substring matches
	// against the event name, case-insensitive in both directions.
	NoTradeKeywords          []string
	ForcedHighImpactKeywords []string
}

// DefaultConfig returns the strategy rules for the US index plan ($NQ, $ES).
func DefaultConfig() Config {
	return Config{
		MorningCutoff:         Clock(12, 0),
		AfternoonNoTradeStart: Clock(13, 55),
		NoTradeKeywords: []string{
			"FOMC Statement",
			"FOMC Press Conference",
			"Interest Rate Decision",
			"Monetary Policy Report",
		},
		ForcedHighImpactKeywords: []string{
			"Powell Speaks",
			"Fed Chair",
			"Non-Farm",
			"NFP",
			"CPI",
			"Consumer Price Index",
			"PPI",
			"Producer Price Index",
			"GDP",
		},
	}
}

// Analyzer classifies a day's events into a trading plan. It is stateless
// and safe for concurrent use.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an Analyzer with the given rules.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

const (
	reasonStandard = "No high-impact USD news found."
	reasonNewsDay  = "High-impact USD news detected. Switch to non-bias scalping."
)

// Analyze classifies one trading day. Callers are expected to pass only the
// records whose date matches targetDate (filter with ParseDate); the analyzer
// itself never looks at the date cell.
//
// Every record lands in exactly one bucket, with one deliberate exception: a
// critical afternoon USD event returns immediately, so records after the
// trigger never reach the buckets. That truncation matches the behavior the
// rest of the app was built around.
func (a *Analyzer) Analyze(targetDate time.Time, events []models.EventRecord) models.DayAnalysis {
	res := models.DayAnalysis{
		Date:      targetDate,
		Plan:      models.PlanStandard,
		Reason:    reasonStandard,
		Morning:   []models.Event{},
		Afternoon: []models.Event{},
		AllDay:    []models.Event{},
	}
	sawHighImpactUSD := false

	for _, rec := range events {
		eventTime, hasTime := ParseTimeOfDay(rec.Time)
		name := rec.Event
		currency := strings.ToUpper(strings.TrimSpace(rec.Currency))
		parsedImpact := ParseImpact(rec.Impact)

		isForcedHigh := containsAny(name, a.cfg.ForcedHighImpactKeywords)
		isHighImpact := parsedImpact == models.ImpactHigh || isForcedHigh

		displayImpact := parsedImpact
		if isForcedHigh && parsedImpact != models.ImpactHigh {
			displayImpact = models.ImpactHighForced
		} else if isHighImpact {
			displayImpact = models.ImpactHigh
		}

		ev := models.Event{
			Name:     name,
			Currency: currency,
			Impact:   displayImpact,
			Time:     "All Day",
			RawTime:  eventTime,
			HasTime:  hasTime,
		}
		if hasTime {
			ev.Time = eventTime.Format("03:04 PM")
		}

		switch {
		case !hasTime:
			res.AllDay = append(res.AllDay, ev)
		case eventTime.Before(a.cfg.MorningCutoff):
			res.Morning = append(res.Morning, ev)
		default:
			res.Afternoon = append(res.Afternoon, ev)
		}

		if currency != "USD" {
			continue
		}
		if containsAny(name, a.cfg.NoTradeKeywords) &&
			hasTime && !eventTime.Before(a.cfg.AfternoonNoTradeStart) {
			res.Plan = models.PlanNoTrade
			res.Reason = fmt.Sprintf("Critical afternoon USD event '%s'.", name)
			return res
		}
		// Untimed events never arm the news-day escalation, even when
		// high impact.
		if isHighImpact && hasTime {
			sawHighImpactUSD = true
		}
	}

	if sawHighImpactUSD {
		res.Plan = models.PlanNewsDay
		res.Reason = reasonNewsDay
	}
	return res
}

func containsAny(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
