// Package profile maps mid-week session observations onto weekly playbook
// profiles for the current bias.
package profile

import (
	"time"

	"github.com/eddiefleurent/newsday_planner/internal/models"
)

// Bias labels accepted by Analyze.
const (
	BiasBullish = "Bullish"
	BiasBearish = "Bearish"
)

// Observation tags the operator can log during the week.
const (
	ObservationMonLowRun  = "Mon Low Run"
	ObservationMonHighRun = "Mon High Run"
)

// Analyze returns the weekly profiles consistent with the bias, the logged
// observations and the current weekday. It always returns at least one
// profile; with nothing confirmed it falls back to the wait-and-see entry.
func Analyze(bias string, observations []string, weekday time.Weekday) []models.WeeklyProfile {
	var profiles []models.WeeklyProfile

	if bias == BiasBullish &&
		observed(observations, ObservationMonLowRun) &&
		(weekday == time.Tuesday || weekday == time.Wednesday) {
		profiles = append(profiles, models.WeeklyProfile{
			Name:         "Classic Tuesday/Wednesday Low of the Week",
			Probability:  "High",
			Expectation:  "The low of the week may now be in. Expect expansion higher.",
			Action:       "Look for 15m MSS + FVG for a long entry.",
			Invalidation: "Price breaks decisively below the new low.",
		})
	}

	if bias == BiasBearish &&
		observed(observations, ObservationMonHighRun) &&
		(weekday == time.Tuesday || weekday == time.Wednesday) {
		profiles = append(profiles, models.WeeklyProfile{
			Name:         "Classic Tuesday/Wednesday High of the Week",
			Probability:  "High",
			Expectation:  "The high of the week may now be in. Expect expansion lower.",
			Action:       "Look for 15m MSS + FVG for a short entry.",
			Invalidation: "Price breaks decisively above the new high.",
		})
	}

	if len(profiles) == 0 {
		profiles = append(profiles, models.WeeklyProfile{
			Name:         "Awaiting Clarity",
			Probability:  "N/A",
			Expectation:  "Market has not yet revealed its intention.",
			Action:       "Remain patient. Do not force a trade.",
			Invalidation: "N/A",
		})
	}
	return profiles
}

func observed(observations []string, tag string) bool {
	for _, o := range observations {
		if o == tag {
			return true
		}
	}
	return false
}
