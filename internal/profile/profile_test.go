package profile

import (
	"testing"
	"time"
)

func TestAnalyze_BullishMondayLowRun(t *testing.T) {
	for _, weekday := range []time.Weekday{time.Tuesday, time.Wednesday} {
		profiles := Analyze(BiasBullish, []string{ObservationMonLowRun}, weekday)
		if len(profiles) != 1 {
			t.Fatalf("%v: expected 1 profile, got %d", weekday, len(profiles))
		}
		if profiles[0].Name != "Classic Tuesday/Wednesday Low of the Week" {
			t.Errorf("%v: unexpected profile %q", weekday, profiles[0].Name)
		}
		if profiles[0].Probability != "High" {
			t.Errorf("%v: probability = %q, want High", weekday, profiles[0].Probability)
		}
	}
}

func TestAnalyze_BearishMirror(t *testing.T) {
	profiles := Analyze(BiasBearish, []string{ObservationMonHighRun}, time.Tuesday)
	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}
	if profiles[0].Name != "Classic Tuesday/Wednesday High of the Week" {
		t.Errorf("unexpected profile %q", profiles[0].Name)
	}
}

func TestAnalyze_FallbackWhenNothingConfirmed(t *testing.T) {
	tests := []struct {
		name         string
		bias         string
		observations []string
		weekday      time.Weekday
	}{
		{"no observations", BiasBullish, nil, time.Tuesday},
		{"wrong weekday", BiasBullish, []string{ObservationMonLowRun}, time.Thursday},
		{"wrong bias for observation", BiasBearish, []string{ObservationMonLowRun}, time.Tuesday},
		{"unknown bias", "Sideways", []string{ObservationMonLowRun}, time.Tuesday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := Analyze(tt.bias, tt.observations, tt.weekday)
			if len(profiles) != 1 {
				t.Fatalf("expected 1 fallback profile, got %d", len(profiles))
			}
			if profiles[0].Name != "Awaiting Clarity" {
				t.Errorf("expected fallback profile, got %q", profiles[0].Name)
			}
		})
	}
}
