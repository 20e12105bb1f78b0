package schedule

import (
	"testing"
	"time"
)

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("loading timezone: %v", err)
	}
	return loc
}

func testClock(t *testing.T) (*Clock, *time.Location) {
	t.Helper()
	loc := newYork(t)
	clock, err := NewClock(loc, "09:30", "16:00")
	if err != nil {
		t.Fatalf("NewClock: %v", err)
	}
	return clock, loc
}

func TestNewClock_InvalidBounds(t *testing.T) {
	if _, err := NewClock(time.UTC, "9:30am", "16:00"); err == nil {
		t.Error("expected error for non-HH:MM open time")
	}
	if _, err := NewClock(time.UTC, "09:30", ""); err == nil {
		t.Error("expected error for empty close time")
	}
}

func TestClock_IsOpen(t *testing.T) {
	clock, loc := testClock(t)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{
			name: "mid session tuesday",
			at:   time.Date(2025, time.July, 1, 10, 30, 0, 0, loc),
			want: true,
		},
		{
			name: "exactly at the open",
			at:   time.Date(2025, time.July, 1, 9, 30, 0, 0, loc),
			want: true,
		},
		{
			name: "exactly at the close",
			at:   time.Date(2025, time.July, 1, 16, 0, 0, 0, loc),
			want: false,
		},
		{
			name: "pre-market",
			at:   time.Date(2025, time.July, 1, 8, 0, 0, 0, loc),
			want: false,
		},
		{
			name: "saturday",
			at:   time.Date(2025, time.July, 5, 10, 30, 0, 0, loc),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clock.IsOpen(tt.at); got != tt.want {
				t.Errorf("IsOpen(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestClock_Status(t *testing.T) {
	clock, loc := testClock(t)

	if got := clock.Status(time.Date(2025, time.July, 1, 10, 0, 0, 0, loc)); got != StatusOpen {
		t.Errorf("mid-session status = %q, want %q", got, StatusOpen)
	}
	if got := clock.Status(time.Date(2025, time.July, 1, 7, 0, 0, 0, loc)); got != StatusPreMarket {
		t.Errorf("early-morning status = %q, want %q", got, StatusPreMarket)
	}
	if got := clock.Status(time.Date(2025, time.July, 1, 17, 0, 0, 0, loc)); got != StatusClosed {
		t.Errorf("after-hours status = %q, want %q", got, StatusClosed)
	}
	if got := clock.Status(time.Date(2025, time.July, 6, 12, 0, 0, 0, loc)); got != StatusClosed {
		t.Errorf("sunday status = %q, want %q", got, StatusClosed)
	}
}

func TestClock_NextOpen(t *testing.T) {
	clock, loc := testClock(t)

	tests := []struct {
		name string
		at   time.Time
		want time.Time
	}{
		{
			name: "before the bell opens same day",
			at:   time.Date(2025, time.July, 1, 8, 0, 0, 0, loc),
			want: time.Date(2025, time.July, 1, 9, 30, 0, 0, loc),
		},
		{
			name: "after the close rolls to next day",
			at:   time.Date(2025, time.July, 1, 16, 30, 0, 0, loc),
			want: time.Date(2025, time.July, 2, 9, 30, 0, 0, loc),
		},
		{
			name: "friday evening rolls to monday",
			at:   time.Date(2025, time.July, 4, 18, 0, 0, 0, loc),
			want: time.Date(2025, time.July, 7, 9, 30, 0, 0, loc),
		},
		{
			name: "saturday rolls to monday",
			at:   time.Date(2025, time.July, 5, 12, 0, 0, 0, loc),
			want: time.Date(2025, time.July, 7, 9, 30, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clock.NextOpen(tt.at); !got.Equal(tt.want) {
				t.Errorf("NextOpen(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestClock_UntilOpen(t *testing.T) {
	clock, loc := testClock(t)

	at := time.Date(2025, time.July, 1, 9, 0, 0, 0, loc)
	if got := clock.UntilOpen(at); got != 30*time.Minute {
		t.Errorf("UntilOpen = %v, want 30m", got)
	}

	during := time.Date(2025, time.July, 1, 10, 0, 0, 0, loc)
	if got := clock.UntilOpen(during); got != 0 {
		t.Errorf("UntilOpen during session = %v, want 0", got)
	}
}

func TestWeekRange(t *testing.T) {
	loc := newYork(t)

	tests := []struct {
		name       string
		at         time.Time
		wantMonday time.Time
		wantFriday time.Time
	}{
		{
			name:       "wednesday stays in current week",
			at:         time.Date(2025, time.July, 2, 15, 0, 0, 0, loc),
			wantMonday: time.Date(2025, time.June, 30, 0, 0, 0, 0, loc),
			wantFriday: time.Date(2025, time.July, 4, 0, 0, 0, 0, loc),
		},
		{
			name:       "monday is its own start",
			at:         time.Date(2025, time.June, 30, 1, 0, 0, 0, loc),
			wantMonday: time.Date(2025, time.June, 30, 0, 0, 0, 0, loc),
			wantFriday: time.Date(2025, time.July, 4, 0, 0, 0, 0, loc),
		},
		{
			name:       "saturday rolls to next week",
			at:         time.Date(2025, time.July, 5, 12, 0, 0, 0, loc),
			wantMonday: time.Date(2025, time.July, 7, 0, 0, 0, 0, loc),
			wantFriday: time.Date(2025, time.July, 11, 0, 0, 0, 0, loc),
		},
		{
			name:       "sunday rolls to next week",
			at:         time.Date(2025, time.July, 6, 12, 0, 0, 0, loc),
			wantMonday: time.Date(2025, time.July, 7, 0, 0, 0, 0, loc),
			wantFriday: time.Date(2025, time.July, 11, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monday, friday := WeekRange(tt.at)
			if !monday.Equal(tt.wantMonday) {
				t.Errorf("monday = %v, want %v", monday, tt.wantMonday)
			}
			if !friday.Equal(tt.wantFriday) {
				t.Errorf("friday = %v, want %v", friday, tt.wantFriday)
			}
		})
	}
}

func TestInWeek(t *testing.T) {
	monday := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	friday := time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC)

	if !InWeek(time.Date(2025, time.July, 2, 0, 0, 0, 0, time.UTC), monday, friday) {
		t.Error("wednesday should be in week")
	}
	if !InWeek(monday, monday, friday) || !InWeek(friday, monday, friday) {
		t.Error("range should be inclusive at both ends")
	}
	if InWeek(time.Date(2025, time.July, 5, 0, 0, 0, 0, time.UTC), monday, friday) {
		t.Error("saturday should not be in week")
	}
}
