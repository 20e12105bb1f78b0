// Package schedule provides the market clock: session hours in the exchange
// timezone, the countdown to the next open, and trading-week ranges.
package schedule

import (
	"fmt"
	"time"
)

// Session status labels shown on the dashboard.
const (
	StatusOpen      = "OPEN"
	StatusPreMarket = "PRE-MARKET"
	StatusClosed    = "CLOSED"
)

// Clock answers market-session questions in a fixed timezone. The now func
// is injectable for tests.
type Clock struct {
	loc       *time.Location
	openHour  int
	openMin   int
	closeHour int
	closeMin  int
	now       func() time.Time
}

// NewClock builds a Clock for the given location and "HH:MM" session bounds.
func NewClock(loc *time.Location, open, close string) (*Clock, error) {
	openHour, openMin, err := parseClock(open)
	if err != nil {
		return nil, fmt.Errorf("parsing market open: %w", err)
	}
	closeHour, closeMin, err := parseClock(close)
	if err != nil {
		return nil, fmt.Errorf("parsing market close: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{
		loc:       loc,
		openHour:  openHour,
		openMin:   openMin,
		closeHour: closeHour,
		closeMin:  closeMin,
		now:       time.Now,
	}, nil
}

func parseClock(s string) (hour, min int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid HH:MM value %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}

// Now returns the current time in the market timezone.
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// IsWeekend reports whether t falls on Saturday or Sunday in the market
// timezone.
func (c *Clock) IsWeekend(t time.Time) bool {
	wd := t.In(c.loc).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsOpen reports whether the session is trading at t.
func (c *Clock) IsOpen(t time.Time) bool {
	t = t.In(c.loc)
	if c.IsWeekend(t) {
		return false
	}
	open := time.Date(t.Year(), t.Month(), t.Day(), c.openHour, c.openMin, 0, 0, c.loc)
	close := time.Date(t.Year(), t.Month(), t.Day(), c.closeHour, c.closeMin, 0, 0, c.loc)
	return !t.Before(open) && t.Before(close)
}

// Status returns the session label for t.
func (c *Clock) Status(t time.Time) string {
	if c.IsOpen(t) {
		return StatusOpen
	}
	t = t.In(c.loc)
	if !c.IsWeekend(t) {
		open := time.Date(t.Year(), t.Month(), t.Day(), c.openHour, c.openMin, 0, 0, c.loc)
		if t.Before(open) {
			return StatusPreMarket
		}
	}
	return StatusClosed
}

// NextOpen returns the next session open at or after t: same day when the
// bell has not rung yet, otherwise the next weekday.
func (c *Clock) NextOpen(t time.Time) time.Time {
	t = t.In(c.loc)
	open := time.Date(t.Year(), t.Month(), t.Day(), c.openHour, c.openMin, 0, 0, c.loc)
	for !open.After(t) || c.IsWeekend(open) {
		open = open.AddDate(0, 0, 1)
	}
	return open
}

// UntilOpen returns the countdown from t to the next session open. Zero when
// the market is already trading.
func (c *Clock) UntilOpen(t time.Time) time.Duration {
	if c.IsOpen(t) {
		return 0
	}
	return c.NextOpen(t).Sub(t)
}

// WeekRange returns the Monday and Friday of the trading week containing t.
// On weekends it rolls forward to the upcoming week, matching how the feed
// is scraped.
func WeekRange(t time.Time) (monday, friday time.Time) {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	switch wd := day.Weekday(); wd {
	case time.Saturday:
		day = day.AddDate(0, 0, 2)
	case time.Sunday:
		day = day.AddDate(0, 0, 1)
	default:
		day = day.AddDate(0, 0, -(int(wd) - int(time.Monday)))
	}
	return day, day.AddDate(0, 0, 4)
}

// InWeek reports whether d (a calendar date) lies within [monday, friday].
func InWeek(d, monday, friday time.Time) bool {
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, monday.Location())
	return !d.Before(monday) && !d.After(friday)
}
