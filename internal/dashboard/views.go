package dashboard

import (
	"time"

	"github.com/eddiefleurent/newsday_planner/internal/models"
)

// DashboardData is everything the page template needs.
type DashboardData struct {
	Date         string
	Weekday      string
	MarketClosed bool
	Plan         models.Plan
	PlanClass    string
	Reason       string
	Morning      []EventView
	Afternoon    []EventView
	AllDay       []EventView
	MarketStatus string
	UntilOpen    string
	LastImport   string
	HasRefresh   bool
}

// EventView is one row on the event timeline.
type EventView struct {
	Name        string
	Currency    string
	Impact      string
	Time        string
	ImpactClass string
}

func (s *Server) dashboardData(date time.Time) DashboardData {
	now := s.clock.Now()
	data := DashboardData{
		Date:         date.Format("Monday, 02 Jan 2006"),
		Weekday:      date.Weekday().String(),
		MarketStatus: s.clock.Status(now),
		HasRefresh:   s.fetcher != nil,
	}

	if until := s.clock.UntilOpen(now); until > 0 {
		data.UntilOpen = until.Round(time.Minute).String()
	}
	if last := s.storage.LastImport(); !last.IsZero() {
		data.LastImport = last.In(now.Location()).Format("02 Jan 2006 15:04 MST")
	}

	// The date is a calendar day, not an instant. Converting it through the
	// market timezone would shift midnight UTC back a day.
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		data.MarketClosed = true
		return data
	}

	analysis := s.analyzeDate(date)
	data.Plan = analysis.Plan
	data.PlanClass = planClass(analysis.Plan)
	data.Reason = analysis.Reason
	if analysis.Plan == models.PlanStandard && analysis.EventCount() == 0 {
		data.Reason = "No economic events found."
	}
	data.Morning = eventViews(analysis.Morning)
	data.Afternoon = eventViews(analysis.Afternoon)
	data.AllDay = eventViews(analysis.AllDay)
	return data
}

func planClass(plan models.Plan) string {
	switch plan {
	case models.PlanNoTrade:
		return "no-trade"
	case models.PlanNewsDay:
		return "news-day"
	default:
		return "standard-day"
	}
}

func eventViews(events []models.Event) []EventView {
	views := make([]EventView, len(events))
	for i, ev := range events {
		views[i] = EventView{
			Name:        ev.Name,
			Currency:    ev.Currency,
			Impact:      ev.Impact,
			Time:        ev.Time,
			ImpactClass: impactClass(ev.Impact),
		}
	}
	return views
}

func impactClass(impact string) string {
	switch impact {
	case models.ImpactHigh, models.ImpactHighForced:
		return "event-high"
	case models.ImpactMedium:
		return "event-medium"
	default:
		return "event-low"
	}
}
