// Package dashboard serves the daily trading-plan web UI and JSON API.
package dashboard

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/eddiefleurent/newsday_planner/internal/calendar"
	"github.com/eddiefleurent/newsday_planner/internal/models"
	"github.com/eddiefleurent/newsday_planner/internal/profile"
	"github.com/eddiefleurent/newsday_planner/internal/retry"
	"github.com/eddiefleurent/newsday_planner/internal/schedule"
	"github.com/eddiefleurent/newsday_planner/internal/storage"
)

//go:embed web/templates/*
var templateFS embed.FS

// dateParam is the wire format for ?date= query parameters.
const dateParam = "2006-01-02"

// Server is the dashboard HTTP server.
type Server struct {
	router    *chi.Mux
	server    *http.Server
	storage   storage.Interface
	analyzer  *calendar.Analyzer
	clock     *schedule.Clock
	fetcher   *retry.Client
	logger    *logrus.Logger
	port      int
	authToken string
}

// Config holds the server settings.
type Config struct {
	Port      int
	AuthToken string
}

// NewServer wires the dashboard together. fetcher may be nil, in which case
// the refresh endpoint reports the feature unavailable.
func NewServer(
	cfg Config,
	store storage.Interface,
	analyzer *calendar.Analyzer,
	clock *schedule.Clock,
	fetcher *retry.Client,
	logger *logrus.Logger,
) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		storage:   store,
		analyzer:  analyzer,
		clock:     clock,
		fetcher:   fetcher,
		logger:    logger,
		port:      cfg.Port,
		authToken: cfg.AuthToken,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	if s.authToken != "" {
		s.router.Use(s.authMiddleware)
	}

	s.router.Get("/", s.handleDashboard)
	s.router.Get("/api/plan", s.handleGetPlan)
	s.router.Get("/api/events", s.handleGetEvents)
	s.router.Get("/api/week", s.handleGetWeek)
	s.router.Get("/api/profiles", s.handleGetProfiles)
	s.router.Post("/api/refresh", s.handleRefresh)
	s.router.Get("/health", s.handleHealth)

	s.router.Get("/partials/plan", s.handlePlanPartial)
	s.router.Get("/partials/events", s.handleEventsPartial)
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		token := r.Header.Get("X-Auth-Token")
		if token == "" {
			token = r.URL.Query().Get("token")
		}

		if token != s.authToken {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Infof("Starting dashboard server on port %d", s.port)
	return s.server.ListenAndServe()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// targetDate resolves the ?date= parameter, defaulting to today in the
// market timezone. The bool is false when the parameter is malformed.
func (s *Server) targetDate(r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		now := s.clock.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), true
	}
	d, err := time.Parse(dateParam, raw)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func (s *Server) analyzeDate(d time.Time) models.DayAnalysis {
	return s.analyzer.Analyze(d, s.storage.EventsForDate(d))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	tmpl, err := template.ParseFS(templateFS, "web/templates/dashboard.html", "web/templates/events.html")
	if err != nil {
		s.logger.WithError(err).Error("Failed to parse dashboard template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	date, ok := s.targetDate(r)
	if !ok {
		http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	if err := tmpl.ExecuteTemplate(w, "dashboard.html", s.dashboardData(date)); err != nil {
		s.logger.WithError(err).Error("Failed to execute dashboard template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	date, ok := s.targetDate(r)
	if !ok {
		http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	s.writeJSON(w, s.analyzeDate(date))
}

func (s *Server) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	date, ok := s.targetDate(r)
	if !ok {
		http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	events := s.storage.EventsForDate(date)
	if events == nil {
		events = []models.EventRecord{}
	}
	s.writeJSON(w, events)
}

func (s *Server) handleGetWeek(w http.ResponseWriter, r *http.Request) {
	monday, _ := schedule.WeekRange(s.clock.Now())
	if raw := r.URL.Query().Get("start"); raw != "" {
		d, err := time.Parse(dateParam, raw)
		if err != nil {
			http.Error(w, "invalid start, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		monday, _ = schedule.WeekRange(d)
	}

	days := make([]models.DayAnalysis, 0, 5)
	for i := 0; i < 5; i++ {
		days = append(days, s.analyzeDate(monday.AddDate(0, 0, i)))
	}
	s.writeJSON(w, days)
}

// handleGetProfiles maps the operator's bias and logged observations onto
// weekly playbook profiles for the target date's weekday. Observations
// repeat as ?observed=... parameters.
func (s *Server) handleGetProfiles(w http.ResponseWriter, r *http.Request) {
	date, ok := s.targetDate(r)
	if !ok {
		http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	bias := r.URL.Query().Get("bias")
	observations := r.URL.Query()["observed"]
	s.writeJSON(w, profile.Analyze(bias, observations, date.Weekday()))
}

type refreshResponse struct {
	Inserted int `json:"inserted"`
	Deleted  int `json:"deleted"`
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.fetcher == nil {
		http.Error(w, "feed refresh not configured", http.StatusServiceUnavailable)
		return
	}

	records, err := s.fetcher.FetchWithRetry(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("Feed refresh failed")
		http.Error(w, "feed fetch failed", http.StatusBadGateway)
		return
	}

	inserted, deleted, err := s.storage.ReplaceEvents(records)
	if err != nil {
		s.logger.WithError(err).Error("Failed to store imported events")
		http.Error(w, "storing events failed", http.StatusInternalServerError)
		return
	}

	s.logger.Infof("Feed refreshed: %d records removed, %d records added", deleted, inserted)
	s.writeJSON(w, refreshResponse{Inserted: inserted, Deleted: deleted})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	}
	s.writeJSON(w, health)
}

func (s *Server) handlePlanPartial(w http.ResponseWriter, r *http.Request) {
	tmpl, err := template.ParseFS(templateFS, "web/templates/plan.html")
	if err != nil {
		s.logger.WithError(err).Error("Failed to parse plan template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	date, ok := s.targetDate(r)
	if !ok {
		http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	if err := tmpl.ExecuteTemplate(w, "plan.html", s.dashboardData(date)); err != nil {
		s.logger.WithError(err).Error("Failed to execute plan template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (s *Server) handleEventsPartial(w http.ResponseWriter, r *http.Request) {
	tmpl, err := template.ParseFS(templateFS, "web/templates/events.html")
	if err != nil {
		s.logger.WithError(err).Error("Failed to parse events template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	date, ok := s.targetDate(r)
	if !ok {
		http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	if err := tmpl.ExecuteTemplate(w, "events", s.dashboardData(date)); err != nil {
		s.logger.WithError(err).Error("Failed to execute events template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}
