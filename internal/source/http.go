package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/eddiefleurent/newsday_planner/internal/models"
)

// BreakerSettings configures the circuit breaker around the feed endpoint.
type BreakerSettings struct {
	MaxRequests  uint32        // Max requests when half-open
	Interval     time.Duration // Reset counts interval
	Timeout      time.Duration // Open circuit duration
	MinRequests  uint32        // Min requests before tripping
	FailureRatio float64       // Failure ratio threshold
}

// DefaultBreakerSettings mirror the posture used against other flaky
// upstreams: trip on a 60% failure rate, stay open for 30 seconds.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:  3,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		MinRequests:  5,
		FailureRatio: 0.6,
	}
}

// HTTPSource fetches the feed CSV from a URL, typically the artifact the
// scraper job publishes. Calls go through a circuit breaker so a broken or
// blocked upstream does not get hammered.
type HTTPSource struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewHTTPSource creates an HTTPSource with default breaker settings.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return NewHTTPSourceWithSettings(url, timeout, DefaultBreakerSettings())
}

// NewHTTPSourceWithSettings creates an HTTPSource with custom breaker
// settings.
func NewHTTPSourceWithSettings(url string, timeout time.Duration, settings BreakerSettings) *HTTPSource {
	gbSettings := gobreaker.Settings{
		Name:        "FeedCircuitBreaker",
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests == 0 || counts.Requests < settings.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= settings.FailureRatio
		},
	}

	return &HTTPSource{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(gbSettings),
	}
}

// Fetch downloads and decodes the feed. Breaker-open errors surface as-is so
// callers can tell "upstream is failing" from "row was malformed".
func (s *HTTPSource) Fetch(ctx context.Context) ([]models.EventRecord, error) {
	res, err := s.breaker.Execute(func() (interface{}, error) {
		return s.fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	records, ok := res.([]models.EventRecord)
	if !ok {
		return nil, fmt.Errorf("feed breaker: unexpected result type %T", res)
	}
	return records, nil
}

func (s *HTTPSource) fetch(ctx context.Context) ([]models.EventRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building feed request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	records, err := DecodeCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding feed from %s: %w", s.url, err)
	}
	return records, nil
}
