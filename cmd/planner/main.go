// Command planner serves the daily US-index trading plan: it keeps the
// imported economic-calendar events on disk, classifies each day and exposes
// the dashboard.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/eddiefleurent/newsday_planner/internal/calendar"
	"github.com/eddiefleurent/newsday_planner/internal/config"
	"github.com/eddiefleurent/newsday_planner/internal/dashboard"
	"github.com/eddiefleurent/newsday_planner/internal/retry"
	"github.com/eddiefleurent/newsday_planner/internal/schedule"
	"github.com/eddiefleurent/newsday_planner/internal/source"
	"github.com/eddiefleurent/newsday_planner/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to configuration file")
	flag.Parse()

	logger := logrus.New()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.Environment.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatalf("Failed to resolve market timezone: %v", err)
	}

	clock, err := schedule.NewClock(loc, cfg.Schedule.MarketOpen, cfg.Schedule.MarketClose)
	if err != nil {
		logger.Fatalf("Failed to build market clock: %v", err)
	}

	store, err := storage.NewStorage(cfg.Storage.Path)
	if err != nil {
		logger.Fatalf("Failed to open storage: %v", err)
	}

	analyzer := calendar.NewAnalyzer(cfg.CalendarConfig())

	var feed source.Source
	if cfg.Feed.URL != "" {
		feed = source.NewHTTPSource(cfg.Feed.URL, cfg.FetchTimeout())
	} else {
		feed = source.NewFileSource(cfg.Feed.Path)
	}
	fetcher := retry.NewClient(feed, logger)

	srv := dashboard.NewServer(
		dashboard.Config{Port: cfg.Dashboard.Port, AuthToken: cfg.Dashboard.AuthToken},
		store,
		analyzer,
		clock,
		fetcher,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received, stopping planner...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if interval := cfg.RefreshInterval(); interval > 0 {
		g.Go(func() error {
			runRefreshLoop(ctx, logger, fetcher, store, interval)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Fatalf("Planner error: %v", err)
	}
	logger.Info("Planner stopped")
}

// runRefreshLoop re-imports the feed on a fixed cadence, starting with one
// immediate refresh so a fresh deployment has data without waiting a full
// interval.
func runRefreshLoop(
	ctx context.Context,
	logger *logrus.Logger,
	fetcher *retry.Client,
	store storage.Interface,
	interval time.Duration,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	refresh := func() {
		records, err := fetcher.FetchWithRetry(ctx)
		if err != nil {
			logger.WithError(err).Warn("Scheduled feed refresh failed")
			return
		}
		inserted, deleted, err := store.ReplaceEvents(records)
		if err != nil {
			logger.WithError(err).Error("Failed to store refreshed events")
			return
		}
		logger.Infof("Feed refreshed: %d records removed, %d records added", deleted, inserted)
	}

	refresh()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh()
		}
	}
}
