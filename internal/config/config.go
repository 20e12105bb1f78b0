// Package config provides configuration management for the trading-plan
// service.
package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/eddiefleurent/newsday_planner/internal/calendar"
)

// Defaults applied by Load when a field is unset.
const (
	defaultLogLevel              = "info"
	defaultTimezone              = "America/New_York"
	defaultMarketOpen            = "09:30"
	defaultMarketClose           = "16:00"
	defaultMorningCutoff         = "12:00"
	defaultAfternoonNoTradeStart = "13:55"
	defaultStoragePath           = "events.json"
	defaultFeedPath              = "latest_forex_data.csv"
	defaultFetchTimeout          = 30 * time.Second
	defaultDashboardPort         = 8080
)

// Config represents the complete application configuration.
type Config struct {
	Environment EnvironmentConfig `yaml:"environment"`
	Feed        FeedConfig        `yaml:"feed"`
	Schedule    ScheduleConfig    `yaml:"schedule"`
	Strategy    StrategyConfig    `yaml:"strategy"`
	Storage     StorageConfig     `yaml:"storage"`
	Dashboard   DashboardConfig   `yaml:"dashboard"`
}

// EnvironmentConfig defines the environment settings.
type EnvironmentConfig struct {
	LogLevel string `yaml:"log_level"` // debug | info | warn | error
}

// FeedConfig defines where the scraped calendar feed comes from. When URL is
// set it wins over Path.
type FeedConfig struct {
	Path            string `yaml:"path"`
	URL             string `yaml:"url"`
	FetchTimeout    string `yaml:"fetch_timeout"`    // e.g. "30s"
	RefreshInterval string `yaml:"refresh_interval"` // empty disables the refresh loop
}

// ScheduleConfig defines market hours.
type ScheduleConfig struct {
	Timezone    string `yaml:"timezone"`     // e.g., "America/New_York"
	MarketOpen  string `yaml:"market_open"`  // "HH:MM"
	MarketClose string `yaml:"market_close"` // "HH:MM"
}

// StrategyConfig defines the day-classification rules. Empty keyword lists
// fall back to the built-in defaults.
type StrategyConfig struct {
	MorningCutoff            string   `yaml:"morning_cutoff"`           // "HH:MM"
	AfternoonNoTradeStart    string   `yaml:"afternoon_no_trade_start"` // "HH:MM"
	NoTradeKeywords          []string `yaml:"no_trade_keywords"`
	ForcedHighImpactKeywords []string `yaml:"forced_high_impact_keywords"`
}

// StorageConfig defines storage settings for imported event data.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// DashboardConfig defines the web dashboard settings.
type DashboardConfig struct {
	Port      int    `yaml:"port"`
	AuthToken string `yaml:"auth_token"`
}

// Load reads and parses the configuration file from the specified path.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- configPath is a user-provided config file path
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Environment.LogLevel == "" {
		c.Environment.LogLevel = defaultLogLevel
	}
	if c.Feed.Path == "" && c.Feed.URL == "" {
		c.Feed.Path = defaultFeedPath
	}
	if c.Schedule.Timezone == "" {
		c.Schedule.Timezone = defaultTimezone
	}
	if c.Schedule.MarketOpen == "" {
		c.Schedule.MarketOpen = defaultMarketOpen
	}
	if c.Schedule.MarketClose == "" {
		c.Schedule.MarketClose = defaultMarketClose
	}
	if c.Strategy.MorningCutoff == "" {
		c.Strategy.MorningCutoff = defaultMorningCutoff
	}
	if c.Strategy.AfternoonNoTradeStart == "" {
		c.Strategy.AfternoonNoTradeStart = defaultAfternoonNoTradeStart
	}
	if c.Storage.Path == "" {
		c.Storage.Path = defaultStoragePath
	}
	if c.Dashboard.Port == 0 {
		c.Dashboard.Port = defaultDashboardPort
	}
}

// Validate checks the configuration for consistency problems.
func (c *Config) Validate() error {
	switch c.Environment.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("environment.log_level must be debug, info, warn or error, got %q", c.Environment.LogLevel)
	}

	if c.Dashboard.Port < 1 || c.Dashboard.Port > 65535 {
		return fmt.Errorf("dashboard.port must be 1-65535, got %d", c.Dashboard.Port)
	}

	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		return fmt.Errorf("schedule.timezone: %w", err)
	}

	clocks := []struct {
		name  string
		value string
	}{
		{"schedule.market_open", c.Schedule.MarketOpen},
		{"schedule.market_close", c.Schedule.MarketClose},
		{"strategy.morning_cutoff", c.Strategy.MorningCutoff},
		{"strategy.afternoon_no_trade_start", c.Strategy.AfternoonNoTradeStart},
	}
	for _, clock := range clocks {
		if _, err := time.Parse("15:04", clock.value); err != nil {
			return fmt.Errorf("%s must be HH:MM, got %q", clock.name, clock.value)
		}
	}

	if c.Feed.FetchTimeout != "" {
		if _, err := time.ParseDuration(c.Feed.FetchTimeout); err != nil {
			return fmt.Errorf("feed.fetch_timeout: %w", err)
		}
	}
	if c.Feed.RefreshInterval != "" {
		d, err := time.ParseDuration(c.Feed.RefreshInterval)
		if err != nil {
			return fmt.Errorf("feed.refresh_interval: %w", err)
		}
		if d < time.Minute {
			return fmt.Errorf("feed.refresh_interval must be at least 1m, got %s", d)
		}
	}

	return nil
}

// Location resolves the configured market timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Schedule.Timezone)
}

// CalendarConfig builds the analyzer rules from the strategy section,
// falling back to the built-in keyword lists when none are configured.
func (c *Config) CalendarConfig() calendar.Config {
	cfg := calendar.DefaultConfig()
	if t, ok := calendar.ParseTimeOfDay(c.Strategy.MorningCutoff); ok {
		cfg.MorningCutoff = t
	}
	if t, ok := calendar.ParseTimeOfDay(c.Strategy.AfternoonNoTradeStart); ok {
		cfg.AfternoonNoTradeStart = t
	}
	if len(c.Strategy.NoTradeKeywords) > 0 {
		cfg.NoTradeKeywords = c.Strategy.NoTradeKeywords
	}
	if len(c.Strategy.ForcedHighImpactKeywords) > 0 {
		cfg.ForcedHighImpactKeywords = c.Strategy.ForcedHighImpactKeywords
	}
	return cfg
}

// FetchTimeout returns the feed fetch timeout, defaulting when unset.
func (c *Config) FetchTimeout() time.Duration {
	if c.Feed.FetchTimeout == "" {
		return defaultFetchTimeout
	}
	d, err := time.ParseDuration(c.Feed.FetchTimeout)
	if err != nil {
		return defaultFetchTimeout
	}
	return d
}

// RefreshInterval returns the feed refresh cadence; zero disables the loop.
func (c *Config) RefreshInterval() time.Duration {
	if c.Feed.RefreshInterval == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Feed.RefreshInterval)
	if err != nil {
		return 0
	}
	return d
}
