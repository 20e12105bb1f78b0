// Package retry wraps a feed source with bounded, jittered retries.
package retry

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/eddiefleurent/newsday_planner/internal/models"
	"github.com/eddiefleurent/newsday_planner/internal/source"
)

// Config controls the retry behavior.
type Config struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Timeout        time.Duration
}

// DefaultConfig is tuned for a refresh a human is waiting on: a few quick
// retries, never more than a couple of minutes in total.
var DefaultConfig = Config{
	MaxRetries:     3,
	InitialBackoff: 1 * time.Second,
	MaxBackoff:     30 * time.Second,
	Timeout:        2 * time.Minute,
}

// Client retries feed fetches that fail transiently.
type Client struct {
	source source.Source
	logger *logrus.Logger
	config Config
}

// NewClient creates a retrying client around src. An optional Config
// overrides DefaultConfig.
func NewClient(src source.Source, logger *logrus.Logger, config ...Config) *Client {
	cfg := DefaultConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	return &Client{
		source: src,
		logger: logger,
		config: cfg,
	}
}

// FetchWithRetry fetches the feed, retrying transient failures with
// exponential backoff until the attempt budget or the timeout runs out.
func (c *Client) FetchWithRetry(ctx context.Context) ([]models.EventRecord, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var lastErr error
	backoff := c.config.InitialBackoff

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if err := fetchCtx.Err(); err != nil {
			return nil, fmt.Errorf("feed fetch timed out after %v: %w", c.config.Timeout, err)
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("feed fetch canceled: %w", err)
		}

		c.logger.Debugf("Feed fetch attempt %d/%d", attempt+1, c.config.MaxRetries+1)

		records, err := c.source.Fetch(fetchCtx)
		if err == nil {
			if attempt > 0 {
				c.logger.Infof("Feed fetch succeeded on attempt %d", attempt+1)
			}
			return records, nil
		}

		lastErr = err
		c.logger.WithError(err).Warnf("Feed fetch attempt %d failed", attempt+1)

		if !c.isTransientError(err) || attempt == c.config.MaxRetries {
			break
		}

		c.logger.Debugf("Transient error, retrying in %v", backoff)
		select {
		case <-time.After(backoff):
			backoff = c.calculateNextBackoff(backoff)
		case <-fetchCtx.Done():
			return nil, fmt.Errorf("feed fetch timed out during backoff: %w", fetchCtx.Err())
		case <-ctx.Done():
			return nil, fmt.Errorf("feed fetch canceled during backoff: %w", ctx.Err())
		}
	}

	return nil, fmt.Errorf("feed fetch failed after %d attempts: %w", c.config.MaxRetries+1, lastErr)
}

func (c *Client) calculateNextBackoff(currentBackoff time.Duration) time.Duration {
	backoff := time.Duration(float64(currentBackoff) * 1.5)
	if backoff > c.config.MaxBackoff {
		backoff = c.config.MaxBackoff
	}

	maxJitter := int64(backoff / 4)
	if maxJitter > 0 {
		jitterVal, err := rand.Int(rand.Reader, big.NewInt(maxJitter))
		if err != nil {
			c.logger.WithError(err).Warn("Failed to generate backoff jitter")
		} else {
			backoff += time.Duration(jitterVal.Int64())
		}
	}

	return backoff
}

func (c *Client) isTransientError(err error) bool {
	if err == nil {
		return false
	}

	// A tripped breaker means the upstream is already being backed off;
	// retrying inside the open window would just burn the budget.
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}

	errStr := strings.ToLower(err.Error())
	transientPatterns := []string{
		"timeout",
		"connection refused",
		"connection reset",
		"temporary failure",
		"server error",
		"status 500",
		"status 502",
		"status 503",
		"status 504",
		"status 429",
	}
	for _, pattern := range transientPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}
