package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/orgball2608/insta-feed/pkg/logger"
)

// Config bounds one retried operation. Zero fields fall back to
// DefaultConfig.
type Config struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// DefaultConfig suits background work such as the first database ping.
func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      1.5,
	}
}

// Interactive gives up quickly. Use it for anything a user is waiting on,
// like an image under a spinner or a share.
func Interactive() Config {
	return Config{
		MaxRetries:      2,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     time.Second,
		Multiplier:      2,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.InitialInterval <= 0 {
		c.InitialInterval = def.InitialInterval
	}
	if c.MaxInterval <= 0 {
		c.MaxInterval = def.MaxInterval
	}
	if c.Multiplier < 1 {
		c.Multiplier = def.Multiplier
	}
	return c
}

// Permanent marks err as not worth retrying. Do returns it unwrapped.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs operation until it succeeds, returns a permanent error, the retry
// budget is spent or ctx is done. Every failed attempt is logged at warn.
func Do(ctx context.Context, log logger.Logger, operationName string, operation func() error, cfg Config) error {
	cfg = cfg.withDefaults()

	bo := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(cfg.InitialInterval),
		backoff.WithMaxInterval(cfg.MaxInterval),
		backoff.WithMultiplier(cfg.Multiplier),
		backoff.WithMaxElapsedTime(0),
	)

	attempt := 0
	notify := func(err error, next time.Duration) {
		attempt++
		log.Warn("Operation failed, retrying",
			"operation", operationName,
			"attempt", attempt,
			"error", err,
			"next_attempt_in", next.Round(time.Millisecond).String(),
		)
	}

	return backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(bo, cfg.MaxRetries), ctx), notify)
}
