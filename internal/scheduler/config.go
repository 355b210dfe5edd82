package scheduler

import (
	"time"
)

// Config controls the scheduler run interval and per-job timeouts.
type Config struct {
	RunInterval         time.Duration
	SubscriptionTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		RunInterval:         time.Hour,
		SubscriptionTimeout: 10 * time.Minute,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RunInterval <= 0 {
		c.RunInterval = defaults.RunInterval
	}
	if c.SubscriptionTimeout <= 0 {
		c.SubscriptionTimeout = defaults.SubscriptionTimeout
	}
	return c
}
