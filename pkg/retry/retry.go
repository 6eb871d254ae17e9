// Package retry runs an operation with exponential backoff and jitter.
// It is used for startup connections to Postgres and Redis, where a few
// seconds of patience beats crashing during an orchestrated deploy.
package retry

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Config contains retry behavior
type Config struct {
	// MaxRetries is the number of attempts after the first one
	MaxRetries int
	// InitialInterval is the first backoff interval
	InitialInterval time.Duration
	// MaxInterval caps the backoff growth
	MaxInterval time.Duration
	// Multiplier grows the interval after each attempt
	Multiplier float64
	// JitterFactor randomizes each interval by up to this fraction
	JitterFactor float64
}

// DefaultConfig backs off 1s, 2s, 4s, 8s, 16s with 10% jitter
func DefaultConfig() *Config {
	return &Config{
		MaxRetries:      5,
		InitialInterval: time.Second,
		MaxInterval:     30 * time.Second,
		Multiplier:      2.0,
		JitterFactor:    0.1,
	}
}

// Operation is the function to be retried
type Operation func(ctx context.Context) error

// Do runs op until it succeeds, the attempts run out, or ctx is done.
// Every error is treated as retryable; the last one is returned.
func Do(ctx context.Context, cfg *Config, op Operation) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(cfg.interval(attempt)):
			case <-ctx.Done():
				return fmt.Errorf("retry canceled after %d attempts: %w", attempt, ctx.Err())
			}
		}

		if lastErr = op(ctx); lastErr == nil {
			return nil
		}
	}

	return fmt.Errorf("failed after %d attempts: %w", cfg.MaxRetries+1, lastErr)
}

// interval computes the backoff for the given attempt (1-based)
func (c *Config) interval(attempt int) time.Duration {
	backoff := float64(c.InitialInterval) * math.Pow(c.Multiplier, float64(attempt-1))
	if max := float64(c.MaxInterval); backoff > max {
		backoff = max
	}
	if c.JitterFactor > 0 {
		delta := backoff * c.JitterFactor
		backoff = backoff - delta + rand.Float64()*2*delta
	}
	return time.Duration(backoff)
}
