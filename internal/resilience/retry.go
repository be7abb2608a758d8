package resilience

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

type RetryConfig struct {
	Enabled           bool          `yaml:"enabled" mapstructure:"enabled"`
	MaxAttempts       int           `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialDelay      time.Duration `yaml:"initial_delay" mapstructure:"initial_delay"`
	MaxDelay          time.Duration `yaml:"max_delay" mapstructure:"max_delay"`
	BackoffMultiplier float64       `yaml:"backoff_multiplier" mapstructure:"backoff_multiplier"`
	JitterEnabled     bool          `yaml:"jitter_enabled" mapstructure:"jitter_enabled"`
	JitterFactor      float64       `yaml:"jitter_factor" mapstructure:"jitter_factor"`
}

// DefaultRetryConfig suits short HTTP calls against the game server.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Enabled:           true,
		MaxAttempts:       3,
		InitialDelay:      100 * time.Millisecond,
		MaxDelay:          2 * time.Second,
		BackoffMultiplier: 2.0,
		JitterEnabled:     true,
		JitterFactor:      0.2,
	}
}

type RetryManager struct {
	config RetryConfig
}

func NewRetryManager(config RetryConfig) *RetryManager {
	return &RetryManager{config: config}
}

type IsRetryableError func(error) bool

// TransientErrors matches connection level failures worth retrying.
// Application errors from the server are never retried.
func TransientErrors(err error) bool {
	if err == nil {
		return false
	}

	errorStr := err.Error()
	return strings.Contains(errorStr, "connection refused") ||
		strings.Contains(errorStr, "connection reset") ||
		strings.Contains(errorStr, "timeout") ||
		strings.Contains(errorStr, "temporary failure") ||
		strings.Contains(errorStr, "service unavailable") ||
		strings.Contains(errorStr, "EOF")
}

func (rm *RetryManager) Execute(ctx context.Context, fn func() error, isRetryable IsRetryableError) error {
	if !rm.config.Enabled {
		return fn()
	}

	var lastErr error

	for attempt := 1; attempt <= rm.config.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err

		if !isRetryable(err) {
			return err
		}

		if attempt == rm.config.MaxAttempts {
			break
		}

		delay := rm.calculateDelay(attempt)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", rm.config.MaxAttempts, lastErr)
}

func (rm *RetryManager) calculateDelay(attempt int) time.Duration {
	multiplier := math.Pow(rm.config.BackoffMultiplier, float64(attempt-1))
	delay := time.Duration(float64(rm.config.InitialDelay) * multiplier)

	if rm.config.JitterEnabled {
		delay = rm.applyJitter(delay)
	}

	if delay > rm.config.MaxDelay {
		delay = rm.config.MaxDelay
	}

	return delay
}

func (rm *RetryManager) applyJitter(delay time.Duration) time.Duration {
	if rm.config.JitterFactor <= 0 || rm.config.JitterFactor >= 1 {
		return delay
	}

	jitter := rm.config.JitterFactor * float64(delay)
	randomJitter := (rand.Float64()*2 - 1) * jitter

	finalDelay := time.Duration(float64(delay) + randomJitter)
	if finalDelay < 0 {
		finalDelay = time.Duration(float64(delay) * 0.1)
	}

	return finalDelay
}

func (rm *RetryManager) IsEnabled() bool {
	return rm.config.Enabled
}
