package resilience

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

type CircuitBreakerConfig struct {
	Enabled          bool          `yaml:"enabled" mapstructure:"enabled"`
	MaxRequests      uint32        `yaml:"max_requests" mapstructure:"max_requests"`
	Interval         time.Duration `yaml:"interval" mapstructure:"interval"`
	Timeout          time.Duration `yaml:"timeout" mapstructure:"timeout"`
	FailureThreshold uint32        `yaml:"failure_threshold" mapstructure:"failure_threshold"`
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// CircuitBreakerManager keeps one breaker per named service.
type CircuitBreakerManager struct {
	config   CircuitBreakerConfig
	breakers map[string]*gobreaker.CircuitBreaker
	mutex    sync.RWMutex
}

func NewCircuitBreakerManager(config CircuitBreakerConfig) *CircuitBreakerManager {
	return &CircuitBreakerManager{
		config:   config,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

func (cbm *CircuitBreakerManager) GetBreaker(serviceName string) *gobreaker.CircuitBreaker {
	if !cbm.config.Enabled {
		return nil
	}

	cbm.mutex.RLock()
	breaker, exists := cbm.breakers[serviceName]
	cbm.mutex.RUnlock()

	if exists {
		return breaker
	}

	cbm.mutex.Lock()
	defer cbm.mutex.Unlock()

	if breaker, exists := cbm.breakers[serviceName]; exists {
		return breaker
	}

	settings := gobreaker.Settings{
		Name:        serviceName,
		MaxRequests: cbm.config.MaxRequests,
		Interval:    cbm.config.Interval,
		Timeout:     cbm.config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cbm.config.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	}

	breaker = gobreaker.NewCircuitBreaker(settings)
	cbm.breakers[serviceName] = breaker

	return breaker
}

// Execute runs fn through the named breaker. With breakers disabled
// the call goes straight through.
func (cbm *CircuitBreakerManager) Execute(serviceName string, fn func() (any, error)) (any, error) {
	breaker := cbm.GetBreaker(serviceName)
	if breaker == nil {
		return fn()
	}
	return breaker.Execute(fn)
}

// IsOpen reports whether the named breaker currently rejects calls.
func (cbm *CircuitBreakerManager) IsOpen(serviceName string) bool {
	cbm.mutex.RLock()
	breaker, exists := cbm.breakers[serviceName]
	cbm.mutex.RUnlock()

	return exists && breaker.State() == gobreaker.StateOpen
}

// IsCircuitOpen reports whether an error came from an open breaker
// rather than the wrapped call.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
