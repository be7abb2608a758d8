package health

import (
	"context"
	"sync"
	"time"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// ComponentHealth is the check outcome for a single dependency.
type ComponentHealth struct {
	Name      string            `json:"name"`
	Status    Status            `json:"status"`
	Message   string            `json:"message,omitempty"`
	LastCheck time.Time         `json:"last_check"`
	Duration  time.Duration     `json:"duration_ms"`
	Details   map[string]string `json:"details,omitempty"`
}

// SystemHealth aggregates all component checks.
type SystemHealth struct {
	Status     Status                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentHealth `json:"components"`
	Summary    Summary                    `json:"summary"`
}

type Summary struct {
	Total     int `json:"total"`
	Healthy   int `json:"healthy"`
	Unhealthy int `json:"unhealthy"`
	Degraded  int `json:"degraded"`
}

// CheckFunc probes one component.
type CheckFunc func(ctx context.Context) ComponentHealth

// Checker runs registered component probes with a shared timeout.
type Checker struct {
	components map[string]CheckFunc
	results    map[string]ComponentHealth
	mutex      sync.RWMutex
	timeout    time.Duration
}

func NewChecker(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Checker{
		components: make(map[string]CheckFunc),
		results:    make(map[string]ComponentHealth),
		timeout:    timeout,
	}
}

func (hc *Checker) RegisterComponent(name string, checkFunc CheckFunc) {
	hc.mutex.Lock()
	defer hc.mutex.Unlock()
	hc.components[name] = checkFunc
}

// RegisterStore wires any Ping-able dependency as a component.
func (hc *Checker) RegisterStore(name string, store interface{ Ping(context.Context) error }) {
	hc.RegisterComponent(name, func(ctx context.Context) ComponentHealth {
		start := time.Now()
		health := ComponentHealth{
			Name:      name,
			LastCheck: start,
		}

		if err := store.Ping(ctx); err != nil {
			health.Status = StatusUnhealthy
			health.Message = err.Error()
		} else {
			health.Status = StatusHealthy
			health.Message = "Connection successful"
		}

		health.Duration = time.Since(start)
		return health
	})
}

// Check runs all registered probes concurrently and returns the
// aggregated system health.
func (hc *Checker) Check(ctx context.Context) SystemHealth {
	hc.mutex.RLock()
	components := make(map[string]CheckFunc, len(hc.components))
	for name, checkFunc := range hc.components {
		components[name] = checkFunc
	}
	hc.mutex.RUnlock()

	checkCtx, cancel := context.WithTimeout(ctx, hc.timeout)
	defer cancel()

	resultChan := make(chan ComponentHealth, len(components))
	var wg sync.WaitGroup

	for name, checkFunc := range components {
		wg.Add(1)
		go func(n string, cf CheckFunc) {
			defer wg.Done()

			done := make(chan ComponentHealth, 1)
			go func() {
				done <- cf(checkCtx)
			}()

			select {
			case result := <-done:
				resultChan <- result
			case <-checkCtx.Done():
				resultChan <- ComponentHealth{
					Name:      n,
					Status:    StatusUnhealthy,
					Message:   "Health check timeout",
					LastCheck: time.Now(),
					Duration:  hc.timeout,
				}
			}
		}(name, checkFunc)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make(map[string]ComponentHealth)
	for result := range resultChan {
		results[result.Name] = result
	}

	hc.mutex.Lock()
	hc.results = results
	hc.mutex.Unlock()

	return hc.calculateSystemHealth(results)
}

// GetLastResults returns the aggregate of the most recent check
// without probing again.
func (hc *Checker) GetLastResults() SystemHealth {
	hc.mutex.RLock()
	defer hc.mutex.RUnlock()
	return hc.calculateSystemHealth(hc.results)
}

func (hc *Checker) calculateSystemHealth(results map[string]ComponentHealth) SystemHealth {
	summary := Summary{
		Total: len(results),
	}

	for _, result := range results {
		switch result.Status {
		case StatusHealthy:
			summary.Healthy++
		case StatusUnhealthy:
			summary.Unhealthy++
		case StatusDegraded:
			summary.Degraded++
		}
	}

	overallStatus := StatusHealthy
	if summary.Unhealthy > 0 {
		overallStatus = StatusUnhealthy
	} else if summary.Degraded > 0 {
		overallStatus = StatusDegraded
	}

	return SystemHealth{
		Status:     overallStatus,
		Timestamp:  time.Now(),
		Components: results,
		Summary:    summary,
	}
}

// StartPeriodicChecks re-probes on an interval until the context is
// cancelled.
func (hc *Checker) StartPeriodicChecks(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				hc.Check(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}
