package observability

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Manager bundles logging, metrics and tracing behind one handle so the
// rest of the codebase carries a single dependency.
type Manager struct {
	logging *Logger
	metrics *MetricsManager
	tracing *TracingManager
}

type Config struct {
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	Tracing TracingConfig `yaml:"tracing" mapstructure:"tracing"`
}

func NewManager(config Config) (*Manager, error) {
	logging, err := NewLogger(config.Logging)
	if err != nil {
		return nil, err
	}

	tracing, err := NewTracingManager(config.Tracing)
	if err != nil {
		return nil, err
	}

	return &Manager{
		logging: logging,
		metrics: NewMetricsManager(config.Metrics),
		tracing: tracing,
	}, nil
}

// NopManager returns a manager with logging, metrics and tracing all
// disabled. Benchmarks and tests use it.
func NopManager() *Manager {
	tracing, _ := NewTracingManager(TracingConfig{})
	return &Manager{
		logging: NopLogger(),
		metrics: NewMetricsManager(MetricsConfig{}),
		tracing: tracing,
	}
}

func (m *Manager) Logger() zerolog.Logger {
	return m.logging.GetZerologLogger()
}

func (m *Manager) Logging() *Logger {
	return m.logging
}

func (m *Manager) Metrics() *MetricsManager {
	return m.metrics
}

func (m *Manager) Tracing() *TracingManager {
	return m.tracing
}

func (m *Manager) Tracer() trace.Tracer {
	return m.tracing.GetTracer()
}

func (m *Manager) StartGameOperation(ctx context.Context, operation, gameID string) (context.Context, trace.Span) {
	return m.tracing.StartGameOperation(ctx, operation, gameID)
}

func (m *Manager) SetSpanError(span trace.Span, err error) {
	m.tracing.SetSpanError(span, err)
}

func (m *Manager) RecordGameCreated() {
	m.metrics.RecordGameCreated()
}

func (m *Manager) RecordGameFinished(winner string) {
	m.metrics.RecordGameFinished(winner)
}

func (m *Manager) RecordPlay(duration time.Duration, ok bool) {
	m.metrics.RecordPlay(duration, ok)
}

func (m *Manager) SetLiveGames(count int) {
	m.metrics.SetLiveGames(count)
}

func (m *Manager) RecordBenchRun(name string, iterations int64) {
	m.metrics.RecordBenchRun(name, iterations)
}

func (m *Manager) Shutdown(ctx context.Context) error {
	return m.tracing.Shutdown(ctx)
}
