package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	Path      string `yaml:"path" mapstructure:"path"`
	Namespace string `yaml:"namespace" mapstructure:"namespace"`
}

type MetricsManager struct {
	config   MetricsConfig
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	gamesCreated  prometheus.Counter
	gamesFinished *prometheus.CounterVec
	liveGames     prometheus.Gauge

	playsTotal   *prometheus.CounterVec
	playDuration prometheus.Histogram

	benchRuns       *prometheus.CounterVec
	benchIterations *prometheus.CounterVec
}

func NewMetricsManager(config MetricsConfig) *MetricsManager {
	if !config.Enabled {
		return &MetricsManager{config: config}
	}

	registry := prometheus.NewRegistry()

	namespace := config.Namespace
	if namespace == "" {
		namespace = "gouji"
	}

	mm := &MetricsManager{
		config:   config,
		registry: registry,
	}

	mm.httpRequestsTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	mm.httpRequestDuration = promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	mm.gamesCreated = promauto.With(registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "created_total",
			Help:      "Total number of games created",
		},
	)

	mm.gamesFinished = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "finished_total",
			Help:      "Total number of games finished",
		},
		[]string{"winner"},
	)

	mm.liveGames = promauto.With(registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "live",
			Help:      "Number of games currently in memory",
		},
	)

	mm.playsTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "plays_total",
			Help:      "Total number of submitted plays",
		},
		[]string{"status"},
	)

	mm.playDuration = promauto.With(registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "play_duration_seconds",
			Help:      "Time spent applying a single play",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		},
	)

	mm.benchRuns = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bench",
			Name:      "runs_total",
			Help:      "Total number of benchmark runs",
		},
		[]string{"benchmark"},
	)

	mm.benchIterations = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bench",
			Name:      "iterations_total",
			Help:      "Total number of measured benchmark iterations",
		},
		[]string{"benchmark"},
	)

	return mm
}

func (mm *MetricsManager) IsEnabled() bool {
	return mm.config.Enabled && mm.registry != nil
}

func (mm *MetricsManager) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	if !mm.IsEnabled() {
		return
	}
	mm.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	mm.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (mm *MetricsManager) RecordGameCreated() {
	if !mm.IsEnabled() {
		return
	}
	mm.gamesCreated.Inc()
}

func (mm *MetricsManager) RecordGameFinished(winner string) {
	if !mm.IsEnabled() {
		return
	}
	mm.gamesFinished.WithLabelValues(winner).Inc()
}

func (mm *MetricsManager) SetLiveGames(count int) {
	if !mm.IsEnabled() {
		return
	}
	mm.liveGames.Set(float64(count))
}

func (mm *MetricsManager) RecordPlay(duration time.Duration, ok bool) {
	if !mm.IsEnabled() {
		return
	}
	status := "ok"
	if !ok {
		status = "rejected"
	}
	mm.playsTotal.WithLabelValues(status).Inc()
	mm.playDuration.Observe(duration.Seconds())
}

func (mm *MetricsManager) RecordBenchRun(name string, iterations int64) {
	if !mm.IsEnabled() {
		return
	}
	mm.benchRuns.WithLabelValues(name).Inc()
	mm.benchIterations.WithLabelValues(name).Add(float64(iterations))
}

func (mm *MetricsManager) Handler() http.Handler {
	if !mm.IsEnabled() {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "metrics disabled", http.StatusNotFound)
		})
	}
	return promhttp.HandlerFor(mm.registry, promhttp.HandlerOpts{})
}

// MetricsMiddleware records request counters and latency per route.
func (mm *MetricsManager) MetricsMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !mm.IsEnabled() {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapped := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			mm.RecordHTTPRequest(r.Method, r.URL.Path, wrapped.statusCode, time.Since(start))
		})
	}
}

type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (mrw *metricsResponseWriter) WriteHeader(statusCode int) {
	mrw.statusCode = statusCode
	mrw.ResponseWriter.WriteHeader(statusCode)
}
