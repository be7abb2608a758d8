package bench

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/rs/zerolog"

	"github.com/gouji-dev/gouji/internal/observability"
)

// Benchmark is a single timed workload. Setup runs once before the
// warm-up phase and its cost is never measured.
type Benchmark struct {
	Name  string
	Setup func() error
	Fn    func()
}

// Options controls how the runner times each benchmark.
type Options struct {
	// WarmupRounds iterations run before measurement starts.
	WarmupRounds int
	// MinRounds is the minimum number of measured iterations.
	MinRounds int
	// MaxTime caps the measured phase wall clock. The runner always
	// completes MinRounds even when that exceeds MaxTime.
	MaxTime time.Duration
	// Filter restricts the suite to benchmarks whose name matches
	// the regular expression. Empty means run everything.
	Filter string
}

// DefaultOptions mirrors the defaults of the command line flags.
func DefaultOptions() Options {
	return Options{
		WarmupRounds: 5,
		MinRounds:    20,
		MaxTime:      10 * time.Second,
	}
}

// Result holds the measured timings for one benchmark.
type Result struct {
	Name      string
	Rounds    int
	Total     time.Duration
	Durations []time.Duration
	Stats     Stats
	Hist      *hdrhistogram.Histogram
}

// Percentile returns the latency at the given quantile in seconds.
func (r *Result) Percentile(q float64) float64 {
	if r.Hist == nil {
		return 0
	}
	return float64(r.Hist.ValueAtQuantile(q)) / 1e9
}

// Runner executes benchmarks and collects their results.
type Runner struct {
	opts   Options
	filter *regexp.Regexp
	obs    *observability.Manager
	logger zerolog.Logger
}

func NewRunner(opts Options, obs *observability.Manager) (*Runner, error) {
	if obs == nil {
		obs = observability.NopManager()
	}
	if opts.WarmupRounds < 0 {
		return nil, fmt.Errorf("warmup rounds must not be negative")
	}
	if opts.MinRounds < 1 {
		return nil, fmt.Errorf("min rounds must be at least 1")
	}

	r := &Runner{
		opts:   opts,
		obs:    obs,
		logger: obs.Logger().With().Str("component", "bench").Logger(),
	}

	if opts.Filter != "" {
		re, err := regexp.Compile(opts.Filter)
		if err != nil {
			return nil, fmt.Errorf("invalid benchmark filter: %w", err)
		}
		r.filter = re
	}

	return r, nil
}

// Run executes every benchmark that passes the filter, in the order
// given. The context is checked between iterations so a cancelled run
// returns the results collected so far along with the context error.
func (r *Runner) Run(ctx context.Context, benchmarks []Benchmark) ([]*Result, error) {
	results := make([]*Result, 0, len(benchmarks))

	for _, b := range benchmarks {
		if r.filter != nil && !r.filter.MatchString(b.Name) {
			continue
		}

		result, err := r.runOne(ctx, b)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	return results, nil
}

func (r *Runner) runOne(ctx context.Context, b Benchmark) (*Result, error) {
	ctx, span := r.obs.Tracing().StartBenchOperation(ctx, b.Name)
	defer span.End()

	r.logger.Info().
		Str("benchmark", b.Name).
		Int("warmup_rounds", r.opts.WarmupRounds).
		Int("min_rounds", r.opts.MinRounds).
		Dur("max_time", r.opts.MaxTime).
		Msg("Running benchmark")

	if b.Setup != nil {
		if err := b.Setup(); err != nil {
			return nil, fmt.Errorf("benchmark %s setup failed: %w", b.Name, err)
		}
	}

	for i := 0; i < r.opts.WarmupRounds; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b.Fn()
	}

	result := &Result{
		Name: b.Name,
		// Nanosecond resolution up to an hour, 3 significant figures.
		Hist: hdrhistogram.New(1, int64(time.Hour), 3),
	}

	deadline := time.Now().Add(r.opts.MaxTime)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		b.Fn()
		elapsed := time.Since(start)

		result.Rounds++
		result.Total += elapsed
		result.Durations = append(result.Durations, elapsed)
		if err := result.Hist.RecordValue(int64(elapsed)); err != nil {
			r.logger.Warn().Err(err).Str("benchmark", b.Name).Msg("Failed to record histogram value")
		}

		if result.Rounds >= r.opts.MinRounds && (r.opts.MaxTime <= 0 || !time.Now().Before(deadline)) {
			break
		}
	}

	seconds := make([]float64, len(result.Durations))
	for i, d := range result.Durations {
		seconds[i] = d.Seconds()
	}
	result.Stats = ComputeStats(seconds)

	r.obs.RecordBenchRun(b.Name, int64(result.Rounds))
	r.logger.Info().
		Str("benchmark", b.Name).
		Int("rounds", result.Rounds).
		Float64("mean_sec", result.Stats.Mean).
		Float64("stddev_sec", result.Stats.StdDev).
		Int("outliers", result.Stats.Outliers).
		Msg("Benchmark finished")

	return result, nil
}
