package bench

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

// LoadOptions configures an HTTP load attack against a running server.
type LoadOptions struct {
	// TargetURL is hit with GET requests for the whole attack.
	TargetURL string
	// Rate in requests per second.
	Rate int
	// Duration of the attack.
	Duration time.Duration
	// Workers is the initial number of vegeta workers. Zero uses the
	// vegeta default.
	Workers int
}

// LoadReport is the serializable outcome of a load attack.
type LoadReport struct {
	TargetURL   string         `json:"target_url"`
	Rate        int            `json:"rate"`
	DurationSec float64        `json:"duration_sec"`
	Requests    uint64         `json:"requests"`
	Throughput  float64        `json:"throughput"`
	SuccessRate float64        `json:"success_rate"`
	Latency     LoadLatency    `json:"latency"`
	StatusCodes map[string]int `json:"status_codes"`
	Errors      []string       `json:"errors,omitempty"`
}

// LoadLatency holds attack latencies in milliseconds.
type LoadLatency struct {
	MeanMs float64 `json:"mean_ms"`
	P50Ms  float64 `json:"p50_ms"`
	P95Ms  float64 `json:"p95_ms"`
	P99Ms  float64 `json:"p99_ms"`
	MaxMs  float64 `json:"max_ms"`
}

// RunLoadTest fires a constant rate attack and aggregates the results.
// Cancelling the context stops the attack early; the partial results
// are still reported.
func RunLoadTest(ctx context.Context, opts LoadOptions) (*LoadReport, error) {
	if opts.TargetURL == "" {
		return nil, fmt.Errorf("target URL is required")
	}
	if opts.Rate <= 0 {
		return nil, fmt.Errorf("rate must be positive")
	}
	if opts.Duration <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}

	rate := vegeta.Rate{Freq: opts.Rate, Per: time.Second}
	targeter := vegeta.NewStaticTargeter(vegeta.Target{
		Method: "GET",
		URL:    opts.TargetURL,
	})

	var attackerOpts []func(*vegeta.Attacker)
	if opts.Workers > 0 {
		attackerOpts = append(attackerOpts, vegeta.Workers(uint64(opts.Workers)))
	}
	attacker := vegeta.NewAttacker(attackerOpts...)

	var metrics vegeta.Metrics
	results := attacker.Attack(targeter, rate, opts.Duration, "gouji-load")

loop:
	for {
		select {
		case <-ctx.Done():
			attacker.Stop()
			for res := range results {
				metrics.Add(res)
			}
			break loop
		case res, ok := <-results:
			if !ok {
				break loop
			}
			metrics.Add(res)
		}
	}
	metrics.Close()

	report := &LoadReport{
		TargetURL:   opts.TargetURL,
		Rate:        opts.Rate,
		DurationSec: metrics.Duration.Seconds(),
		Requests:    metrics.Requests,
		Throughput:  metrics.Throughput,
		SuccessRate: metrics.Success * 100,
		Latency: LoadLatency{
			MeanMs: float64(metrics.Latencies.Mean) / float64(time.Millisecond),
			P50Ms:  float64(metrics.Latencies.P50) / float64(time.Millisecond),
			P95Ms:  float64(metrics.Latencies.P95) / float64(time.Millisecond),
			P99Ms:  float64(metrics.Latencies.P99) / float64(time.Millisecond),
			MaxMs:  float64(metrics.Latencies.Max) / float64(time.Millisecond),
		},
		StatusCodes: metrics.StatusCodes,
		Errors:      metrics.Errors,
	}
	return report, nil
}

// WriteJSON saves the load report to path.
func (lr *LoadReport) WriteJSON(path string) error {
	data, err := json.MarshalIndent(lr, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal load report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write load report: %w", err)
	}
	return nil
}

// PrintSummary writes a human readable load summary to stdout.
func (lr *LoadReport) PrintSummary() {
	fmt.Printf("\n=== Load Test Summary: %s ===\n", lr.TargetURL)
	fmt.Printf("Requests: %d (%.1f req/s sustained)\n", lr.Requests, lr.Throughput)
	fmt.Printf("Success Rate: %.2f%%\n", lr.SuccessRate)
	fmt.Printf("Latency: mean %.2fms, p50 %.2fms, p95 %.2fms, p99 %.2fms, max %.2fms\n",
		lr.Latency.MeanMs, lr.Latency.P50Ms, lr.Latency.P95Ms, lr.Latency.P99Ms, lr.Latency.MaxMs)
	if len(lr.Errors) > 0 {
		fmt.Printf("Errors:\n")
		for _, e := range lr.Errors {
			fmt.Printf("  %s\n", e)
		}
	}
}
