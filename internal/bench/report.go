package bench

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"
)

// MachineInfo describes the host a suite ran on.
type MachineInfo struct {
	Hostname  string `json:"hostname"`
	GOOS      string `json:"goos"`
	GOARCH    string `json:"goarch"`
	NumCPU    int    `json:"num_cpu"`
	GoVersion string `json:"go_version"`
}

// ResultReport is the serializable form of a benchmark result.
type ResultReport struct {
	Name         string  `json:"name"`
	Rounds       int     `json:"rounds"`
	TotalSec     float64 `json:"total_sec"`
	Stats        Stats   `json:"stats"`
	P50Sec       float64 `json:"p50_sec"`
	P95Sec       float64 `json:"p95_sec"`
	P99Sec       float64 `json:"p99_sec"`
	OpsPerSec    float64 `json:"ops_per_sec"`
	HistogramPNG string  `json:"histogram_png,omitempty"`
}

// SuiteReport is the top level JSON document a benchmark run emits.
type SuiteReport struct {
	CreatedAt    time.Time      `json:"created_at"`
	Machine      MachineInfo    `json:"machine"`
	WarmupRounds int            `json:"warmup_rounds"`
	MinRounds    int            `json:"min_rounds"`
	MaxTimeSec   float64        `json:"max_time_sec"`
	Results      []ResultReport `json:"results"`
}

// NewSuiteReport assembles the report for a finished run.
func NewSuiteReport(opts Options, results []*Result) *SuiteReport {
	hostname, _ := os.Hostname()

	report := &SuiteReport{
		CreatedAt: time.Now().UTC(),
		Machine: MachineInfo{
			Hostname:  hostname,
			GOOS:      runtime.GOOS,
			GOARCH:    runtime.GOARCH,
			NumCPU:    runtime.NumCPU(),
			GoVersion: runtime.Version(),
		},
		WarmupRounds: opts.WarmupRounds,
		MinRounds:    opts.MinRounds,
		MaxTimeSec:   opts.MaxTime.Seconds(),
		Results:      make([]ResultReport, 0, len(results)),
	}

	for _, r := range results {
		rr := ResultReport{
			Name:     r.Name,
			Rounds:   r.Rounds,
			TotalSec: r.Total.Seconds(),
			Stats:    r.Stats,
			P50Sec:   r.Percentile(50),
			P95Sec:   r.Percentile(95),
			P99Sec:   r.Percentile(99),
		}
		if r.Stats.Mean > 0 {
			rr.OpsPerSec = 1 / r.Stats.Mean
		}
		report.Results = append(report.Results, rr)
	}

	return report
}

// WriteJSON saves the report with indentation so it diffs cleanly
// between runs.
func (sr *SuiteReport) WriteJSON(path string) error {
	data, err := json.MarshalIndent(sr, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// PrintSummary writes a human readable table of the results to stdout.
func (sr *SuiteReport) PrintSummary() {
	fmt.Printf("\n=== Benchmark Summary (%s/%s, %d CPUs, %s) ===\n",
		sr.Machine.GOOS, sr.Machine.GOARCH, sr.Machine.NumCPU, sr.Machine.GoVersion)
	fmt.Printf("%-40s %8s %12s %12s %12s %12s\n",
		"benchmark", "rounds", "mean", "stddev", "p95", "ops/sec")

	for _, r := range sr.Results {
		fmt.Printf("%-40s %8d %12s %12s %12s %12.1f\n",
			r.Name,
			r.Rounds,
			formatSeconds(r.Stats.Mean),
			formatSeconds(r.Stats.StdDev),
			formatSeconds(r.P95Sec),
			r.OpsPerSec,
		)
	}
}

func formatSeconds(sec float64) string {
	return time.Duration(sec * float64(time.Second)).Round(time.Microsecond).String()
}
