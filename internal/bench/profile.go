package bench

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"sort"
	"strings"
	"time"

	"github.com/google/pprof/profile"
)

// CPUProfiler captures a CPU profile around a benchmark run.
type CPUProfiler struct {
	file *os.File
}

// StartCPUProfile begins writing a CPU profile to path.
func StartCPUProfile(path string) (*CPUProfiler, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile file: %w", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to start CPU profile: %w", err)
	}

	return &CPUProfiler{file: f}, nil
}

// Stop flushes and closes the profile file.
func (p *CPUProfiler) Stop() error {
	pprof.StopCPUProfile()
	return p.file.Close()
}

// WriteHeapProfile dumps the current heap profile to path after a
// forced garbage collection so recently freed objects do not skew
// the picture.
func WriteHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer f.Close()

	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("failed to write heap profile: %w", err)
	}
	return nil
}

// FunctionStat is one row of a flat profile summary.
type FunctionStat struct {
	Function   string  `json:"function"`
	Flat       int64   `json:"flat"`
	Percentage float64 `json:"percentage"`
}

// ProfileSummary aggregates a pprof file by flat function cost.
type ProfileSummary struct {
	Path          string         `json:"path"`
	ValueType     string         `json:"value_type"`
	ValueUnit     string         `json:"value_unit"`
	TotalValue    int64          `json:"total_value"`
	DurationNanos int64          `json:"duration_nanos,omitempty"`
	Functions     []FunctionStat `json:"functions"`
}

// SummarizeProfile parses a pprof file and returns the top N functions
// by flat cost of the profile's primary sample type.
func SummarizeProfile(path string, topN int) (*ProfileSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}
	defer f.Close()

	p, err := profile.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	valueIndex := -1
	for i, st := range p.SampleType {
		if st.Type == "cpu" || st.Type == "inuse_space" {
			valueIndex = i
			break
		}
	}
	if valueIndex == -1 {
		if len(p.SampleType) == 0 {
			return nil, fmt.Errorf("profile has no sample types")
		}
		valueIndex = len(p.SampleType) - 1
	}

	flat := make(map[string]int64)
	var total int64
	for _, s := range p.Sample {
		if len(s.Location) == 0 || len(s.Value) <= valueIndex {
			continue
		}
		v := s.Value[valueIndex]
		total += v
		// Flat cost belongs to the leaf frame of the sample stack.
		for _, line := range s.Location[0].Line {
			if line.Function != nil {
				flat[line.Function.Name] += v
				break
			}
		}
	}

	stats := make([]FunctionStat, 0, len(flat))
	for name, v := range flat {
		stat := FunctionStat{Function: name, Flat: v}
		if total != 0 {
			stat.Percentage = float64(v) / float64(total) * 100
		}
		stats = append(stats, stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Flat > stats[j].Flat
	})
	if topN > 0 && topN < len(stats) {
		stats = stats[:topN]
	}

	return &ProfileSummary{
		Path:          path,
		ValueType:     p.SampleType[valueIndex].Type,
		ValueUnit:     p.SampleType[valueIndex].Unit,
		TotalValue:    total,
		DurationNanos: p.DurationNanos,
		Functions:     stats,
	}, nil
}

// FormatText renders the summary as an aligned table.
func (ps *ProfileSummary) FormatText() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Profile: %s (%s/%s)\n", ps.Path, ps.ValueType, ps.ValueUnit)
	fmt.Fprintf(&b, "Total: %s\n", formatSampleValue(ps.TotalValue, ps.ValueUnit))
	if ps.DurationNanos > 0 {
		fmt.Fprintf(&b, "Duration: %s\n", time.Duration(ps.DurationNanos))
	}
	fmt.Fprintf(&b, "%-15s %8s  %s\n", "flat", "%", "function")
	for _, stat := range ps.Functions {
		fmt.Fprintf(&b, "%-15s %8.2f  %s\n",
			formatSampleValue(stat.Flat, ps.ValueUnit), stat.Percentage, stat.Function)
	}

	return b.String()
}

// FormatJSON renders the summary as indented JSON.
func (ps *ProfileSummary) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(ps, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal profile summary: %w", err)
	}
	return string(data), nil
}

func formatSampleValue(v int64, unit string) string {
	switch unit {
	case "nanoseconds":
		return time.Duration(v).Round(time.Microsecond).String()
	case "bytes":
		switch {
		case v >= 1<<20:
			return fmt.Sprintf("%.2fMB", float64(v)/(1<<20))
		case v >= 1<<10:
			return fmt.Sprintf("%.2fKB", float64(v)/(1<<10))
		}
		return fmt.Sprintf("%dB", v)
	default:
		return fmt.Sprintf("%d", v)
	}
}
