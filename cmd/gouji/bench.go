package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gouji-dev/gouji/internal/bench"
	"github.com/gouji-dev/gouji/internal/observability"
)

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the benchmark suite over the game engine",
		RunE:  runBench,
	}

	cmd.Flags().Int("warmup", 5, "Warm-up iterations per benchmark")
	cmd.Flags().Int("min-rounds", 20, "Minimum measured iterations per benchmark")
	cmd.Flags().Duration("max-time", 10*time.Second, "Wall clock cap per benchmark")
	cmd.Flags().String("filter", "", "Only run benchmarks matching this regular expression")
	cmd.Flags().String("json", "", "Write the suite report as JSON to this file")
	cmd.Flags().String("histogram", "", "Write a timing histogram PNG per benchmark into this directory")
	cmd.Flags().String("cpuprofile", "", "Capture a CPU profile of the run to this file")

	return cmd
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, verbose, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := bench.Options{}
	opts.WarmupRounds, _ = cmd.Flags().GetInt("warmup")
	opts.MinRounds, _ = cmd.Flags().GetInt("min-rounds")
	opts.MaxTime, _ = cmd.Flags().GetDuration("max-time")
	opts.Filter, _ = cmd.Flags().GetString("filter")
	jsonPath, _ := cmd.Flags().GetString("json")
	histogramDir, _ := cmd.Flags().GetString("histogram")
	cpuProfile, _ := cmd.Flags().GetString("cpuprofile")

	if !cmd.Flags().Changed("warmup") {
		opts.WarmupRounds = cfg.Bench.WarmupRounds
	}
	if !cmd.Flags().Changed("min-rounds") {
		opts.MinRounds = cfg.Bench.MinRounds
	}
	if !cmd.Flags().Changed("max-time") {
		opts.MaxTime = cfg.Bench.MaxTime
	}

	obs := observability.NopManager()
	if verbose {
		obs, err = buildObservability(cfg, true)
		if err != nil {
			return err
		}
	}

	runner, err := bench.NewRunner(opts, obs)
	if err != nil {
		return err
	}

	if cpuProfile != "" {
		profiler, err := bench.StartCPUProfile(cpuProfile)
		if err != nil {
			return err
		}
		defer func() {
			if err := profiler.Stop(); err != nil {
				fmt.Printf("failed to stop CPU profile: %v\n", err)
			} else {
				fmt.Printf("CPU profile written to %s\n", cpuProfile)
			}
		}()
	}

	results, err := runner.Run(cmd.Context(), bench.DefaultSuite())
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no benchmarks matched filter %q", opts.Filter)
	}

	report := bench.NewSuiteReport(opts, results)

	if histogramDir != "" {
		for i, result := range results {
			path, err := bench.RenderHistogram(result, histogramDir)
			if err != nil {
				return fmt.Errorf("failed to render histogram for %s: %w", result.Name, err)
			}
			report.Results[i].HistogramPNG = path
		}
		fmt.Printf("histograms written to %s\n", histogramDir)
	}

	report.PrintSummary()

	if jsonPath != "" {
		if err := report.WriteJSON(jsonPath); err != nil {
			return err
		}
		fmt.Printf("report written to %s\n", jsonPath)
	}
	return nil
}
