package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gouji-dev/gouji/internal/bench"
)

func newLoadTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loadtest",
		Short: "Fire a constant rate HTTP load attack at a running server",
		RunE:  runLoadTest,
	}

	cmd.Flags().String("target", "http://localhost:8080/health", "URL to attack")
	cmd.Flags().Int("rate", 100, "Requests per second")
	cmd.Flags().Duration("duration", 30*time.Second, "Attack duration")
	cmd.Flags().Int("workers", 0, "Initial worker count (0 uses the default)")
	cmd.Flags().String("json", "", "Write the load report as JSON to this file")

	return cmd
}

func runLoadTest(cmd *cobra.Command, args []string) error {
	opts := bench.LoadOptions{}
	opts.TargetURL, _ = cmd.Flags().GetString("target")
	opts.Rate, _ = cmd.Flags().GetInt("rate")
	opts.Duration, _ = cmd.Flags().GetDuration("duration")
	opts.Workers, _ = cmd.Flags().GetInt("workers")
	jsonPath, _ := cmd.Flags().GetString("json")

	fmt.Printf("attacking %s at %d req/s for %s\n", opts.TargetURL, opts.Rate, opts.Duration)

	report, err := bench.RunLoadTest(cmd.Context(), opts)
	if err != nil {
		return err
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
