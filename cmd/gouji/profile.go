package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gouji-dev/gouji/internal/bench"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile <file>",
		Short: "Summarize a pprof profile by flat function cost",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfile,
	}

	cmd.Flags().Int("top", 20, "Number of functions to show")
	cmd.Flags().String("format", "text", "Output format: text or json")

	return cmd
}

func runProfile(cmd *cobra.Command, args []string) error {
	topN, _ := cmd.Flags().GetInt("top")
	format, _ := cmd.Flags().GetString("format")

	summary, err := bench.SummarizeProfile(args[0], topN)
	if err != nil {
		return err
	}

	switch format {
	case "text":
		fmt.Print(summary.FormatText())
	case "json":
		out, err := summary.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Println(out)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	return nil
}
