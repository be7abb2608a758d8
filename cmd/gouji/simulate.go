package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gouji-dev/gouji/internal/core"
	"github.com/gouji-dev/gouji/internal/models"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run AI games locally and print the outcomes",
		RunE:  runSimulate,
	}

	cmd.Flags().IntP("games", "n", 1, "Number of games to simulate")
	cmd.Flags().Int64("seed", 0, "Seed of the first game (0 picks a random seed)")
	cmd.Flags().Bool("greedy", false, "Use the greedy strategy instead of random")
	cmd.Flags().Bool("log", false, "Print the full play log of each game")

	return cmd
}

func runSimulate(cmd *cobra.Command, args []string) error {
	games, _ := cmd.Flags().GetInt("games")
	seed, _ := cmd.Flags().GetInt64("seed")
	greedy, _ := cmd.Flags().GetBool("greedy")
	printLog, _ := cmd.Flags().GetBool("log")

	if games < 1 {
		return fmt.Errorf("number of games must be positive")
	}

	var strategy core.Strategy = core.RandomStrategy{}
	if greedy {
		strategy = core.GreedyStrategy{}
	}

	teamAWins, teamBWins, draws := 0, 0, 0

	for i := 0; i < games; i++ {
		opts := core.GameOptions{Strategy: strategy}
		if seed != 0 {
			opts.Seed = seed + int64(i)
		}

		game := core.NewGame(opts)
		record, err := game.RunToCompletion(context.Background())
		if err != nil {
			return fmt.Errorf("game %d failed: %w", i+1, err)
		}

		fmt.Printf("game %d: seed=%d plays=%d rankings=%v score A=%d B=%d winner=%s\n",
			i+1, record.Seed, record.PlayCount, record.Rankings,
			record.TeamAScore, record.TeamBScore, record.Winner)

		if printLog {
			for _, play := range record.Plays {
				if play.Pass {
					fmt.Printf("  #%d player %d passes\n", play.Seq, play.PlayerID)
					continue
				}
				fmt.Printf("  #%d player %d plays %v\n", play.Seq, play.PlayerID, play.Cards)
			}
		}

		switch record.Winner {
		case models.WinnerTeamA:
			teamAWins++
		case models.WinnerTeamB:
			teamBWins++
		default:
			draws++
		}
	}

	if games > 1 {
		fmt.Printf("\ntotal: %d games, team A %d, team B %d, draws %d\n",
			games, teamAWins, teamBWins, draws)
	}
	return nil
}
