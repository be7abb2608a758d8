package core

import "github.com/gouji-dev/gouji/internal/models"

// scoreByRank maps finishing position (0-based) to score change. The
// last seat out pays the table.
var scoreByRank = [models.NumPlayers]int{3, 2, 1, 0, -1, -2}

// ScoreForRank returns the score change for a finishing position.
// Positions outside the table score zero.
func ScoreForRank(rank int) int {
	if rank < 0 || rank >= len(scoreByRank) {
		return 0
	}
	return scoreByRank[rank]
}

// GameResult is the scored outcome of a completed game.
type GameResult struct {
	Rankings     []int               `json:"rankings"`
	PlayerScores map[int]int         `json:"player_scores"`
	TeamScores   map[models.Team]int `json:"team_scores"`
	Winner       string              `json:"winner"`
}

// ScoreGame computes per-player and per-team scores from the finishing
// order. Rankings must contain every seat exactly once.
func ScoreGame(rankings []int) GameResult {
	result := GameResult{
		Rankings:     rankings,
		PlayerScores: make(map[int]int, len(rankings)),
		TeamScores: map[models.Team]int{
			models.TeamA: 0,
			models.TeamB: 0,
		},
	}

	for rank, playerID := range rankings {
		score := ScoreForRank(rank)
		result.PlayerScores[playerID] = score
		result.TeamScores[models.TeamForSeat(playerID)] += score
	}

	switch {
	case result.TeamScores[models.TeamA] > result.TeamScores[models.TeamB]:
		result.Winner = models.WinnerTeamA
	case result.TeamScores[models.TeamB] > result.TeamScores[models.TeamA]:
		result.Winner = models.WinnerTeamB
	default:
		result.Winner = models.WinnerDraw
	}
	return result
}
