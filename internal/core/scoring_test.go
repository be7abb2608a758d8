package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gouji-dev/gouji/internal/models"
)

func TestScoreForRank(t *testing.T) {
	expected := []int{3, 2, 1, 0, -1, -2}
	for rank, score := range expected {
		assert.Equal(t, score, ScoreForRank(rank))
	}

	assert.Equal(t, 0, ScoreForRank(-1))
	assert.Equal(t, 0, ScoreForRank(models.NumPlayers))
}

func TestScoreGame(t *testing.T) {
	tests := []struct {
		name       string
		rankings   []int
		teamA      int
		teamB      int
		winner     string
		playerTops int
	}{
		{
			name:       "even seats sweep the top",
			rankings:   []int{0, 2, 4, 1, 3, 5},
			teamA:      6,
			teamB:      -3,
			winner:     models.WinnerTeamA,
			playerTops: 0,
		},
		{
			name:       "odd seats sweep the top",
			rankings:   []int{1, 3, 5, 0, 2, 4},
			teamA:      -3,
			teamB:      6,
			winner:     models.WinnerTeamB,
			playerTops: 1,
		},
		{
			name:       "alternating finish favors even seats",
			rankings:   []int{0, 1, 2, 3, 4, 5},
			teamA:      3,
			teamB:      0,
			winner:     models.WinnerTeamA,
			playerTops: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreGame(tt.rankings)

			assert.Equal(t, tt.rankings, result.Rankings)
			assert.Equal(t, tt.teamA, result.TeamScores[models.TeamA])
			assert.Equal(t, tt.teamB, result.TeamScores[models.TeamB])
			assert.Equal(t, tt.winner, result.Winner)
			assert.Equal(t, 3, result.PlayerScores[tt.playerTops])
		})
	}
}

func TestScoreGame_PlayerScoresCoverEverySeat(t *testing.T) {
	result := ScoreGame([]int{5, 4, 3, 2, 1, 0})

	assert.Len(t, result.PlayerScores, models.NumPlayers)
	total := 0
	for _, score := range result.PlayerScores {
		total += score
	}
	assert.Equal(t, 3, total)
}
