package bench

import (
	"context"
	"math/rand"

	"github.com/gouji-dev/gouji/internal/core"
	"github.com/gouji-dev/gouji/internal/models"
)

// suiteSeed keeps the workloads deterministic so runs stay comparable
// across machines.
const suiteSeed = 20240316

// DefaultSuite returns the standard benchmark workloads over the game
// engine, from primitive card operations up to full AI matches.
func DefaultSuite() []Benchmark {
	rng := rand.New(rand.NewSource(suiteSeed))

	deck := core.BuildDecks()
	core.Shuffle(deck, rng)
	hands := core.Deal(deck)
	hand := hands[0].Cards

	// A single mid-strength pair to beat, the common case mid-game.
	target := []models.Card{
		{Suit: models.SuitHeart, Rank: models.RankNine, DeckID: 0},
		{Suit: models.SuitSpade, Rank: models.RankNine, DeckID: 1},
	}

	var seed int64 = suiteSeed

	return []Benchmark{
		{
			Name: "deck_shuffle_deal",
			Fn: func() {
				d := core.BuildDecks()
				core.Shuffle(d, rng)
				core.Deal(d)
			},
		},
		{
			Name: "hand_sort",
			Fn: func() {
				h := models.Hand{Cards: append([]models.Card(nil), deck[:core.CardsPerPlayer]...)}
				h.Sort()
			},
		},
		{
			Name: "valid_plays_full_hand",
			Fn: func() {
				core.AllValidPlays(hand)
			},
		},
		{
			Name: "beating_plays_pair",
			Fn: func() {
				core.FindBeatingPlays(hand, target)
			},
		},
		{
			Name: "scoring",
			Fn: func() {
				core.ScoreGame([]int{0, 2, 4, 1, 3, 5})
			},
		},
		{
			Name: "full_game_random",
			Fn: func() {
				seed++
				game := core.NewGame(core.GameOptions{Seed: seed})
				if _, err := game.RunToCompletion(context.Background()); err != nil {
					panic(err)
				}
			},
		},
		{
			Name: "full_game_greedy",
			Fn: func() {
				seed++
				game := core.NewGame(core.GameOptions{Seed: seed, Strategy: core.GreedyStrategy{}})
				if _, err := game.RunToCompletion(context.Background()); err != nil {
					panic(err)
				}
			},
		},
	}
}
