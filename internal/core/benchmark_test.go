package core

import (
	"context"
	"math/rand"
	"testing"

	"github.com/gouji-dev/gouji/internal/models"
)

func BenchmarkShuffleDeal(b *testing.B) {
	rng := rand.New(rand.NewSource(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		deck := BuildDecks()
		Shuffle(deck, rng)
		Deal(deck)
	}
}

func BenchmarkHandSort(b *testing.B) {
	deck := BuildDecks()
	Shuffle(deck, rand.New(rand.NewSource(1)))
	cards := deck[:CardsPerPlayer]

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hand := models.NewHand(append([]models.Card(nil), cards...))
		hand.Sort()
	}
}

func BenchmarkAllValidPlays(b *testing.B) {
	deck := BuildDecks()
	Shuffle(deck, rand.New(rand.NewSource(1)))
	hand := deck[:CardsPerPlayer]

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		AllValidPlays(hand)
	}
}

func BenchmarkFindBeatingPlays(b *testing.B) {
	deck := BuildDecks()
	Shuffle(deck, rand.New(rand.NewSource(1)))
	hand := deck[:CardsPerPlayer]
	target := []models.Card{
		{Suit: models.SuitHeart, Rank: models.RankNine, DeckID: 0},
		{Suit: models.SuitSpade, Rank: models.RankNine, DeckID: 1},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		FindBeatingPlays(hand, target)
	}
}

func BenchmarkScoreGame(b *testing.B) {
	rankings := []int{0, 2, 4, 1, 3, 5}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ScoreGame(rankings)
	}
}

func BenchmarkFullGameRandom(b *testing.B) {
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		game := NewGame(GameOptions{Seed: int64(i + 1)})
		if _, err := game.RunToCompletion(ctx); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFullGameGreedy(b *testing.B) {
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		game := NewGame(GameOptions{Seed: int64(i + 1), Strategy: GreedyStrategy{}})
		if _, err := game.RunToCompletion(ctx); err != nil {
			b.Fatal(err)
		}
	}
}
