package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gouji-dev/gouji/internal/models"
)

func TestBuildDecks(t *testing.T) {
	deck := BuildDecks()

	require.Len(t, deck, DeckSize)

	jokers := 0
	byRank := make(map[models.Rank]int)
	for _, c := range deck {
		byRank[c.Rank]++
		if c.Rank.IsJoker() {
			jokers++
			assert.Equal(t, models.SuitJoker, c.Suit)
		}
	}

	// Two jokers per physical deck, four copies of every regular
	// rank per suit.
	assert.Equal(t, 2*models.NumDecks, jokers)
	assert.Equal(t, models.NumDecks, byRank[models.RankRedJoker])
	assert.Equal(t, models.NumDecks, byRank[models.RankBlackJoker])
	for _, rank := range models.RegularRanks {
		assert.Equal(t, models.NumDecks*len(models.RegularSuits), byRank[rank])
	}
}

func TestShuffle_DeterministicPerSeed(t *testing.T) {
	first := BuildDecks()
	Shuffle(first, rand.New(rand.NewSource(42)))

	second := BuildDecks()
	Shuffle(second, rand.New(rand.NewSource(42)))

	assert.Equal(t, first, second)

	third := BuildDecks()
	Shuffle(third, rand.New(rand.NewSource(43)))

	assert.NotEqual(t, first, third)
}

func TestShuffle_PreservesCards(t *testing.T) {
	deck := BuildDecks()
	Shuffle(deck, rand.New(rand.NewSource(7)))

	require.Len(t, deck, DeckSize)

	count := func(cards []models.Card) map[models.Card]int {
		m := make(map[models.Card]int, len(cards))
		for _, c := range cards {
			m[c]++
		}
		return m
	}
	assert.Equal(t, count(BuildDecks()), count(deck))
}

func TestDeal(t *testing.T) {
	deck := BuildDecks()
	Shuffle(deck, rand.New(rand.NewSource(1)))

	hands := Deal(deck)

	require.Len(t, hands, models.NumPlayers)
	for _, hand := range hands {
		require.Len(t, hand.Cards, CardsPerPlayer)

		// Deal leaves each hand sorted strongest first.
		for i := 1; i < len(hand.Cards); i++ {
			assert.GreaterOrEqual(t,
				hand.Cards[i-1].Rank.Strength(),
				hand.Cards[i].Rank.Strength())
		}
	}
}
