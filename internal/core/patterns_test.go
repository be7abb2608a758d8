package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gouji-dev/gouji/internal/models"
)

func cardsOfRank(rank models.Rank, count int) []models.Card {
	cards := make([]models.Card, count)
	for i := range cards {
		cards[i] = models.Card{Suit: models.SuitHeart, Rank: rank, DeckID: i}
	}
	return cards
}

func TestUniformRank(t *testing.T) {
	rank, ok := UniformRank(cardsOfRank(models.RankFive, 3))
	assert.True(t, ok)
	assert.Equal(t, models.RankFive, rank)

	_, ok = UniformRank(nil)
	assert.False(t, ok)

	_, ok = UniformRank([]models.Card{
		{Suit: models.SuitHeart, Rank: models.RankThree},
		{Suit: models.SuitSpade, Rank: models.RankFour},
	})
	assert.False(t, ok)
}

func TestCanBeat(t *testing.T) {
	tests := []struct {
		name     string
		newCards []models.Card
		previous []models.Card
		expected bool
	}{
		{
			name:     "empty previous is always beatable",
			newCards: cardsOfRank(models.RankThree, 1),
			previous: nil,
			expected: true,
		},
		{
			name:     "different count cannot beat",
			newCards: cardsOfRank(models.RankFour, 2),
			previous: cardsOfRank(models.RankFive, 1),
			expected: false,
		},
		{
			name: "mixed ranks cannot beat",
			newCards: []models.Card{
				{Suit: models.SuitHeart, Rank: models.RankThree},
				{Suit: models.SuitSpade, Rank: models.RankFour},
			},
			previous: cardsOfRank(models.RankTwo, 2),
			expected: false,
		},
		{
			name:     "higher single beats lower single",
			newCards: cardsOfRank(models.RankSix, 1),
			previous: cardsOfRank(models.RankFive, 1),
			expected: true,
		},
		{
			name:     "lower single cannot beat higher single",
			newCards: cardsOfRank(models.RankFive, 1),
			previous: cardsOfRank(models.RankSix, 1),
			expected: false,
		},
		{
			name:     "triple nines beat triple eights",
			newCards: cardsOfRank(models.RankNine, 3),
			previous: cardsOfRank(models.RankEight, 3),
			expected: true,
		},
		{
			name:     "pair of aces beats pair of kings",
			newCards: cardsOfRank(models.RankAce, 2),
			previous: cardsOfRank(models.RankKing, 2),
			expected: true,
		},
		{
			name:     "pair of twos beats pair of aces",
			newCards: cardsOfRank(models.RankTwo, 2),
			previous: cardsOfRank(models.RankAce, 2),
			expected: true,
		},
		{
			name:     "black joker beats a two",
			newCards: cardsOfRank(models.RankBlackJoker, 1),
			previous: cardsOfRank(models.RankTwo, 1),
			expected: true,
		},
		{
			name:     "red joker beats black joker",
			newCards: cardsOfRank(models.RankRedJoker, 1),
			previous: cardsOfRank(models.RankBlackJoker, 1),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanBeat(tt.newCards, tt.previous))
		})
	}
}

func TestAllValidPlays(t *testing.T) {
	hand := []models.Card{
		{Suit: models.SuitHeart, Rank: models.RankThree, DeckID: 1},
		{Suit: models.SuitDiamond, Rank: models.RankThree, DeckID: 1},
		{Suit: models.SuitClub, Rank: models.RankThree, DeckID: 1},
		{Suit: models.SuitSpade, Rank: models.RankFour, DeckID: 1},
		{Suit: models.SuitHeart, Rank: models.RankFour, DeckID: 1},
	}

	plays := AllValidPlays(hand)

	// Three groups of threes plus two groups of fours.
	require.Len(t, plays, 5)
	assert.Equal(t, []models.Card{hand[0]}, plays[0])
	assert.Equal(t, []models.Card{hand[0], hand[1]}, plays[1])
	assert.Equal(t, []models.Card{hand[0], hand[1], hand[2]}, plays[2])
	assert.Equal(t, []models.Card{hand[3]}, plays[3])
	assert.Equal(t, []models.Card{hand[3], hand[4]}, plays[4])
}

func TestAllValidPlays_EmptyHand(t *testing.T) {
	assert.Empty(t, AllValidPlays(nil))
}

func TestFindBeatingPlays(t *testing.T) {
	hand := []models.Card{
		{Suit: models.SuitHeart, Rank: models.RankFour, DeckID: 1},
		{Suit: models.SuitDiamond, Rank: models.RankFour, DeckID: 1},
		{Suit: models.SuitClub, Rank: models.RankFive, DeckID: 1},
		{Suit: models.SuitSpade, Rank: models.RankFive, DeckID: 1},
		{Suit: models.SuitHeart, Rank: models.RankFive, DeckID: 1},
	}
	target := cardsOfRank(models.RankThree, 2)

	plays := FindBeatingPlays(hand, target)

	require.Len(t, plays, 2)
	assert.Equal(t, []models.Card{hand[0], hand[1]}, plays[0])
	assert.Equal(t, []models.Card{hand[2], hand[3]}, plays[1])
}

func TestFindBeatingPlays_NothingBeatsTarget(t *testing.T) {
	hand := cardsOfRank(models.RankTwo, 2)
	target := cardsOfRank(models.RankRedJoker, 2)

	assert.Empty(t, FindBeatingPlays(hand, target))
}

func TestFindBeatingPlays_MixedTargetIsUnbeatable(t *testing.T) {
	hand := cardsOfRank(models.RankFour, 2)
	target := []models.Card{
		{Suit: models.SuitHeart, Rank: models.RankThree},
		{Suit: models.SuitDiamond, Rank: models.RankFour},
	}

	assert.Empty(t, FindBeatingPlays(hand, target))
}

func TestFindBeatingPlays_EmptyTargetYieldsAllPlays(t *testing.T) {
	hand := cardsOfRank(models.RankSeven, 2)

	plays := FindBeatingPlays(hand, nil)
	assert.Len(t, plays, 2)
}

func TestFindBeatingPlays_NotEnoughCopies(t *testing.T) {
	// A single ace cannot answer a pair of kings.
	hand := cardsOfRank(models.RankAce, 1)
	target := cardsOfRank(models.RankKing, 2)

	assert.Empty(t, FindBeatingPlays(hand, target))
}
