package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHand() *Hand {
	return NewHand([]Card{
		{Suit: SuitHeart, Rank: RankThree, DeckID: 0},
		{Suit: SuitJoker, Rank: RankRedJoker, DeckID: 0},
		{Suit: SuitSpade, Rank: RankAce, DeckID: 0},
		{Suit: SuitClub, Rank: RankAce, DeckID: 1},
		{Suit: SuitDiamond, Rank: RankTwo, DeckID: 0},
	})
}

func TestHandSort(t *testing.T) {
	hand := testHand()
	hand.Sort()

	assert.Equal(t, []Rank{RankRedJoker, RankTwo, RankAce, RankAce, RankThree}, hand.Ranks())
	assert.True(t, hand.Sorted)
}

func TestHandCountByRank(t *testing.T) {
	counts := testHand().CountByRank()

	assert.Equal(t, 2, counts[RankAce])
	assert.Equal(t, 1, counts[RankRedJoker])
	assert.Equal(t, 0, counts[RankKing])
}

func TestHandFindByRank(t *testing.T) {
	hand := testHand()

	pair := hand.FindByRank(RankAce, 2)
	require.Len(t, pair, 2)
	assert.Equal(t, RankAce, pair[0].Rank)
	assert.Equal(t, RankAce, pair[1].Rank)

	assert.Nil(t, hand.FindByRank(RankAce, 3), "hand holds only two aces")
	assert.Nil(t, hand.FindByRank(RankKing, 1))
}

func TestHandContains(t *testing.T) {
	hand := testHand()

	assert.True(t, hand.Contains([]Card{
		{Suit: SuitSpade, Rank: RankAce, DeckID: 0},
		{Suit: SuitClub, Rank: RankAce, DeckID: 1},
	}))

	// Same face twice, but the hand holds only one copy of it.
	assert.False(t, hand.Contains([]Card{
		{Suit: SuitSpade, Rank: RankAce, DeckID: 0},
		{Suit: SuitSpade, Rank: RankAce, DeckID: 0},
	}))

	assert.False(t, hand.Contains([]Card{{Suit: SuitHeart, Rank: RankKing, DeckID: 0}}))
}

func TestHandRemove(t *testing.T) {
	hand := testHand()

	ok := hand.Remove([]Card{
		{Suit: SuitSpade, Rank: RankAce, DeckID: 0},
		{Suit: SuitClub, Rank: RankAce, DeckID: 1},
	})
	require.True(t, ok)
	assert.Equal(t, 3, hand.Len())
	assert.Equal(t, 0, hand.CountByRank()[RankAce])
}

func TestHandRemove_MissingCardLeavesHandUntouched(t *testing.T) {
	hand := testHand()

	ok := hand.Remove([]Card{
		{Suit: SuitHeart, Rank: RankThree, DeckID: 0},
		{Suit: SuitHeart, Rank: RankKing, DeckID: 0},
	})
	assert.False(t, ok)
	assert.Equal(t, 5, hand.Len(), "failed removal must not change the hand")
}
