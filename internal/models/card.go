package models

import "fmt"

type Suit string

const (
	SuitHeart   Suit = "♥"
	SuitDiamond Suit = "♦"
	SuitClub    Suit = "♣"
	SuitSpade   Suit = "♠"
	SuitJoker   Suit = "🃏"
)

// RegularSuits are the four suits a non-joker card can carry.
var RegularSuits = []Suit{SuitHeart, SuitDiamond, SuitClub, SuitSpade}

type Rank string

const (
	RankAce        Rank = "A"
	RankTwo        Rank = "2"
	RankThree      Rank = "3"
	RankFour       Rank = "4"
	RankFive       Rank = "5"
	RankSix        Rank = "6"
	RankSeven      Rank = "7"
	RankEight      Rank = "8"
	RankNine       Rank = "9"
	RankTen        Rank = "10"
	RankJack       Rank = "J"
	RankQueen      Rank = "Q"
	RankKing       Rank = "K"
	RankBlackJoker Rank = "BJ"
	RankRedJoker   Rank = "RJ"
)

// RegularRanks are the thirteen ranks present in each suit of a deck.
var RegularRanks = []Rank{
	RankAce, RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven,
	RankEight, RankNine, RankTen, RankJack, RankQueen, RankKing,
}

var rankStrength = map[Rank]int{
	RankThree:      3,
	RankFour:       4,
	RankFive:       5,
	RankSix:        6,
	RankSeven:      7,
	RankEight:      8,
	RankNine:       9,
	RankTen:        10,
	RankJack:       11,
	RankQueen:      12,
	RankKing:       13,
	RankAce:        14,
	RankTwo:        15,
	RankBlackJoker: 16,
	RankRedJoker:   17,
}

// Strength returns the beat ordering of the rank: 3 is weakest, then
// 4..10, J, Q, K, A, 2, black joker, red joker.
func (r Rank) Strength() int {
	return rankStrength[r]
}

func (r Rank) IsJoker() bool {
	return r == RankRedJoker || r == RankBlackJoker
}

func (r Rank) Valid() bool {
	_, ok := rankStrength[r]
	return ok
}

// Card is a single playing card. DeckID distinguishes identical cards
// coming from different decks in a multi-deck game.
type Card struct {
	Suit   Suit `json:"suit"`
	Rank   Rank `json:"rank"`
	DeckID int  `json:"deck_id"`
}

func (c Card) String() string {
	if c.Rank.IsJoker() {
		return string(c.Rank)
	}
	return fmt.Sprintf("%s%s", c.Suit, c.Rank)
}

// Equal reports whether two cards are the same physical card.
func (c Card) Equal(other Card) bool {
	return c.Suit == other.Suit && c.Rank == other.Rank && c.DeckID == other.DeckID
}
