package core

import (
	"math/rand"

	"github.com/gouji-dev/gouji/internal/models"
)

// DeckSize is the full shoe: four decks of 52 cards plus two jokers each.
const DeckSize = models.NumDecks * 54

// CardsPerPlayer is the even split of the shoe across six seats.
const CardsPerPlayer = DeckSize / models.NumPlayers

// BuildDecks creates the full shoe in deterministic order.
func BuildDecks() []models.Card {
	deck := make([]models.Card, 0, DeckSize)
	for deckID := 0; deckID < models.NumDecks; deckID++ {
		for _, suit := range models.RegularSuits {
			for _, rank := range models.RegularRanks {
				deck = append(deck, models.Card{Suit: suit, Rank: rank, DeckID: deckID})
			}
		}
		deck = append(deck, models.Card{Suit: models.SuitJoker, Rank: models.RankRedJoker, DeckID: deckID})
		deck = append(deck, models.Card{Suit: models.SuitJoker, Rank: models.RankBlackJoker, DeckID: deckID})
	}
	return deck
}

// Shuffle permutes the deck in place using the supplied source so games
// are reproducible from a seed.
func Shuffle(deck []models.Card, rng *rand.Rand) {
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}

// Deal splits the shoe evenly into six hands, preserving shoe order.
func Deal(deck []models.Card) []*models.Hand {
	hands := make([]*models.Hand, models.NumPlayers)
	for i := 0; i < models.NumPlayers; i++ {
		cards := make([]models.Card, CardsPerPlayer)
		copy(cards, deck[i*CardsPerPlayer:(i+1)*CardsPerPlayer])
		hands[i] = models.NewHand(cards)
		hands[i].Sort()
	}
	return hands
}
