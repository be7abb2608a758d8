package core

import (
	"math/rand"

	"github.com/gouji-dev/gouji/internal/models"
)

// Strategy picks an AI player's next play. previous is the group to
// beat, empty when the player leads. Returning nil means pass; a leading
// player is never allowed to pass, so strategies must return a play when
// previous is empty and the hand is non-empty.
type Strategy interface {
	ChoosePlay(hand *models.Hand, previous []models.Card, rng *rand.Rand) []models.Card
}

// RandomStrategy plays a uniformly random legal group, passing only when
// nothing beats the table.
type RandomStrategy struct{}

func (RandomStrategy) ChoosePlay(hand *models.Hand, previous []models.Card, rng *rand.Rand) []models.Card {
	plays := FindBeatingPlays(hand.Cards, previous)
	if len(plays) == 0 {
		return nil
	}
	return plays[rng.Intn(len(plays))]
}

// GreedyStrategy sheds weak cards: it leads with every copy of its
// weakest rank and beats the table with the weakest sufficient group.
type GreedyStrategy struct{}

func (GreedyStrategy) ChoosePlay(hand *models.Hand, previous []models.Card, rng *rand.Rand) []models.Card {
	plays := FindBeatingPlays(hand.Cards, previous)
	if len(plays) == 0 {
		return nil
	}

	if len(previous) == 0 {
		// Lead with the full group of the weakest rank in hand.
		best := plays[0]
		for _, p := range plays[1:] {
			if weakerLead(p, best) {
				best = p
			}
		}
		return best
	}

	// Beat with the weakest rank that works.
	best := plays[0]
	for _, p := range plays[1:] {
		if p[0].Rank.Strength() < best[0].Rank.Strength() {
			best = p
		}
	}
	return best
}

// weakerLead prefers the weakest rank, and among groups of the same rank
// the largest, so full groups are shed first.
func weakerLead(a, b []models.Card) bool {
	as, bs := a[0].Rank.Strength(), b[0].Rank.Strength()
	if as != bs {
		return as < bs
	}
	return len(a) > len(b)
}
