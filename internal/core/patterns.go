package core

import "github.com/gouji-dev/gouji/internal/models"

// UniformRank returns the shared rank of the group, or false when the
// group is empty or mixes ranks. Only uniform-rank groups are playable.
func UniformRank(cards []models.Card) (models.Rank, bool) {
	if len(cards) == 0 {
		return "", false
	}
	rank := cards[0].Rank
	for _, c := range cards[1:] {
		if c.Rank != rank {
			return "", false
		}
	}
	return rank, true
}

// CanBeat reports whether newCards beats previous. An empty previous is
// always beatable; otherwise card counts must match, both groups must be
// uniform in rank, and the new rank must be strictly stronger.
func CanBeat(newCards, previous []models.Card) bool {
	if len(previous) == 0 {
		return true
	}
	if len(newCards) != len(previous) {
		return false
	}
	newRank, ok := UniformRank(newCards)
	if !ok {
		return false
	}
	prevRank, ok := UniformRank(previous)
	if !ok {
		return false
	}
	return newRank.Strength() > prevRank.Strength()
}

// AllValidPlays enumerates every playable group in the hand: for each
// rank, the groups of 1..n copies of that rank.
func AllValidPlays(hand []models.Card) [][]models.Card {
	if len(hand) == 0 {
		return nil
	}

	order, groups := groupByRank(hand)

	var plays [][]models.Card
	for _, rank := range order {
		cards := groups[rank]
		for count := 1; count <= len(cards); count++ {
			plays = append(plays, cards[:count:count])
		}
	}
	return plays
}

// FindBeatingPlays returns every group in the hand that beats target.
// An empty target yields all valid plays.
func FindBeatingPlays(hand, target []models.Card) [][]models.Card {
	if len(target) == 0 {
		return AllValidPlays(hand)
	}

	targetRank, ok := UniformRank(target)
	if !ok {
		return nil
	}

	order, groups := groupByRank(hand)

	var plays [][]models.Card
	for _, rank := range order {
		if rank.Strength() <= targetRank.Strength() {
			continue
		}
		cards := groups[rank]
		if len(cards) < len(target) {
			continue
		}
		plays = append(plays, cards[:len(target):len(target)])
	}
	return plays
}

// groupByRank buckets the hand by rank, keeping first-seen rank order so
// enumeration is deterministic for a given hand.
func groupByRank(hand []models.Card) ([]models.Rank, map[models.Rank][]models.Card) {
	order := make([]models.Rank, 0, len(hand))
	groups := make(map[models.Rank][]models.Card, len(hand))
	for _, c := range hand {
		if _, seen := groups[c.Rank]; !seen {
			order = append(order, c.Rank)
		}
		groups[c.Rank] = append(groups[c.Rank], c)
	}
	return order, groups
}
