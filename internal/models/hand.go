package models

import "sort"

// Hand holds the cards a player has not yet played.
type Hand struct {
	Cards  []Card `json:"cards"`
	Sorted bool   `json:"sorted"`
}

func NewHand(cards []Card) *Hand {
	return &Hand{Cards: cards}
}

func (h *Hand) Len() int {
	return len(h.Cards)
}

func (h *Hand) IsEmpty() bool {
	return len(h.Cards) == 0
}

// Sort orders the hand strongest-first so jokers lead the display,
// matching the dealt-hand presentation.
func (h *Hand) Sort() {
	if h.Sorted {
		return
	}
	sort.SliceStable(h.Cards, func(i, j int) bool {
		return h.Cards[i].Rank.Strength() > h.Cards[j].Rank.Strength()
	})
	h.Sorted = true
}

// CountByRank returns how many cards of each rank the hand holds.
func (h *Hand) CountByRank() map[Rank]int {
	counts := make(map[Rank]int, len(h.Cards))
	for _, c := range h.Cards {
		counts[c.Rank]++
	}
	return counts
}

// FindByRank returns up to count cards of the given rank, or nil when the
// hand holds fewer than count of them.
func (h *Hand) FindByRank(rank Rank, count int) []Card {
	found := make([]Card, 0, count)
	for _, c := range h.Cards {
		if c.Rank == rank {
			found = append(found, c)
			if len(found) == count {
				return found
			}
		}
	}
	return nil
}

// Contains reports whether every card in cards is present in the hand,
// counting duplicates.
func (h *Hand) Contains(cards []Card) bool {
	remaining := make([]Card, len(h.Cards))
	copy(remaining, h.Cards)
outer:
	for _, want := range cards {
		for i, have := range remaining {
			if have.Equal(want) {
				remaining[i] = remaining[len(remaining)-1]
				remaining = remaining[:len(remaining)-1]
				continue outer
			}
		}
		return false
	}
	return true
}

// Remove takes the given cards out of the hand. It returns false and
// leaves the hand untouched when any card is missing.
func (h *Hand) Remove(cards []Card) bool {
	if !h.Contains(cards) {
		return false
	}
	for _, played := range cards {
		for i, have := range h.Cards {
			if have.Equal(played) {
				h.Cards = append(h.Cards[:i], h.Cards[i+1:]...)
				break
			}
		}
	}
	return true
}

// Ranks returns the rank of every card, in hand order.
func (h *Hand) Ranks() []Rank {
	ranks := make([]Rank, len(h.Cards))
	for i, c := range h.Cards {
		ranks[i] = c.Rank
	}
	return ranks
}
