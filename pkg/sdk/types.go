package sdk

import (
	"time"

	"github.com/google/uuid"
)

// Card mirrors the server card representation. DeckID distinguishes
// identical cards from different decks.
type Card struct {
	Suit   string `json:"suit"`
	Rank   string `json:"rank"`
	DeckID int    `json:"deck_id"`
}

type Player struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	IsAI bool   `json:"is_ai"`
	Team string `json:"team"`
}

// GameState is a snapshot of a running or finished game.
type GameState struct {
	ID            uuid.UUID `json:"id"`
	Seed          int64     `json:"seed,omitempty"`
	Phase         string    `json:"phase"`
	CurrentPlayer int       `json:"current_player"`
	TrickToBeat   []Card    `json:"trick_to_beat,omitempty"`
	Players       []Player  `json:"players"`
	HandSizes     []int     `json:"hand_sizes"`
	Rankings      []int     `json:"rankings"`
	PlayCount     int       `json:"play_count"`
}

// Finished reports whether the game has ended.
func (gs *GameState) Finished() bool {
	return gs.Phase == "over"
}

type CreateGameRequest struct {
	Seed        int64    `json:"seed,omitempty"`
	PlayerNames []string `json:"player_names,omitempty"`
	HumanSeats  []int    `json:"human_seats,omitempty"`
	Strategy    string   `json:"strategy,omitempty"`
}

type PlayRequest struct {
	PlayerID int    `json:"player_id"`
	Cards    []Card `json:"cards"`
}

type Hand struct {
	PlayerID int    `json:"player_id"`
	Cards    []Card `json:"cards"`
}

type ValidPlays struct {
	PlayerID int      `json:"player_id"`
	Plays    [][]Card `json:"plays"`
}

type Play struct {
	Seq      int       `json:"seq"`
	PlayerID int       `json:"player_id"`
	Cards    []Card    `json:"cards"`
	Pass     bool      `json:"pass,omitempty"`
	PlayedAt time.Time `json:"played_at"`
}

// MatchRecord is an archived finished game.
type MatchRecord struct {
	ID         uuid.UUID `json:"id"`
	Seed       int64     `json:"seed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Rankings   []int     `json:"rankings"`
	TeamAScore int       `json:"team_a_score"`
	TeamBScore int       `json:"team_b_score"`
	Winner     string    `json:"winner"`
	PlayCount  int       `json:"play_count"`
	Plays      []Play    `json:"plays,omitempty"`
}

type MatchList struct {
	Matches []MatchRecord `json:"matches"`
	Limit   int           `json:"limit"`
	Offset  int           `json:"offset"`
}
