package models

import (
	"time"

	"github.com/google/uuid"
)

type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// NumPlayers is fixed by the rules: six players in two teams of three,
// seated alternately.
const NumPlayers = 6

// NumDecks is the number of full decks shuffled together.
const NumDecks = 4

// TeamForSeat returns the team a seat belongs to: even seats are team A,
// odd seats team B.
func TeamForSeat(seat int) Team {
	if seat%2 == 0 {
		return TeamA
	}
	return TeamB
}

type Player struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	IsAI bool   `json:"is_ai"`
	Team Team   `json:"team"`
}

type GamePhase string

const (
	PhaseDealing GamePhase = "dealing"
	PhasePlaying GamePhase = "playing"
	PhaseOver    GamePhase = "over"
)

// Play records one submitted play: who played which cards, and when.
type Play struct {
	Seq      int       `json:"seq"`
	PlayerID int       `json:"player_id"`
	Cards    []Card    `json:"cards"`
	Pass     bool      `json:"pass,omitempty"`
	PlayedAt time.Time `json:"played_at"`
}

// MatchRecord is the archived form of a completed game.
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

const (
	WinnerTeamA = "team_a"
	WinnerTeamB = "team_b"
	WinnerDraw  = "draw"
)
