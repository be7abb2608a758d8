package sdk

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// GameService drives games on the server.
type GameService struct {
	client *Client
}

// Create starts a new game. A nil request uses server defaults: six
// AI players and a random seed.
func (s *GameService) Create(ctx context.Context, req *CreateGameRequest) (*GameState, error) {
	if req == nil {
		req = &CreateGameRequest{}
	}

	path := fmt.Sprintf("%s/games", apiV1BasePath)

	var state GameState
	if err := s.client.doJSONRequest(ctx, http.MethodPost, path, nil, req, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Get returns the current state of a game.
func (s *GameService) Get(ctx context.Context, gameID uuid.UUID) (*GameState, error) {
	path := fmt.Sprintf("%s/games/%s", apiV1BasePath, gameID)

	var state GameState
	if err := s.client.doJSONRequest(ctx, http.MethodGet, path, nil, nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Hand returns the cards a player currently holds.
func (s *GameService) Hand(ctx context.Context, gameID uuid.UUID, playerID int) (*Hand, error) {
	path := fmt.Sprintf("%s/games/%s/players/%d/hand", apiV1BasePath, gameID, playerID)

	var hand Hand
	if err := s.client.doJSONRequest(ctx, http.MethodGet, path, nil, nil, &hand); err != nil {
		return nil, err
	}
	return &hand, nil
}

// ValidPlays returns every play the player could legally make right
// now. An empty list means the player can only pass.
func (s *GameService) ValidPlays(ctx context.Context, gameID uuid.UUID, playerID int) (*ValidPlays, error) {
	path := fmt.Sprintf("%s/games/%s/players/%d/valid-plays", apiV1BasePath, gameID, playerID)

	var plays ValidPlays
	if err := s.client.doJSONRequest(ctx, http.MethodGet, path, nil, nil, &plays); err != nil {
		return nil, err
	}
	return &plays, nil
}

// Play submits cards for a player. Empty cards means pass.
func (s *GameService) Play(ctx context.Context, gameID uuid.UUID, playerID int, cards []Card) (*GameState, error) {
	path := fmt.Sprintf("%s/games/%s/plays", apiV1BasePath, gameID)
	req := PlayRequest{PlayerID: playerID, Cards: cards}

	var state GameState
	if err := s.client.doJSONRequest(ctx, http.MethodPost, path, nil, req, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Pass submits a pass for a player.
func (s *GameService) Pass(ctx context.Context, gameID uuid.UUID, playerID int) (*GameState, error) {
	return s.Play(ctx, gameID, playerID, nil)
}

// Step advances the game by one AI move.
func (s *GameService) Step(ctx context.Context, gameID uuid.UUID) (*GameState, error) {
	path := fmt.Sprintf("%s/games/%s/step", apiV1BasePath, gameID)

	var state GameState
	if err := s.client.doJSONRequest(ctx, http.MethodPost, path, nil, nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Run plays an all-AI game to completion and returns the archived
// match record.
func (s *GameService) Run(ctx context.Context, gameID uuid.UUID) (*MatchRecord, error) {
	path := fmt.Sprintf("%s/games/%s/run", apiV1BasePath, gameID)

	var record MatchRecord
	if err := s.client.doJSONRequest(ctx, http.MethodPost, path, nil, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}
