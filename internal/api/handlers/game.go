package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/gouji-dev/gouji/internal/api/middleware"
	"github.com/gouji-dev/gouji/internal/core"
	"github.com/gouji-dev/gouji/internal/models"
)

type GameHandler struct {
	manager  *core.GameManager
	validate *validator.Validate
}

func NewGameHandler(manager *core.GameManager) *GameHandler {
	return &GameHandler{
		manager:  manager,
		validate: validator.New(),
	}
}

type CreateGameRequest struct {
	Seed        int64    `json:"seed"`
	PlayerNames []string `json:"player_names" validate:"omitempty,len=6,dive,max=64"`
	HumanSeats  []int    `json:"human_seats" validate:"omitempty,max=6,dive,min=0,max=5"`
	Strategy    string   `json:"strategy" validate:"omitempty,oneof=random greedy"`
}

type GameResponse struct {
	core.Snapshot
	Seed int64 `json:"seed"`
}

type PlayRequest struct {
	PlayerID int           `json:"player_id" validate:"min=0,max=5"`
	Cards    []models.Card `json:"cards"`
}

type HandResponse struct {
	PlayerID int           `json:"player_id"`
	Cards    []models.Card `json:"cards"`
}

type ValidPlaysResponse struct {
	PlayerID int             `json:"player_id"`
	Plays    [][]models.Card `json:"plays"`
}

func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.SendValidationError(w, r, "invalid request body", map[string]any{
				"error": err.Error(),
			})
			return
		}
	}

	if err := h.validate.Struct(&req); err != nil {
		middleware.SendValidationError(w, r, "invalid game options", map[string]any{
			"error": err.Error(),
		})
		return
	}

	game, err := h.manager.CreateGame(r.Context(), core.CreateGameRequest{
		Seed:        req.Seed,
		PlayerNames: req.PlayerNames,
		HumanSeats:  req.HumanSeats,
		Strategy:    req.Strategy,
	})
	if err != nil {
		middleware.SendError(w, r, err, middleware.HTTPErrorFromAppError(err))
		return
	}

	response := GameResponse{Snapshot: game.Snapshot(), Seed: game.Seed()}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	game, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}

	response := GameResponse{Snapshot: game.Snapshot(), Seed: game.Seed()}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

func (h *GameHandler) GetHand(w http.ResponseWriter, r *http.Request) {
	game, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}

	playerID, ok := playerIDParam(w, r)
	if !ok {
		return
	}

	hand, err := game.HandOf(playerID)
	if err != nil {
		middleware.SendError(w, r, err, middleware.HTTPErrorFromAppError(err))
		return
	}

	response := HandResponse{PlayerID: playerID, Cards: hand.Cards}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

func (h *GameHandler) GetValidPlays(w http.ResponseWriter, r *http.Request) {
	game, ok := h.gameFromRequest(w, r)
	if !ok {
		return
	}

	playerID, ok := playerIDParam(w, r)
	if !ok {
		return
	}

	plays, err := game.ValidPlays(playerID)
	if err != nil {
		middleware.SendError(w, r, err, middleware.HTTPErrorFromAppError(err))
		return
	}

	response := ValidPlaysResponse{PlayerID: playerID, Plays: plays}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

func (h *GameHandler) SubmitPlay(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDParam(w, r)
	if !ok {
		return
	}

	var req PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.SendValidationError(w, r, "invalid request body", map[string]any{
			"error": err.Error(),
		})
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		middleware.SendValidationError(w, r, "invalid play", map[string]any{
			"error": err.Error(),
		})
		return
	}

	snapshot, err := h.manager.SubmitPlay(r.Context(), gameID, req.PlayerID, req.Cards)
	if err != nil {
		middleware.SendError(w, r, err, middleware.HTTPErrorFromAppError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(snapshot)
}

func (h *GameHandler) StepAI(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDParam(w, r)
	if !ok {
		return
	}

	snapshot, err := h.manager.StepAI(r.Context(), gameID)
	if err != nil {
		middleware.SendError(w, r, err, middleware.HTTPErrorFromAppError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(snapshot)
}

func (h *GameHandler) RunToCompletion(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDParam(w, r)
	if !ok {
		return
	}

	record, err := h.manager.RunToCompletion(r.Context(), gameID)
	if err != nil {
		middleware.SendError(w, r, err, middleware.HTTPErrorFromAppError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(record)
}

func (h *GameHandler) gameFromRequest(w http.ResponseWriter, r *http.Request) (*core.Game, bool) {
	gameID, ok := gameIDParam(w, r)
	if !ok {
		return nil, false
	}

	game, err := h.manager.GetGame(r.Context(), gameID)
	if err != nil {
		middleware.SendError(w, r, err, middleware.HTTPErrorFromAppError(err))
		return nil, false
	}
	return game, true
}

func gameIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	gameIDStr := chi.URLParam(r, "gameID")

	gameID, err := uuid.Parse(gameIDStr)
	if err != nil {
		middleware.SendValidationError(w, r, "invalid game ID", map[string]any{
			"game_id": gameIDStr,
		})
		return uuid.Nil, false
	}
	return gameID, true
}

func playerIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	playerIDStr := chi.URLParam(r, "playerID")

	playerID, err := strconv.Atoi(playerIDStr)
	if err != nil || playerID < 0 || playerID >= models.NumPlayers {
		middleware.SendValidationError(w, r, "invalid player ID", map[string]any{
			"player_id": playerIDStr,
		})
		return 0, false
	}
	return playerID, true
}
