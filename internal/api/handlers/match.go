package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gouji-dev/gouji/internal/api/middleware"
	"github.com/gouji-dev/gouji/internal/core"
	"github.com/gouji-dev/gouji/internal/models"
)

type MatchHandler struct {
	manager *core.GameManager
}

func NewMatchHandler(manager *core.GameManager) *MatchHandler {
	return &MatchHandler{manager: manager}
}

type MatchListResponse struct {
	Matches []*models.MatchRecord `json:"matches"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
}

func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 100)
	offset := queryInt(r, "offset", 0)
	if limit < 1 || offset < 0 {
		middleware.SendValidationError(w, r, "invalid pagination parameters", map[string]any{
			"limit":  limit,
			"offset": offset,
		})
		return
	}

	matches, err := h.manager.ListMatches(r.Context(), limit, offset)
	if err != nil {
		middleware.SendError(w, r, err, middleware.HTTPErrorFromAppError(err))
		return
	}

	response := MatchListResponse{Matches: matches, Limit: limit, Offset: offset}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchIDStr := chi.URLParam(r, "matchID")

	matchID, err := uuid.Parse(matchIDStr)
	if err != nil {
		middleware.SendValidationError(w, r, "invalid match ID", map[string]any{
			"match_id": matchIDStr,
		})
		return
	}

	match, err := h.manager.GetMatch(r.Context(), matchID)
	if err != nil {
		middleware.SendError(w, r, err, middleware.HTTPErrorFromAppError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(match)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return value
}
