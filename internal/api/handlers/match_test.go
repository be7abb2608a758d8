package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gouji-dev/gouji/internal/models"
)

func finishTestGame(t *testing.T, router http.Handler) models.MatchRecord {
	t.Helper()

	game := createTestGame(t, router, CreateGameRequest{Seed: 42})
	rec := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/v1/games/%s/run", game.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var record models.MatchRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	return record
}

func TestListMatches(t *testing.T) {
	router, _ := newTestRouter(t)
	record := finishTestGame(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/matches", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var list MatchListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 100, list.Limit)
	assert.Zero(t, list.Offset)
	require.Len(t, list.Matches, 1)
	assert.Equal(t, record.ID, list.Matches[0].ID)

	// Listings omit the play log.
	assert.Empty(t, list.Matches[0].Plays)
}

func TestListMatches_Empty(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/matches", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var list MatchListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list.Matches)
}

func TestListMatches_Paging(t *testing.T) {
	router, _ := newTestRouter(t)
	finishTestGame(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/matches?limit=5&offset=1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var list MatchListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 5, list.Limit)
	assert.Equal(t, 1, list.Offset)
	assert.Empty(t, list.Matches)
}

func TestListMatches_InvalidPaging(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, query := range []string{"limit=0", "limit=abc", "offset=-1"} {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/matches?"+query, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestGetMatch(t *testing.T) {
	router, _ := newTestRouter(t)
	record := finishTestGame(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/matches/"+record.ID.String(), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var match models.MatchRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &match))
	assert.Equal(t, record.ID, match.ID)
	assert.Equal(t, record.Rankings, match.Rankings)

	// The detail view includes the full play log.
	assert.Len(t, match.Plays, record.PlayCount)
}

func TestGetMatch_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/matches/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMatch_InvalidID(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/matches/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
