package sdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, WithMaxRetries(0), WithoutCircuitBreaker())
	require.NoError(t, err)
	return server, client
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient("://bad")
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	_, client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	assert.NoError(t, client.HealthCheck(context.Background()))
}

func TestHealthCheck_Unhealthy(t *testing.T) {
	_, client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	assert.Error(t, client.HealthCheck(context.Background()))
}

func TestGamesCreate(t *testing.T) {
	gameID := uuid.New()
	_, client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/games", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req CreateGameRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(42), req.Seed)

		writeJSON(t, w, http.StatusCreated, GameState{
			ID:    gameID,
			Phase: "playing",
			Seed:  req.Seed,
		})
	})

	state, err := client.Games.Create(context.Background(), &CreateGameRequest{Seed: 42})
	require.NoError(t, err)
	assert.Equal(t, gameID, state.ID)
	assert.Equal(t, int64(42), state.Seed)
	assert.False(t, state.Finished())
}

func TestGamesCreate_NilRequestUsesDefaults(t *testing.T) {
	_, client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req CreateGameRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Zero(t, req.Seed)
		writeJSON(t, w, http.StatusCreated, GameState{ID: uuid.New()})
	})

	_, err := client.Games.Create(context.Background(), nil)
	assert.NoError(t, err)
}

func TestGamesPlay(t *testing.T) {
	gameID := uuid.New()
	_, client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/games/"+gameID.String()+"/plays", r.URL.Path)

		var req PlayRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 2, req.PlayerID)
		require.Len(t, req.Cards, 1)
		assert.Equal(t, "A", req.Cards[0].Rank)

		writeJSON(t, w, http.StatusOK, GameState{ID: gameID, PlayCount: 1})
	})

	state, err := client.Games.Play(context.Background(), gameID, 2, []Card{{Suit: "♥", Rank: "A"}})
	require.NoError(t, err)
	assert.Equal(t, 1, state.PlayCount)
}

func TestGamesPass_SendsEmptyCards(t *testing.T) {
	gameID := uuid.New()
	_, client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req PlayRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Empty(t, req.Cards)
		writeJSON(t, w, http.StatusOK, GameState{ID: gameID})
	})

	_, err := client.Games.Pass(context.Background(), gameID, 3)
	assert.NoError(t, err)
}

func TestGamesRun(t *testing.T) {
	gameID := uuid.New()
	_, client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/games/"+gameID.String()+"/run", r.URL.Path)
		writeJSON(t, w, http.StatusOK, MatchRecord{
			ID:       gameID,
			Rankings: []int{0, 2, 4, 1, 3, 5},
			Winner:   "team_a",
		})
	})

	record, err := client.Games.Run(context.Background(), gameID)
	require.NoError(t, err)
	assert.Equal(t, "team_a", record.Winner)
	assert.Len(t, record.Rankings, 6)
}

func TestMatchesList_PassesPaging(t *testing.T) {
	_, client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/matches", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "10", r.URL.Query().Get("offset"))
		writeJSON(t, w, http.StatusOK, MatchList{Limit: 5, Offset: 10})
	})

	list, err := client.Matches.List(context.Background(), 5, 10)
	require.NoError(t, err)
	assert.Equal(t, 5, list.Limit)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		code      string
		predicate func(error) bool
	}{
		{"validation", http.StatusBadRequest, "VALIDATION_ERROR", IsValidation},
		{"not found", http.StatusNotFound, "NOT_FOUND", IsNotFound},
		{"invalid play", http.StatusUnprocessableEntity, "INVALID_PLAY", IsInvalidPlay},
		{"internal", http.StatusInternalServerError, "INTERNAL_ERROR", IsInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, map[string]any{
					"error": map[string]any{
						"code":    tt.code,
						"message": "boom",
					},
				})
			})

			_, err := client.Games.Get(context.Background(), uuid.New())
			require.Error(t, err)
			assert.True(t, tt.predicate(err))

			apiErr, ok := AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, apiErr.Code)
			assert.Equal(t, "boom", apiErr.Message)
			assert.Equal(t, tt.status, apiErr.Status)
		})
	}
}

func TestErrorMapping_NonJSONBody(t *testing.T) {
	_, client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	})

	_, err := client.Games.Get(context.Background(), uuid.New())
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, ErrorTypeUnknown, apiErr.Type)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestRetry_RecoversFromConnectionFailure(t *testing.T) {
	// A server that is shut down before the call exercises the retry
	// path; the client gives up after its attempts are exhausted.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := NewClient(server.URL, WithMaxRetries(2), WithoutCircuitBreaker())
	require.NoError(t, err)

	err = client.HealthCheck(context.Background())
	assert.Error(t, err)
}
