package core

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gouji-dev/gouji/internal/models"
	"github.com/gouji-dev/gouji/internal/observability"
	"github.com/gouji-dev/gouji/internal/store/memory"
	"github.com/gouji-dev/gouji/pkg/utils"
)

func newTestManager() *GameManager {
	return NewGameManager(memory.NewMatchStore(), observability.NopManager(), ManagerOptions{})
}

func TestManagerCreateGame(t *testing.T) {
	manager := newTestManager()
	ctx := context.Background()

	game, err := manager.CreateGame(ctx, CreateGameRequest{Seed: 42})
	require.NoError(t, err)
	assert.Equal(t, 1, manager.LiveGames())

	got, err := manager.GetGame(ctx, game.ID())
	require.NoError(t, err)
	assert.Equal(t, game.ID(), got.ID())
}

func TestManagerCreateGame_SanitizesNames(t *testing.T) {
	manager := newTestManager()

	game, err := manager.CreateGame(context.Background(), CreateGameRequest{
		Seed:        1,
		PlayerNames: []string{"<script>alert(1)</script>bob"},
	})
	require.NoError(t, err)

	players := game.Players()
	assert.NotContains(t, players[0].Name, "<script>")
	assert.Contains(t, players[0].Name, "bob")
}

func TestManagerCreateGame_RejectsBadHumanSeat(t *testing.T) {
	manager := newTestManager()

	_, err := manager.CreateGame(context.Background(), CreateGameRequest{
		Seed:       1,
		HumanSeats: []int{models.NumPlayers},
	})

	require.Error(t, err)
	assert.True(t, utils.IsValidation(err))
}

func TestManagerCreateGame_UsesConfiguredDefaultStrategy(t *testing.T) {
	manager := NewGameManager(memory.NewMatchStore(), observability.NopManager(), ManagerOptions{
		DefaultStrategy: "greedy",
	})
	ctx := context.Background()

	game, err := manager.CreateGame(ctx, CreateGameRequest{Seed: 42})
	require.NoError(t, err)
	record, err := manager.RunToCompletion(ctx, game.ID())
	require.NoError(t, err)

	// Same seed through the engine with an explicit greedy strategy
	// must replay identically.
	direct := NewGame(GameOptions{Seed: 42, Strategy: GreedyStrategy{}})
	directRecord, err := direct.RunToCompletion(ctx)
	require.NoError(t, err)

	assert.Equal(t, directRecord.Rankings, record.Rankings)
	assert.Equal(t, directRecord.PlayCount, record.PlayCount)
}

func TestManagerCreateGame_RequestStrategyOverridesDefault(t *testing.T) {
	manager := NewGameManager(memory.NewMatchStore(), observability.NopManager(), ManagerOptions{
		DefaultStrategy: "greedy",
	})
	ctx := context.Background()

	game, err := manager.CreateGame(ctx, CreateGameRequest{Seed: 42, Strategy: "random"})
	require.NoError(t, err)
	record, err := manager.RunToCompletion(ctx, game.ID())
	require.NoError(t, err)

	direct := NewGame(GameOptions{Seed: 42, Strategy: RandomStrategy{}})
	directRecord, err := direct.RunToCompletion(ctx)
	require.NoError(t, err)

	assert.Equal(t, directRecord.Rankings, record.Rankings)
	assert.Equal(t, directRecord.PlayCount, record.PlayCount)
}

func TestManagerCreateGame_RejectsUnknownStrategy(t *testing.T) {
	manager := newTestManager()

	_, err := manager.CreateGame(context.Background(), CreateGameRequest{
		Seed:     1,
		Strategy: "clever",
	})

	require.Error(t, err)
	assert.True(t, utils.IsValidation(err))
}

func TestManagerCreateGame_EnforcesLiveGameLimit(t *testing.T) {
	manager := NewGameManager(memory.NewMatchStore(), observability.NopManager(), ManagerOptions{
		MaxLiveGames: 2,
	})
	ctx := context.Background()

	_, err := manager.CreateGame(ctx, CreateGameRequest{Seed: 1})
	require.NoError(t, err)
	second, err := manager.CreateGame(ctx, CreateGameRequest{Seed: 2})
	require.NoError(t, err)

	_, err = manager.CreateGame(ctx, CreateGameRequest{Seed: 3})
	require.Error(t, err)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.CodeInvalidInput, appErr.Code)

	// Finishing a game frees a slot.
	_, err = manager.RunToCompletion(ctx, second.ID())
	require.NoError(t, err)
	_, err = manager.CreateGame(ctx, CreateGameRequest{Seed: 3})
	assert.NoError(t, err)
}

func TestManagerGetGame_NotFound(t *testing.T) {
	manager := newTestManager()

	_, err := manager.GetGame(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, utils.IsNotFound(err))
}

func TestManagerRunToCompletion_ArchivesMatch(t *testing.T) {
	manager := newTestManager()
	ctx := context.Background()

	game, err := manager.CreateGame(ctx, CreateGameRequest{Seed: 42})
	require.NoError(t, err)

	record, err := manager.RunToCompletion(ctx, game.ID())
	require.NoError(t, err)

	// Finished games leave the live set and land in the archive.
	assert.Zero(t, manager.LiveGames())
	_, err = manager.GetGame(ctx, game.ID())
	assert.True(t, utils.IsNotFound(err))

	archived, err := manager.GetMatch(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.Rankings, archived.Rankings)
	assert.Equal(t, record.Winner, archived.Winner)

	matches, err := manager.ListMatches(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, record.ID, matches[0].ID)
}

func TestManagerStepAI(t *testing.T) {
	manager := newTestManager()
	ctx := context.Background()

	game, err := manager.CreateGame(ctx, CreateGameRequest{Seed: 1})
	require.NoError(t, err)

	snap, err := manager.StepAI(ctx, game.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, snap.PlayCount)
}

func TestManagerSubmitPlay(t *testing.T) {
	manager := newTestManager()
	ctx := context.Background()

	game, err := manager.CreateGame(ctx, CreateGameRequest{Seed: 1})
	require.NoError(t, err)

	leader := game.CurrentPlayer()
	plays, err := manager.ValidPlays(ctx, game.ID(), leader)
	require.NoError(t, err)
	require.NotEmpty(t, plays)

	snap, err := manager.SubmitPlay(ctx, game.ID(), leader, plays[0])
	require.NoError(t, err)
	assert.Equal(t, plays[0], snap.TrickToBeat)
	assert.Equal(t, 1, snap.PlayCount)
}

func TestManagerListMatches_ClampsPaging(t *testing.T) {
	manager := newTestManager()

	matches, err := manager.ListMatches(context.Background(), -5, -1)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestManagerHealthCheck(t *testing.T) {
	manager := newTestManager()
	assert.NoError(t, manager.HealthCheck(context.Background()))
}
