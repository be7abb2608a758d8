package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gouji-dev/gouji/internal/models"
	"github.com/gouji-dev/gouji/pkg/utils"
)

func sampleRecord(finishedAt time.Time) *models.MatchRecord {
	return &models.MatchRecord{
		ID:         uuid.New(),
		Seed:       42,
		StartedAt:  finishedAt.Add(-time.Minute),
		FinishedAt: finishedAt,
		Rankings:   []int{0, 2, 4, 1, 3, 5},
		TeamAScore: 6,
		TeamBScore: -3,
		Winner:     models.WinnerTeamA,
		PlayCount:  1,
		Plays: []models.Play{
			{Seq: 0, PlayerID: 0, Cards: []models.Card{{Suit: models.SuitHeart, Rank: models.RankThree}}},
		},
	}
}

func TestSaveAndGetMatch(t *testing.T) {
	store := NewMatchStore()
	ctx := context.Background()
	record := sampleRecord(time.Now())

	require.NoError(t, store.SaveMatch(ctx, record))

	got, err := store.GetMatch(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, record.Rankings, got.Rankings)
	assert.Equal(t, record.Plays, got.Plays)

	// The stored copy is isolated from later caller mutation.
	record.Plays[0].PlayerID = 99
	fresh, err := store.GetMatch(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.Plays[0].PlayerID)
}

func TestSaveMatch_Duplicate(t *testing.T) {
	store := NewMatchStore()
	ctx := context.Background()
	record := sampleRecord(time.Now())

	require.NoError(t, store.SaveMatch(ctx, record))
	err := store.SaveMatch(ctx, record)

	require.Error(t, err)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.CodeAlreadyExists, appErr.Code)
}

func TestGetMatch_NotFound(t *testing.T) {
	store := NewMatchStore()

	_, err := store.GetMatch(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, utils.IsNotFound(err))
}

func TestListMatches(t *testing.T) {
	store := NewMatchStore()
	ctx := context.Background()
	base := time.Now()

	oldest := sampleRecord(base.Add(-2 * time.Hour))
	middle := sampleRecord(base.Add(-time.Hour))
	newest := sampleRecord(base)
	for _, r := range []*models.MatchRecord{oldest, middle, newest} {
		require.NoError(t, store.SaveMatch(ctx, r))
	}

	matches, err := store.ListMatches(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	// Newest first, without the play log.
	assert.Equal(t, newest.ID, matches[0].ID)
	assert.Equal(t, middle.ID, matches[1].ID)
	assert.Equal(t, oldest.ID, matches[2].ID)
	assert.Nil(t, matches[0].Plays)

	page, err := store.ListMatches(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, middle.ID, page[0].ID)

	empty, err := store.ListMatches(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDeleteMatch(t *testing.T) {
	store := NewMatchStore()
	ctx := context.Background()
	record := sampleRecord(time.Now())

	require.NoError(t, store.SaveMatch(ctx, record))
	require.NoError(t, store.DeleteMatch(ctx, record.ID))

	_, err := store.GetMatch(ctx, record.ID)
	assert.True(t, utils.IsNotFound(err))

	err = store.DeleteMatch(ctx, record.ID)
	assert.True(t, utils.IsNotFound(err))
}

func TestPingAndClose(t *testing.T) {
	store := NewMatchStore()
	assert.NoError(t, store.Ping(context.Background()))
	assert.NoError(t, store.Close())
}
