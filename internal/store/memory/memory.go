package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/gouji-dev/gouji/internal/models"
	"github.com/gouji-dev/gouji/pkg/utils"
)

// MatchStore is an in-memory match archive. It backs DB-less runs and
// the test suite.
type MatchStore struct {
	mu      sync.RWMutex
	matches map[uuid.UUID]*models.MatchRecord
}

func NewMatchStore() *MatchStore {
	return &MatchStore{
		matches: make(map[uuid.UUID]*models.MatchRecord),
	}
}

func (s *MatchStore) SaveMatch(ctx context.Context, record *models.MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.matches[record.ID]; exists {
		return utils.NewAppError(utils.CodeAlreadyExists, "match already archived", utils.ErrAlreadyExists).
			WithDetail("match_id", record.ID.String())
	}

	stored := *record
	stored.Plays = make([]models.Play, len(record.Plays))
	copy(stored.Plays, record.Plays)
	s.matches[record.ID] = &stored
	return nil
}

func (s *MatchStore) GetMatch(ctx context.Context, id uuid.UUID) (*models.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.matches[id]
	if !ok {
		return nil, utils.NewAppError(utils.CodeNotFound, "match not found", utils.ErrNotFound).
			WithDetail("match_id", id.String())
	}

	out := *record
	out.Plays = make([]models.Play, len(record.Plays))
	copy(out.Plays, record.Plays)
	return &out, nil
}

func (s *MatchStore) ListMatches(ctx context.Context, limit, offset int) ([]*models.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*models.MatchRecord, 0, len(s.matches))
	for _, record := range s.matches {
		all = append(all, record)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].FinishedAt.After(all[j].FinishedAt)
	})

	if offset >= len(all) {
		return []*models.MatchRecord{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	out := make([]*models.MatchRecord, 0, end-offset)
	for _, record := range all[offset:end] {
		summary := *record
		summary.Plays = nil
		out = append(out, &summary)
	}
	return out, nil
}

func (s *MatchStore) DeleteMatch(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[id]; !ok {
		return utils.NewAppError(utils.CodeNotFound, "match not found", utils.ErrNotFound).
			WithDetail("match_id", id.String())
	}
	delete(s.matches, id)
	return nil
}

func (s *MatchStore) Ping(ctx context.Context) error {
	return nil
}

func (s *MatchStore) Close() error {
	return nil
}
