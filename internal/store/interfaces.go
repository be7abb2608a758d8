package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/gouji-dev/gouji/internal/models"
)

// MatchStore archives completed games. List results omit the play log;
// Get returns it in full.
type MatchStore interface {
	SaveMatch(ctx context.Context, record *models.MatchRecord) error
	GetMatch(ctx context.Context, id uuid.UUID) (*models.MatchRecord, error)
	ListMatches(ctx context.Context, limit, offset int) ([]*models.MatchRecord, error)
	DeleteMatch(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
	Close() error
}
