package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gouji-dev/gouji/internal/models"
	"github.com/gouji-dev/gouji/pkg/utils"
)

// MatchStore implements store.MatchStore on PostgreSQL.
type MatchStore struct {
	pool *pgxpool.Pool
}

func NewMatchStore(connectionString string) (*MatchStore, error) {
	config, err := pgxpool.ParseConfig(connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = time.Minute * 30

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &MatchStore{pool: pool}, nil
}

func (s *MatchStore) GetPool() *pgxpool.Pool {
	return s.pool
}

func (s *MatchStore) SaveMatch(ctx context.Context, record *models.MatchRecord) error {
	rankingsJSON, err := json.Marshal(record.Rankings)
	if err != nil {
		return fmt.Errorf("failed to marshal rankings: %w", err)
	}
	playsJSON, err := json.Marshal(record.Plays)
	if err != nil {
		return fmt.Errorf("failed to marshal plays: %w", err)
	}

	query := `
		INSERT INTO matches (id, seed, started_at, finished_at, rankings, team_a_score, team_b_score, winner, play_count, plays)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = s.pool.Exec(ctx, query,
		record.ID,
		record.Seed,
		record.StartedAt,
		record.FinishedAt,
		rankingsJSON,
		record.TeamAScore,
		record.TeamBScore,
		record.Winner,
		record.PlayCount,
		playsJSON,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return utils.NewAppError(utils.CodeAlreadyExists, "match already archived", err).
				WithDetail("match_id", record.ID.String())
		}
		return fmt.Errorf("failed to save match: %w", err)
	}

	return nil
}

func (s *MatchStore) GetMatch(ctx context.Context, id uuid.UUID) (*models.MatchRecord, error) {
	query := `
		SELECT id, seed, started_at, finished_at, rankings, team_a_score, team_b_score, winner, play_count, plays
		FROM matches
		WHERE id = $1
	`

	record, err := scanMatch(s.pool.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NewAppError(utils.CodeNotFound, "match not found", utils.ErrNotFound).
				WithDetail("match_id", id.String())
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return record, nil
}

func (s *MatchStore) ListMatches(ctx context.Context, limit, offset int) ([]*models.MatchRecord, error) {
	query := `
		SELECT id, seed, started_at, finished_at, rankings, team_a_score, team_b_score, winner, play_count, NULL
		FROM matches
		ORDER BY finished_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	records := make([]*models.MatchRecord, 0, limit)
	for rows.Next() {
		record, err := scanMatch(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}
	return records, nil
}

func (s *MatchStore) DeleteMatch(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return utils.NewAppError(utils.CodeNotFound, "match not found", utils.ErrNotFound).
			WithDetail("match_id", id.String())
	}
	return nil
}

func (s *MatchStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *MatchStore) Close() error {
	s.pool.Close()
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner, withPlays bool) (*models.MatchRecord, error) {
	var (
		record       models.MatchRecord
		rankingsJSON []byte
		playsJSON    []byte
	)

	err := row.Scan(
		&record.ID,
		&record.Seed,
		&record.StartedAt,
		&record.FinishedAt,
		&rankingsJSON,
		&record.TeamAScore,
		&record.TeamBScore,
		&record.Winner,
		&record.PlayCount,
		&playsJSON,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(rankingsJSON, &record.Rankings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rankings: %w", err)
	}
	if withPlays && playsJSON != nil {
		if err := json.Unmarshal(playsJSON, &record.Plays); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plays: %w", err)
		}
	}
	return &record, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
