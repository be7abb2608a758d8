package core

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/gouji-dev/gouji/internal/models"
	"github.com/gouji-dev/gouji/internal/observability"
	"github.com/gouji-dev/gouji/internal/security"
	"github.com/gouji-dev/gouji/internal/store"
	"github.com/gouji-dev/gouji/pkg/utils"
)

// GameManager owns all live games, archives finished ones, and carries
// the observability plumbing so the engine itself stays lean.
type GameManager struct {
	mu    sync.RWMutex
	games map[uuid.UUID]*Game

	matchStore store.MatchStore
	sanitizer  *security.NameSanitizer
	obs        *observability.Manager
	logger     zerolog.Logger
	tracer     trace.Tracer

	defaultStrategy Strategy
	maxLiveGames    int
}

// ManagerOptions applies server-level game policy.
type ManagerOptions struct {
	// DefaultStrategy is the AI used when a request does not name one.
	// Accepts "random" or "greedy"; empty falls back to random.
	DefaultStrategy string
	// MaxLiveGames caps concurrently running games. Zero means no cap.
	MaxLiveGames int
}

func NewGameManager(matchStore store.MatchStore, obs *observability.Manager, opts ManagerOptions) *GameManager {
	defaultStrategy, err := strategyByName(opts.DefaultStrategy)
	if err != nil {
		defaultStrategy = RandomStrategy{}
	}
	return &GameManager{
		games:           make(map[uuid.UUID]*Game),
		matchStore:      matchStore,
		sanitizer:       security.NewNameSanitizer(),
		obs:             obs,
		logger:          obs.Logger(),
		tracer:          obs.Tracer(),
		defaultStrategy: defaultStrategy,
		maxLiveGames:    opts.MaxLiveGames,
	}
}

// CreateGameRequest carries the caller's game setup. An empty Strategy
// means the manager's configured default.
type CreateGameRequest struct {
	Seed        int64
	PlayerNames []string
	HumanSeats  []int
	Strategy    string
}

func strategyByName(name string) (Strategy, error) {
	switch name {
	case "", "random":
		return RandomStrategy{}, nil
	case "greedy":
		return GreedyStrategy{}, nil
	default:
		return nil, utils.NewAppError(utils.CodeValidation, "unknown strategy", utils.ErrValidation).
			WithDetail("strategy", name)
	}
}

// CreateGame starts a new game. Player names are sanitized before they
// reach the engine.
func (m *GameManager) CreateGame(ctx context.Context, req CreateGameRequest) (*Game, error) {
	_, span := m.obs.StartGameOperation(ctx, "create", "")
	defer span.End()

	names := make([]string, len(req.PlayerNames))
	for i, name := range req.PlayerNames {
		clean, err := m.sanitizer.Sanitize(name)
		if err != nil {
			m.obs.SetSpanError(span, err)
			return nil, err
		}
		names[i] = clean
	}

	for _, seat := range req.HumanSeats {
		if seat < 0 || seat >= models.NumPlayers {
			err := utils.NewAppError(utils.CodeValidation, "human seat out of range", utils.ErrValidation).
				WithDetail("seat", seat)
			m.obs.SetSpanError(span, err)
			return nil, err
		}
	}

	strategy := m.defaultStrategy
	if req.Strategy != "" {
		var err error
		strategy, err = strategyByName(req.Strategy)
		if err != nil {
			m.obs.SetSpanError(span, err)
			return nil, err
		}
	}

	game := NewGame(GameOptions{
		Seed:        req.Seed,
		PlayerNames: names,
		HumanSeats:  req.HumanSeats,
		Strategy:    strategy,
		Logger:      m.logger,
	})

	m.mu.Lock()
	if m.maxLiveGames > 0 && len(m.games) >= m.maxLiveGames {
		m.mu.Unlock()
		err := utils.NewAppError(utils.CodeInvalidInput, "live game limit reached", utils.ErrInvalidInput).
			WithDetail("max_live_games", m.maxLiveGames)
		m.obs.SetSpanError(span, err)
		return nil, err
	}
	m.games[game.ID()] = game
	live := len(m.games)
	m.mu.Unlock()

	m.obs.RecordGameCreated()
	m.obs.SetLiveGames(live)
	m.logger.Info().
		Str("game_id", game.ID().String()).
		Int64("seed", game.Seed()).
		Msg("game created")

	return game, nil
}

// GetGame returns a live game by ID.
func (m *GameManager) GetGame(ctx context.Context, id uuid.UUID) (*Game, error) {
	m.mu.RLock()
	game, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return nil, utils.NewAppError(utils.CodeNotFound, "game not found", utils.ErrNotFound).
			WithDetail("game_id", id.String())
	}
	return game, nil
}

// SubmitPlay applies a play and archives the game if it just finished.
func (m *GameManager) SubmitPlay(ctx context.Context, id uuid.UUID, playerID int, cards []models.Card) (Snapshot, error) {
	ctx, span := m.obs.StartGameOperation(ctx, "play", id.String())
	defer span.End()

	game, err := m.GetGame(ctx, id)
	if err != nil {
		m.obs.SetSpanError(span, err)
		return Snapshot{}, err
	}

	start := time.Now()
	err = game.SubmitPlay(playerID, cards)
	m.obs.RecordPlay(time.Since(start), err == nil)
	if err != nil {
		m.obs.SetSpanError(span, err)
		return Snapshot{}, err
	}

	m.archiveIfOver(ctx, game)
	return game.Snapshot(), nil
}

// StepAI advances one AI turn and archives the game if it just finished.
func (m *GameManager) StepAI(ctx context.Context, id uuid.UUID) (Snapshot, error) {
	ctx, span := m.obs.StartGameOperation(ctx, "step", id.String())
	defer span.End()

	game, err := m.GetGame(ctx, id)
	if err != nil {
		m.obs.SetSpanError(span, err)
		return Snapshot{}, err
	}

	start := time.Now()
	err = game.StepAI()
	m.obs.RecordPlay(time.Since(start), err == nil)
	if err != nil {
		m.obs.SetSpanError(span, err)
		return Snapshot{}, err
	}

	m.archiveIfOver(ctx, game)
	return game.Snapshot(), nil
}

// RunToCompletion drives an all-AI game to its end and archives it.
func (m *GameManager) RunToCompletion(ctx context.Context, id uuid.UUID) (*models.MatchRecord, error) {
	ctx, span := m.obs.StartGameOperation(ctx, "run", id.String())
	defer span.End()

	game, err := m.GetGame(ctx, id)
	if err != nil {
		m.obs.SetSpanError(span, err)
		return nil, err
	}

	record, err := game.RunToCompletion(ctx)
	if err != nil {
		m.obs.SetSpanError(span, err)
		return nil, err
	}

	m.archiveIfOver(ctx, game)
	return record, nil
}

// ValidPlays lists the legal plays for the current player of a game.
func (m *GameManager) ValidPlays(ctx context.Context, id uuid.UUID, playerID int) ([][]models.Card, error) {
	game, err := m.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	return game.ValidPlays(playerID)
}

// ListMatches returns archived matches, newest first.
func (m *GameManager) ListMatches(ctx context.Context, limit, offset int) ([]*models.MatchRecord, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return m.matchStore.ListMatches(ctx, limit, offset)
}

// GetMatch returns one archived match with its full play log.
func (m *GameManager) GetMatch(ctx context.Context, id uuid.UUID) (*models.MatchRecord, error) {
	return m.matchStore.GetMatch(ctx, id)
}

// HealthCheck verifies the match store is reachable.
func (m *GameManager) HealthCheck(ctx context.Context) error {
	return m.matchStore.Ping(ctx)
}

// LiveGames returns the number of games currently held in memory.
func (m *GameManager) LiveGames() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// archiveIfOver persists a finished game and drops it from the live set.
// Archive failures are logged, not returned: the game result is already
// visible to callers through the record.
func (m *GameManager) archiveIfOver(ctx context.Context, game *Game) {
	if game.Phase() != models.PhaseOver {
		return
	}

	record, err := game.Record()
	if err != nil {
		return
	}

	if err := m.matchStore.SaveMatch(ctx, record); err != nil {
		m.logger.Warn().
			Err(err).
			Str("game_id", game.ID().String()).
			Msg("failed to archive match")
	} else {
		m.obs.RecordGameFinished(record.Winner)
	}

	m.mu.Lock()
	delete(m.games, game.ID())
	live := len(m.games)
	m.mu.Unlock()
	m.obs.SetLiveGames(live)
}
