package core

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gouji-dev/gouji/internal/models"
	"github.com/gouji-dev/gouji/pkg/utils"
)

// GameOptions configures a new game. Zero values give a fully-AI game
// with a time-based seed and random strategy.
type GameOptions struct {
	Seed        int64
	PlayerNames []string
	HumanSeats  []int
	Strategy    Strategy
	Logger      zerolog.Logger
}

// Game holds the full state of one running game. All exported methods
// are safe for concurrent use.
type Game struct {
	mu sync.Mutex

	id      uuid.UUID
	seed    int64
	rng     *rand.Rand
	players []models.Player
	hands   []*models.Hand

	phase      models.GamePhase
	current    int
	trick      []models.Card
	trickOwner int
	passes     int

	finished  []bool
	rankings  []int
	plays     []models.Play
	startedAt time.Time
	endedAt   time.Time

	strategy Strategy
	logger   zerolog.Logger
}

// NewGame creates a game, builds and shuffles the shoe, and deals.
// The game starts in the playing phase with a randomly chosen leader.
func NewGame(opts GameOptions) *Game {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	strategy := opts.Strategy
	if strategy == nil {
		strategy = RandomStrategy{}
	}

	human := make(map[int]bool, len(opts.HumanSeats))
	for _, seat := range opts.HumanSeats {
		human[seat] = true
	}

	players := make([]models.Player, models.NumPlayers)
	for i := range players {
		name := fmt.Sprintf("Player%d", i)
		if i < len(opts.PlayerNames) && opts.PlayerNames[i] != "" {
			name = opts.PlayerNames[i]
		}
		players[i] = models.Player{
			ID:   i,
			Name: name,
			IsAI: !human[i],
			Team: models.TeamForSeat(i),
		}
	}

	deck := BuildDecks()
	Shuffle(deck, rng)

	g := &Game{
		id:         uuid.New(),
		seed:       seed,
		rng:        rng,
		players:    players,
		hands:      Deal(deck),
		phase:      models.PhasePlaying,
		current:    rng.Intn(models.NumPlayers),
		trickOwner: -1,
		finished:   make([]bool, models.NumPlayers),
		startedAt:  time.Now(),
		strategy:   strategy,
		logger:     opts.Logger,
	}

	g.logger.Debug().
		Str("game_id", g.id.String()).
		Int64("seed", seed).
		Int("leader", g.current).
		Msg("game dealt")

	return g
}

func (g *Game) ID() uuid.UUID { return g.id }

func (g *Game) Seed() int64 { return g.seed }

// Players returns a copy of the seated players.
func (g *Game) Players() []models.Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	players := make([]models.Player, len(g.players))
	copy(players, g.players)
	return players
}

// CurrentPlayer returns the seat whose turn it is.
func (g *Game) CurrentPlayer() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

func (g *Game) Phase() models.GamePhase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// HandOf returns a copy of a player's current hand.
func (g *Game) HandOf(playerID int) (*models.Hand, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if playerID < 0 || playerID >= models.NumPlayers {
		return nil, utils.NewAppError(utils.CodeNotFound, "no such seat", nil).
			WithDetail("player_id", playerID)
	}
	cards := make([]models.Card, len(g.hands[playerID].Cards))
	copy(cards, g.hands[playerID].Cards)
	return &models.Hand{Cards: cards, Sorted: g.hands[playerID].Sorted}, nil
}

// ValidPlays returns every group the current player may legally play.
// An empty result means the player must pass.
func (g *Game) ValidPlays(playerID int) ([][]models.Card, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.checkTurn(playerID); err != nil {
		return nil, err
	}
	return FindBeatingPlays(g.hands[playerID].Cards, g.trick), nil
}

// SubmitPlay applies a play for the given player. A nil or empty cards
// slice is a pass, which is only legal when there is a group to beat.
func (g *Game) SubmitPlay(playerID int, cards []models.Card) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.submitLocked(playerID, cards)
}

// StepAI advances the game by one AI turn using the game's strategy.
// It fails when the current seat belongs to a human.
func (g *Game) StepAI() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == models.PhaseOver {
		return utils.NewAppError(utils.CodeGameOver, "game is over", utils.ErrGameOver)
	}
	player := g.players[g.current]
	if !player.IsAI {
		return utils.NewAppError(utils.CodeInvalidInput, "current seat is human", nil).
			WithDetail("player_id", player.ID)
	}

	cards := g.strategy.ChoosePlay(g.hands[g.current], g.trick, g.rng)
	return g.submitLocked(g.current, cards)
}

// RunToCompletion drives AI turns until the game ends or ctx is done.
// Every seat must be AI-controlled.
func (g *Game) RunToCompletion(ctx context.Context) (*models.MatchRecord, error) {
	for _, p := range g.Players() {
		if !p.IsAI {
			return nil, utils.NewAppError(utils.CodeInvalidInput, "cannot auto-run a game with human seats", nil).
				WithDetail("player_id", p.ID)
		}
	}

	for g.Phase() != models.PhaseOver {
		select {
		case <-ctx.Done():
			return nil, utils.NewAppError(utils.CodeTimeout, "game run cancelled", ctx.Err())
		default:
		}
		if err := g.StepAI(); err != nil {
			return nil, err
		}
	}
	return g.Record()
}

// Record returns the archived form of a finished game.
func (g *Game) Record() (*models.MatchRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != models.PhaseOver {
		return nil, utils.NewAppError(utils.CodeInvalidInput, "game is not over", nil).
			WithDetail("phase", string(g.phase))
	}

	result := ScoreGame(g.rankings)
	plays := make([]models.Play, len(g.plays))
	copy(plays, g.plays)
	rankings := make([]int, len(g.rankings))
	copy(rankings, g.rankings)

	return &models.MatchRecord{
		ID:         g.id,
		Seed:       g.seed,
		StartedAt:  g.startedAt,
		FinishedAt: g.endedAt,
		Rankings:   rankings,
		TeamAScore: result.TeamScores[models.TeamA],
		TeamBScore: result.TeamScores[models.TeamB],
		Winner:     result.Winner,
		PlayCount:  len(plays),
		Plays:      plays,
	}, nil
}

// Snapshot is the externally visible game state.
type Snapshot struct {
	ID            uuid.UUID        `json:"id"`
	Phase         models.GamePhase `json:"phase"`
	CurrentPlayer int              `json:"current_player"`
	TrickToBeat   []models.Card    `json:"trick_to_beat,omitempty"`
	Players       []models.Player  `json:"players"`
	HandSizes     []int            `json:"hand_sizes"`
	Rankings      []int            `json:"rankings"`
	PlayCount     int              `json:"play_count"`
}

func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	sizes := make([]int, models.NumPlayers)
	for i, h := range g.hands {
		sizes[i] = h.Len()
	}
	players := make([]models.Player, len(g.players))
	copy(players, g.players)
	rankings := make([]int, len(g.rankings))
	copy(rankings, g.rankings)

	var trick []models.Card
	if len(g.trick) > 0 {
		trick = make([]models.Card, len(g.trick))
		copy(trick, g.trick)
	}

	return Snapshot{
		ID:            g.id,
		Phase:         g.phase,
		CurrentPlayer: g.current,
		TrickToBeat:   trick,
		Players:       players,
		HandSizes:     sizes,
		Rankings:      rankings,
		PlayCount:     len(g.plays),
	}
}

func (g *Game) checkTurn(playerID int) error {
	if g.phase == models.PhaseOver {
		return utils.NewAppError(utils.CodeGameOver, "game is over", utils.ErrGameOver)
	}
	if playerID < 0 || playerID >= models.NumPlayers {
		return utils.NewAppError(utils.CodeNotFound, "no such seat", nil).
			WithDetail("player_id", playerID)
	}
	if playerID != g.current {
		return utils.NewAppError(utils.CodeNotYourTurn, "not this player's turn", utils.ErrNotYourTurn).
			WithDetail("player_id", playerID).
			WithDetail("current_player", g.current)
	}
	return nil
}

func (g *Game) submitLocked(playerID int, cards []models.Card) error {
	if err := g.checkTurn(playerID); err != nil {
		return err
	}

	if len(cards) == 0 {
		return g.passLocked(playerID)
	}

	if _, ok := UniformRank(cards); !ok {
		return utils.NewAppError(utils.CodeInvalidPlay, "play must be cards of a single rank", utils.ErrInvalidPlay)
	}
	if !g.hands[playerID].Contains(cards) {
		return utils.NewAppError(utils.CodeInvalidPlay, "cards are not in hand", utils.ErrInvalidPlay).
			WithDetail("player_id", playerID)
	}
	if !CanBeat(cards, g.trick) {
		return utils.NewAppError(utils.CodeInvalidPlay, "play does not beat the table", utils.ErrInvalidPlay).
			WithDetail("trick_size", len(g.trick))
	}

	g.hands[playerID].Remove(cards)
	g.trick = cards
	g.trickOwner = playerID
	g.passes = 0
	g.recordPlay(playerID, cards, false)

	g.logger.Debug().
		Str("game_id", g.id.String()).
		Int("player_id", playerID).
		Int("cards", len(cards)).
		Str("rank", string(cards[0].Rank)).
		Msg("play accepted")

	if g.hands[playerID].IsEmpty() {
		g.finishPlayer(playerID)
		if g.phase == models.PhaseOver {
			return nil
		}
	}

	g.advance()
	return nil
}

func (g *Game) passLocked(playerID int) error {
	if len(g.trick) == 0 {
		return utils.NewAppError(utils.CodeInvalidPlay, "leader must play", utils.ErrInvalidPlay).
			WithDetail("player_id", playerID)
	}

	g.passes++
	g.recordPlay(playerID, nil, true)

	// When every other active seat has passed, the trick is won: it
	// clears, and the lead returns to the trick owner (or the next
	// active seat when the owner already finished).
	needed := g.activeCount()
	if !g.finished[g.trickOwner] {
		needed--
	}
	if g.passes >= needed {
		leader := g.trickOwner
		if g.finished[leader] {
			leader = g.nextActive(leader)
		}
		g.trick = nil
		g.trickOwner = -1
		g.passes = 0
		g.current = leader
		return nil
	}

	g.advance()
	return nil
}

func (g *Game) recordPlay(playerID int, cards []models.Card, pass bool) {
	g.plays = append(g.plays, models.Play{
		Seq:      len(g.plays),
		PlayerID: playerID,
		Cards:    cards,
		Pass:     pass,
		PlayedAt: time.Now(),
	})
}

func (g *Game) finishPlayer(playerID int) {
	g.finished[playerID] = true
	g.rankings = append(g.rankings, playerID)

	g.logger.Info().
		Str("game_id", g.id.String()).
		Int("player_id", playerID).
		Int("rank", len(g.rankings)).
		Msg("player finished")

	if g.activeCount() == 1 {
		for seat := 0; seat < models.NumPlayers; seat++ {
			if !g.finished[seat] {
				g.finished[seat] = true
				g.rankings = append(g.rankings, seat)
				break
			}
		}
		g.phase = models.PhaseOver
		g.endedAt = time.Now()

		g.logger.Info().
			Str("game_id", g.id.String()).
			Ints("rankings", g.rankings).
			Int("plays", len(g.plays)).
			Msg("game over")
	}
}

func (g *Game) activeCount() int {
	count := 0
	for _, done := range g.finished {
		if !done {
			count++
		}
	}
	return count
}

// nextActive returns the next seat after from that still holds cards.
func (g *Game) nextActive(from int) int {
	seat := from
	for i := 0; i < models.NumPlayers; i++ {
		seat = (seat + 1) % models.NumPlayers
		if !g.finished[seat] {
			return seat
		}
	}
	return from
}

func (g *Game) advance() {
	g.current = g.nextActive(g.current)
}
