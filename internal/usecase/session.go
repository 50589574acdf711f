package usecase

import (
	"context"
	"fmt"
	"hash/maphash"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
	"github.com/rocketscienceinc/minesweeper-backend/internal/entity"
	"github.com/rocketscienceinc/minesweeper-backend/internal/minesweeper"
)

type eventPublisher interface {
	Publish(ctx context.Context, event *entity.Event) error
}

// Session owns the single current game and the lifetime counters. Every
// operation holds the mutex, so callers from several transports are
// serialized.
type Session struct {
	logger    *slog.Logger
	publisher eventPublisher
	maxCells  int

	mu          sync.Mutex
	game        *entity.Game
	gamesPlayed int
	gamesWon    int
}

// NewSession - creates an empty session. publisher may be nil. Boards larger
// than maxCells are refused; zero keeps the engine ceiling.
func NewSession(logger *slog.Logger, publisher eventPublisher, maxCells int) *Session {
	return &Session{
		logger:    logger.With("component", "session"),
		publisher: publisher,
		maxCells:  maxCells,
	}
}

func (that *Session) StartNewGame(ctx context.Context, config entity.GameConfig) (*SetupResult, error) {
	log := that.logger.With("method", "StartNewGame")

	seed := randomSeed()
	if config.Seed != nil {
		seed = *config.Seed
	}

	var game *entity.Game

	err := config.ValidateWithin(that.maxCells)
	if err == nil {
		game, err = minesweeper.NewGame(uuid.NewString(), config, seed)
	}

	if err != nil {
		log.Info("rejected game configuration", "error", err)

		return &SetupResult{Status: StatusOf(err), Message: err.Error(), Config: config}, err
	}

	board := minesweeper.Render(game.Board)

	that.mu.Lock()
	that.game = game
	that.gamesPlayed++
	that.mu.Unlock()

	log.Info("new game started",
		"gameID", game.ID, "rows", config.Rows, "cols", config.Cols, "mines", config.NumMines, "seed", seed)

	that.publish(ctx, newEvent(entity.EventSetup, game, StatusReady, 0, 0, board))

	return &SetupResult{
		Status: StatusReady,
		Message: fmt.Sprintf("New %dx%d minesweeper game created with %d mines",
			config.Rows, config.Cols, config.NumMines),
		GameID: game.ID,
		Board:  board,
		Config: config,
		Seed:   seed,
	}, nil
}

func (that *Session) Reveal(ctx context.Context, row, col int) (*RevealResult, error) {
	result, event, err := that.reveal(row, col)
	if err != nil {
		that.logger.Debug("reveal rejected", "row", row, "col", col, "error", err)
		return result, err
	}

	that.publish(ctx, event)

	return result, nil
}

func (that *Session) reveal(row, col int) (*RevealResult, *entity.Event, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	result := &RevealResult{Row: row, Col: col}

	game := that.game
	if game == nil {
		return failed(result, apperror.ErrNoActiveGame)
	}

	outcome, err := minesweeper.Reveal(game, row, col)

	result.Board = outcome.Board
	result.GameOver = game.IsOver()
	result.Won = game.IsWon()

	if err != nil {
		result.Status = StatusOf(err)
		result.Message = err.Error()

		return result, nil, err
	}

	result.Status = outcome.Outcome
	result.CellsRevealed = outcome.Revealed

	switch outcome.Outcome {
	case minesweeper.OutcomeWon:
		that.gamesWon++
		result.Message = "Congratulations! You won!"
	case minesweeper.OutcomeMineHit:
		result.Message = "Game over - you hit a mine!"
	default:
		result.Message = fmt.Sprintf("Revealed cell (%d, %d)", row, col)
	}

	if game.IsOver() {
		that.logger.Info("game finished", "gameID", game.ID, "status", game.Status,
			"revealed", game.RevealedCount, "safeCells", game.SafeCells())
	}

	return result, newEvent(entity.EventReveal, game, result.Status, row, col, result.Board), nil
}

func (that *Session) Flag(ctx context.Context, row, col int) (*FlagResult, error) {
	result, event, err := that.flag(row, col)
	if err != nil {
		that.logger.Debug("flag rejected", "row", row, "col", col, "error", err)
		return result, err
	}

	that.publish(ctx, event)

	return result, nil
}

func (that *Session) flag(row, col int) (*FlagResult, *entity.Event, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	result := &FlagResult{Row: row, Col: col}

	game := that.game
	if game == nil {
		return failed(result, apperror.ErrNoActiveGame)
	}

	outcome, err := minesweeper.ToggleFlag(game, row, col)

	result.Board = outcome.Board
	result.MinesFlagged = game.FlaggedCount
	result.MinesRemaining = game.MinesRemaining()
	result.GameOver = game.IsOver()

	if err != nil {
		result.Status = StatusOf(err)
		result.Message = err.Error()

		return result, nil, err
	}

	result.Status = outcome.Outcome
	if outcome.Outcome == minesweeper.OutcomeFlagged {
		result.Message = fmt.Sprintf("Flagged cell (%d, %d)", row, col)
	} else {
		result.Message = fmt.Sprintf("Unflagged cell (%d, %d)", row, col)
	}

	return result, newEvent(entity.EventFlag, game, result.Status, row, col, result.Board), nil
}

// Board returns the current observation without changing anything.
func (that *Session) Board(_ context.Context) (*BoardResult, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game := that.game
	if game == nil {
		return &BoardResult{Status: StatusNoActiveGame}, apperror.ErrNoActiveGame
	}

	return &BoardResult{
		Status:         game.Status,
		Board:          minesweeper.Render(game.Board),
		Rows:           game.Config.Rows,
		Cols:           game.Config.Cols,
		MinesRemaining: game.MinesRemaining(),
		GameOver:       game.IsOver(),
		Won:            game.IsWon(),
	}, nil
}

// Snapshot evaluates the current game. It never fails: without a game it
// reports only the lifetime counters.
func (that *Session) Snapshot(_ context.Context) *EvaluationSnapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	snapshot := &EvaluationSnapshot{
		GamesPlayed: that.gamesPlayed,
		GamesWon:    that.gamesWon,
		WinRate:     WinRate(that.gamesWon, that.gamesPlayed),
	}

	if game := that.game; game != nil {
		total, mines := game.TotalCells(), game.Config.NumMines
		revealed := game.Board.Count(entity.Revealed)
		flagged := game.Board.Count(entity.Flagged)

		snapshot.Done = game.IsOver()
		snapshot.Won = game.IsWon()
		snapshot.Rows = game.Config.Rows
		snapshot.Cols = game.Config.Cols
		snapshot.NumMines = mines
		snapshot.CellsRevealed = revealed
		snapshot.CellsFlagged = flagged
		snapshot.CellsTotal = total
		snapshot.MinesRemaining = mines - flagged
		snapshot.Progress = float64(revealed) / float64(max(1, total-mines))
		snapshot.ExpectedRandom = ExpectedRandomCells(total, mines)
		snapshot.Reward = Reward(revealed, total, mines, game.IsWon(), game.IsLost())
		snapshot.Board = minesweeper.Render(game.Board)
	}

	snapshot.Summary = summarize(snapshot)

	return snapshot
}

func (that *Session) publish(ctx context.Context, event *entity.Event) {
	if that.publisher == nil || event == nil {
		return
	}

	if err := that.publisher.Publish(ctx, event); err != nil {
		that.logger.Error("failed to publish event", "type", event.Type, "gameID", event.GameID, "error", err)
	}
}

type taggedResult interface {
	*RevealResult | *FlagResult
}

func failed[T taggedResult](result T, err error) (T, *entity.Event, error) {
	switch r := any(result).(type) {
	case *RevealResult:
		r.Status, r.Message = StatusOf(err), err.Error()
	case *FlagResult:
		r.Status, r.Message = StatusOf(err), err.Error()
	}

	return result, nil, err
}

func newEvent(eventType string, game *entity.Game, status string, row, col int, board string) *entity.Event {
	return &entity.Event{
		Type:       eventType,
		GameID:     game.ID,
		Status:     status,
		Row:        row,
		Col:        col,
		Board:      board,
		OccurredAt: time.Now().UTC(),
	}
}

func randomSeed() int64 {
	return int64(new(maphash.Hash).Sum64() >> 1) //nolint: gosec // shifted to fit
}
