package usecase

import (
	"errors"

	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
	"github.com/rocketscienceinc/minesweeper-backend/internal/entity"
	"github.com/rocketscienceinc/minesweeper-backend/internal/minesweeper"
)

// Status tags returned to callers, next to the engine outcomes.
const (
	StatusReady                = "ready"
	StatusRevealed             = minesweeper.OutcomeRevealed
	StatusMineHit              = minesweeper.OutcomeMineHit
	StatusWon                  = minesweeper.OutcomeWon
	StatusFlagged              = minesweeper.OutcomeFlagged
	StatusUnflagged            = minesweeper.OutcomeUnflagged
	StatusInvalidConfiguration = "invalid_configuration"
	StatusOutOfBounds          = "out_of_bounds"
	StatusInvalidTarget        = "invalid_target"
	StatusGameOver             = "game_over"
	StatusNoActiveGame         = "no_active_game"
	StatusError                = "error"
)

type SetupResult struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	GameID  string            `json:"game_id,omitempty"`
	Board   string            `json:"board"`
	Config  entity.GameConfig `json:"config"`
	Seed    int64             `json:"random_seed"`
}

type RevealResult struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	Board         string `json:"board"`
	Row           int    `json:"row"`
	Col           int    `json:"col"`
	CellsRevealed int    `json:"cells_revealed"`
	GameOver      bool   `json:"game_over"`
	Won           bool   `json:"won"`
}

type FlagResult struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	Board          string `json:"board"`
	Row            int    `json:"row"`
	Col            int    `json:"col"`
	MinesFlagged   int    `json:"mines_flagged"`
	MinesRemaining int    `json:"mines_remaining"`
	GameOver       bool   `json:"game_over"`
}

type BoardResult struct {
	Status         string `json:"status"`
	Board          string `json:"board"`
	Rows           int    `json:"rows"`
	Cols           int    `json:"cols"`
	MinesRemaining int    `json:"mines_remaining"`
	GameOver       bool   `json:"game_over"`
	Won            bool   `json:"won"`
}

type EvaluationSnapshot struct {
	Reward         float64 `json:"reward"`
	Done           bool    `json:"done"`
	Won            bool    `json:"won"`
	Progress       float64 `json:"progress"`
	Rows           int     `json:"rows"`
	Cols           int     `json:"cols"`
	NumMines       int     `json:"num_mines"`
	CellsRevealed  int     `json:"cells_revealed"`
	CellsFlagged   int     `json:"cells_flagged"`
	CellsTotal     int     `json:"cells_total"`
	MinesRemaining int     `json:"mines_remaining"`
	ExpectedRandom float64 `json:"expected_random"`
	GamesPlayed    int     `json:"games_played"`
	GamesWon       int     `json:"games_won"`
	WinRate        float64 `json:"win_rate"`
	Board          string  `json:"board"`
	Summary        string  `json:"summary"`
}

// StatusOf maps an error to the status tag reported to callers.
func StatusOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, apperror.ErrInvalidConfiguration):
		return StatusInvalidConfiguration
	case errors.Is(err, apperror.ErrOutOfBounds):
		return StatusOutOfBounds
	case errors.Is(err, apperror.ErrInvalidTarget):
		return StatusInvalidTarget
	case errors.Is(err, apperror.ErrGameOver):
		return StatusGameOver
	case errors.Is(err, apperror.ErrNoActiveGame):
		return StatusNoActiveGame
	default:
		return StatusError
	}
}
