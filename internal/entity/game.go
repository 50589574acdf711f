package entity

import (
	"fmt"

	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
)

const (
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusLost       = "lost"
)

const (
	DefaultRows     = 9
	DefaultCols     = 9
	DefaultNumMines = 10

	// MaxCells is the hard ceiling on board size, whatever the configuration says.
	MaxCells = 1_000_000
)

// GameConfig describes a board to be created. A nil Seed asks for a random one.
type GameConfig struct {
	Rows     int    `json:"rows"`
	Cols     int    `json:"cols"`
	NumMines int    `json:"num_mines"`
	Seed     *int64 `json:"random_seed,omitempty"`
}

func DefaultGameConfig() GameConfig {
	return GameConfig{
		Rows:     DefaultRows,
		Cols:     DefaultCols,
		NumMines: DefaultNumMines,
	}
}

func (that GameConfig) Validate() error {
	return that.ValidateWithin(MaxCells)
}

// ValidateWithin also rejects boards with more than maxCells cells. A
// non-positive or larger-than-MaxCells limit falls back to MaxCells.
func (that GameConfig) ValidateWithin(maxCells int) error {
	if maxCells <= 0 || maxCells > MaxCells {
		maxCells = MaxCells
	}

	if that.Rows < 1 || that.Cols < 1 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d",
			apperror.ErrInvalidConfiguration, that.Rows, that.Cols)
	}

	// division keeps the check free of overflow
	if that.Rows > maxCells/that.Cols {
		return fmt.Errorf("%w: board %dx%d exceeds %d cells",
			apperror.ErrInvalidConfiguration, that.Rows, that.Cols, maxCells)
	}

	if that.NumMines < 1 {
		return fmt.Errorf("%w: number of mines must be positive, got %d",
			apperror.ErrInvalidConfiguration, that.NumMines)
	}

	if that.NumMines >= that.Rows*that.Cols {
		return fmt.Errorf("%w: number of mines must be less than total cells (%d >= %d)",
			apperror.ErrInvalidConfiguration, that.NumMines, that.Rows*that.Cols)
	}

	return nil
}

type Game struct {
	ID            string     `json:"id"`
	Config        GameConfig `json:"config"`
	Seed          int64      `json:"seed"`
	Board         *Board     `json:"board"`
	Status        string     `json:"status"`
	FlaggedCount  int        `json:"flagged_count"`
	RevealedCount int        `json:"revealed_count"`
}

func (that *Game) IsOver() bool {
	return that.Status == StatusWon || that.Status == StatusLost
}

func (that *Game) IsWon() bool {
	return that.Status == StatusWon
}

func (that *Game) IsLost() bool {
	return that.Status == StatusLost
}

func (that *Game) TotalCells() int {
	return that.Config.Rows * that.Config.Cols
}

// SafeCells is the number of cells that have to be revealed to win.
func (that *Game) SafeCells() int {
	return that.TotalCells() - that.Config.NumMines
}

func (that *Game) MinesRemaining() int {
	return that.Config.NumMines - that.FlaggedCount
}

func (that *Game) ConfirmInProgress() error {
	if that.IsOver() {
		return fmt.Errorf("%w: game %s is %s", apperror.ErrGameOver, that.ID, that.Status)
	}

	return nil
}
