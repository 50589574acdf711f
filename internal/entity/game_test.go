package entity

import (
	"math"
	"testing"

	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsOver returns false while game is in progress", func(t *testing.T) {
		// Given: a game in progress
		game := &Game{Status: StatusInProgress}

		// Then: it is neither over, won nor lost
		assert.False(t, game.IsOver())
		assert.False(t, game.IsWon())
		assert.False(t, game.IsLost())
		require.NoError(t, game.ConfirmInProgress())
	})

	t.Run("Won game is over", func(t *testing.T) {
		// Given: a won game
		game := &Game{Status: StatusWon}

		// Then: it is over and won
		assert.True(t, game.IsOver())
		assert.True(t, game.IsWon())
		require.ErrorIs(t, game.ConfirmInProgress(), apperror.ErrGameOver)
	})

	t.Run("Lost game is over", func(t *testing.T) {
		// Given: a lost game
		game := &Game{Status: StatusLost}

		// Then: it is over and lost
		assert.True(t, game.IsOver())
		assert.True(t, game.IsLost())
		require.ErrorIs(t, game.ConfirmInProgress(), apperror.ErrGameOver)
	})
}

func TestGameCounters(t *testing.T) {
	// Given: a 6x6 game with 6 mines and 2 flags
	game := &Game{
		Config:       GameConfig{Rows: 6, Cols: 6, NumMines: 6},
		FlaggedCount: 2,
	}

	// Then: derived counters follow the config
	assert.Equal(t, 36, game.TotalCells())
	assert.Equal(t, 30, game.SafeCells())
	assert.Equal(t, 4, game.MinesRemaining())
}

func TestGameConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  GameConfig
		wantErr bool
	}{
		{name: "default", config: DefaultGameConfig()},
		{name: "single mine on 1x2", config: GameConfig{Rows: 1, Cols: 2, NumMines: 1}},
		{name: "zero rows", config: GameConfig{Rows: 0, Cols: 9, NumMines: 1}, wantErr: true},
		{name: "negative cols", config: GameConfig{Rows: 9, Cols: -1, NumMines: 1}, wantErr: true},
		{name: "zero mines", config: GameConfig{Rows: 3, Cols: 3, NumMines: 0}, wantErr: true},
		{name: "mines fill board", config: GameConfig{Rows: 3, Cols: 3, NumMines: 9}, wantErr: true},
		{name: "1x1 board", config: GameConfig{Rows: 1, Cols: 1, NumMines: 1}, wantErr: true},
		{name: "largest allowed board", config: GameConfig{Rows: 1000, Cols: 1000, NumMines: 1}},
		{name: "one cell too many", config: GameConfig{Rows: 1000, Cols: 1001, NumMines: 1}, wantErr: true},
		{name: "huge board", config: GameConfig{Rows: 50000, Cols: 50000, NumMines: 1}, wantErr: true},
		{name: "product overflows int", config: GameConfig{Rows: 1 << 31, Cols: 1 << 31, NumMines: 1}, wantErr: true},
		{name: "max int rows", config: GameConfig{Rows: math.MaxInt, Cols: 2, NumMines: 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, apperror.ErrInvalidConfiguration)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestGameConfig_ValidateWithin(t *testing.T) {
	config := GameConfig{Rows: 20, Cols: 20, NumMines: 10}

	// Given: a limit smaller than the board
	err := config.ValidateWithin(399)

	// Then: the board is rejected
	require.ErrorIs(t, err, apperror.ErrInvalidConfiguration)

	// Then: an exact fit and a missing limit are accepted
	require.NoError(t, config.ValidateWithin(400))
	require.NoError(t, config.ValidateWithin(0))

	// Then: a limit above the hard ceiling does not lift it
	huge := GameConfig{Rows: 2000, Cols: 1000, NumMines: 1}
	require.ErrorIs(t, huge.ValidateWithin(math.MaxInt), apperror.ErrInvalidConfiguration)
}

func TestBoard_ForEachNeighbor(t *testing.T) {
	board := NewBoard(3, 4)

	count := func(row, col int) int {
		n := 0
		board.ForEachNeighbor(row, col, func(_, _ int) { n++ })
		return n
	}

	// Then: corners, edges and inner cells have 3, 5 and 8 neighbours
	assert.Equal(t, 3, count(0, 0))
	assert.Equal(t, 3, count(2, 3))
	assert.Equal(t, 5, count(0, 1))
	assert.Equal(t, 5, count(1, 0))
	assert.Equal(t, 8, count(1, 1))
}

func TestBoard_Counts(t *testing.T) {
	// Given: a board with two mines, one flag and one revealed cell
	board := NewBoard(2, 2)
	board.At(0, 0).IsMine = true
	board.At(1, 1).IsMine = true
	board.At(0, 1).Visibility = Flagged
	board.At(1, 0).Visibility = Revealed

	// Then: counters reflect the layout
	assert.Equal(t, 4, board.Size())
	assert.Equal(t, 2, board.CountMines())
	assert.Equal(t, 1, board.Count(Flagged))
	assert.Equal(t, 1, board.Count(Revealed))
	assert.Equal(t, 2, board.Count(Hidden))
	assert.False(t, board.InBounds(2, 0))
	assert.False(t, board.InBounds(0, -1))
	assert.Equal(t, "flagged", Flagged.String())
}
