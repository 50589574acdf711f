package minesweeper

import (
	"fmt"
	"math/rand/v2"

	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
	"github.com/rocketscienceinc/minesweeper-backend/internal/entity"
)

const (
	OutcomeRevealed  = "revealed"
	OutcomeMineHit   = "mine_hit"
	OutcomeWon       = "won"
	OutcomeFlagged   = "flagged"
	OutcomeUnflagged = "unflagged"
)

// RevealOutcome is the result of a reveal. Board is always the rendered board,
// also when the reveal was rejected.
type RevealOutcome struct {
	Revealed int
	Outcome  string
	Board    string
}

type FlagOutcome struct {
	Delta   int
	Outcome string
	Board   string
}

// NewRand returns the deterministic source used for mine placement.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed))) //nolint: gosec // game randomness
}

// NewBoard places numMines mines on a rows x cols board using seed and
// computes the adjacency counts. All cells start hidden.
func NewBoard(rows, cols, numMines int, seed int64) (*entity.Board, error) {
	config := entity.GameConfig{Rows: rows, Cols: cols, NumMines: numMines}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	board := entity.NewBoard(rows, cols)
	placeMines(board, numMines, NewRand(seed))
	computeAdjacency(board)

	return board, nil
}

func NewGame(id string, config entity.GameConfig, seed int64) (*entity.Game, error) {
	board, err := NewBoard(config.Rows, config.Cols, config.NumMines, seed)
	if err != nil {
		return nil, err
	}

	return &entity.Game{
		ID:     id,
		Config: config,
		Seed:   seed,
		Board:  board,
		Status: entity.StatusInProgress,
	}, nil
}

// placeMines picks random cells until exactly count distinct cells are mined.
func placeMines(board *entity.Board, count int, rnd *rand.Rand) {
	placed := 0
	for placed < count {
		cell := &board.Cells[rnd.IntN(board.Size())]
		if cell.IsMine {
			continue
		}

		cell.IsMine = true
		placed++
	}
}

func computeAdjacency(board *entity.Board) {
	for row := range board.Rows {
		for col := range board.Cols {
			cell := board.At(row, col)
			if cell.IsMine {
				continue
			}

			count := 0
			board.ForEachNeighbor(row, col, func(r, c int) {
				if board.At(r, c).IsMine {
					count++
				}
			})
			cell.AdjacentMines = count
		}
	}
}

func Reveal(game *entity.Game, row, col int) (RevealOutcome, error) {
	if err := game.ConfirmInProgress(); err != nil {
		return RevealOutcome{Board: Render(game.Board)}, err
	}

	if err := validateReveal(game.Board, row, col); err != nil {
		return RevealOutcome{Board: Render(game.Board)}, err
	}

	cell := game.Board.At(row, col)
	if cell.IsMine {
		cell.Visibility = entity.ExplodedMine
		game.Status = entity.StatusLost

		return RevealOutcome{Outcome: OutcomeMineHit, Board: Render(game.Board)}, nil
	}

	revealed := cascade(game.Board, row, col)
	game.RevealedCount += revealed

	outcome := OutcomeRevealed
	if game.RevealedCount == game.SafeCells() {
		game.Status = entity.StatusWon
		outcome = OutcomeWon
	}

	return RevealOutcome{Revealed: revealed, Outcome: outcome, Board: Render(game.Board)}, nil
}

func ToggleFlag(game *entity.Game, row, col int) (FlagOutcome, error) {
	if err := game.ConfirmInProgress(); err != nil {
		return FlagOutcome{Board: Render(game.Board)}, err
	}

	if !game.Board.InBounds(row, col) {
		return FlagOutcome{Board: Render(game.Board)}, outOfBounds(game.Board, row, col)
	}

	var outcome FlagOutcome

	cell := game.Board.At(row, col)
	switch cell.Visibility {
	case entity.Hidden:
		cell.Visibility = entity.Flagged
		outcome = FlagOutcome{Delta: 1, Outcome: OutcomeFlagged}
	case entity.Flagged:
		cell.Visibility = entity.Hidden
		outcome = FlagOutcome{Delta: -1, Outcome: OutcomeUnflagged}
	default:
		return FlagOutcome{Board: Render(game.Board)},
			fmt.Errorf("%w: cannot flag revealed cell (%d, %d)", apperror.ErrInvalidTarget, row, col)
	}

	game.FlaggedCount += outcome.Delta
	outcome.Board = Render(game.Board)

	return outcome, nil
}

// validateReveal - checks that the cell exists and is still hidden.
func validateReveal(board *entity.Board, row, col int) error {
	if !board.InBounds(row, col) {
		return outOfBounds(board, row, col)
	}

	switch board.At(row, col).Visibility {
	case entity.Hidden:
		return nil
	case entity.Flagged:
		return fmt.Errorf("%w: cannot reveal flagged cell (%d, %d)", apperror.ErrInvalidTarget, row, col)
	default:
		return fmt.Errorf("%w: cell (%d, %d) already revealed", apperror.ErrInvalidTarget, row, col)
	}
}

func outOfBounds(board *entity.Board, row, col int) error {
	return fmt.Errorf("%w: (%d, %d) is outside %dx%d board",
		apperror.ErrOutOfBounds, row, col, board.Rows, board.Cols)
}

// cascade reveals the safe cell at row, col and, when it has no adjacent
// mines, the connected zero region plus its numbered border. Flagged cells
// are left alone. Returns the number of newly revealed cells.
func cascade(board *entity.Board, row, col int) int {
	start := board.At(row, col)
	start.Visibility = entity.Revealed
	if start.AdjacentMines != 0 {
		return 1
	}

	revealed := 1
	queue := []int{board.Index(row, col)}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		board.ForEachNeighbor(current/board.Cols, current%board.Cols, func(r, c int) {
			cell := board.At(r, c)
			if cell.Visibility != entity.Hidden || cell.IsMine {
				return
			}

			cell.Visibility = entity.Revealed
			revealed++

			if cell.AdjacentMines == 0 {
				queue = append(queue, board.Index(r, c))
			}
		})
	}

	return revealed
}
