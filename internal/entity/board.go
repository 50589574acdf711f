package entity

type Visibility uint8

const (
	Hidden Visibility = iota
	Revealed
	Flagged
	ExplodedMine
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	case ExplodedMine:
		return "exploded_mine"
	default:
		return "unknown"
	}
}

// Cell is a single square of the board. AdjacentMines is meaningless for mines.
type Cell struct {
	IsMine        bool       `json:"is_mine"`
	AdjacentMines int        `json:"adjacent_mines"`
	Visibility    Visibility `json:"visibility"`
}

// Board is a rows x cols grid stored row-major.
type Board struct {
	Rows  int    `json:"rows"`
	Cols  int    `json:"cols"`
	Cells []Cell `json:"cells"`
}

func NewBoard(rows, cols int) *Board {
	return &Board{
		Rows:  rows,
		Cols:  cols,
		Cells: make([]Cell, rows*cols),
	}
}

func (that *Board) Size() int {
	return that.Rows * that.Cols
}

func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && row < that.Rows && col >= 0 && col < that.Cols
}

func (that *Board) Index(row, col int) int {
	return row*that.Cols + col
}

// At returns the cell at row, col. The caller must check InBounds first.
func (that *Board) At(row, col int) *Cell {
	return &that.Cells[that.Index(row, col)]
}

// ForEachNeighbor calls fn for each of the up to 8 in-bounds neighbours.
func (that *Board) ForEachNeighbor(row, col int, fn func(r, c int)) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}

			r, c := row+dr, col+dc
			if that.InBounds(r, c) {
				fn(r, c)
			}
		}
	}
}

func (that *Board) CountMines() int {
	count := 0
	for i := range that.Cells {
		if that.Cells[i].IsMine {
			count++
		}
	}

	return count
}

func (that *Board) Count(visibility Visibility) int {
	count := 0
	for i := range that.Cells {
		if that.Cells[i].Visibility == visibility {
			count++
		}
	}

	return count
}
