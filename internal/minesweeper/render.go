package minesweeper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/minesweeper-backend/internal/entity"
)

const (
	GlyphHidden   = "X"
	GlyphFlagged  = "F"
	GlyphExploded = "*"
	GlyphEmpty    = "-"
)

// Glyph returns the single character shown to the player for a cell.
func Glyph(cell entity.Cell) string {
	switch cell.Visibility {
	case entity.Flagged:
		return GlyphFlagged
	case entity.ExplodedMine:
		return GlyphExploded
	case entity.Revealed:
		if cell.AdjacentMines == 0 {
			return GlyphEmpty
		}
		return strconv.Itoa(cell.AdjacentMines)
	default:
		return GlyphHidden
	}
}

// Render draws the board as agents see it:
//
//	    0  1  2
//	 0  X X X
//	 1  - 1 F
//
// The layout is part of the observation contract and must not change.
func Render(board *entity.Board) string {
	if board == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString("   ")
	for col := range board.Cols {
		if col > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%2d", col)
	}

	for row := range board.Rows {
		fmt.Fprintf(&b, "\n%2d ", row)
		for col := range board.Cols {
			b.WriteByte(' ')
			b.WriteString(Glyph(*board.At(row, col)))
		}
	}

	return b.String()
}
