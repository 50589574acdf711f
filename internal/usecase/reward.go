package usecase

import (
	"fmt"
	"strings"
)

// maxPartialReward caps the reward of an unfinished game, only a win pays more.
const maxPartialReward = 0.5

// ExpectedRandomCells is the expected number of safe cells revealed before
// hitting a mine when clicking uniformly at random: (N - M) / (M + 1).
func ExpectedRandomCells(totalCells, numMines int) float64 {
	return float64(totalCells-numMines) / float64(numMines+1)
}

// Reward scores a game against the random-play baseline. A win is worth 1,
// a loss 0, and an unfinished game scales linearly from 0 at the baseline
// to maxPartialReward at full coverage.
func Reward(cellsRevealed, totalCells, numMines int, won, lost bool) float64 {
	switch {
	case won:
		return 1.0
	case lost:
		return 0.0
	}

	expected := ExpectedRandomCells(totalCells, numMines)
	if float64(cellsRevealed) <= expected {
		return 0.0
	}

	safeCells := float64(totalCells - numMines)

	return maxPartialReward * (float64(cellsRevealed) - expected) / (safeCells - expected)
}

func WinRate(gamesWon, gamesPlayed int) float64 {
	return float64(gamesWon) / float64(max(1, gamesPlayed))
}

func summarize(snapshot *EvaluationSnapshot) string {
	var status string
	switch {
	case snapshot.CellsTotal == 0:
		status = "No Game"
	case snapshot.Won:
		status = "Won"
	case snapshot.Done:
		status = "Lost"
	default:
		status = "In Progress"
	}

	var b strings.Builder
	b.WriteString("Game Statistics:\n")
	fmt.Fprintf(&b, "- Cells Revealed: %d / %d\n", snapshot.CellsRevealed, snapshot.CellsTotal-snapshot.NumMines)
	fmt.Fprintf(&b, "- Expected Random: %.1f cells\n", snapshot.ExpectedRandom)
	fmt.Fprintf(&b, "- Performance: %.0f cells above random\n",
		max(0, float64(snapshot.CellsRevealed)-snapshot.ExpectedRandom))
	fmt.Fprintf(&b, "- Win Status: %s\n", status)
	fmt.Fprintf(&b, "- Games Won: %d / %d (win rate %.3f)\n", snapshot.GamesWon, snapshot.GamesPlayed, snapshot.WinRate)
	fmt.Fprintf(&b, "- Reward: %.3f", snapshot.Reward)

	return b.String()
}
