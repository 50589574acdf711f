// Package simulator estimates how far uniformly random clicking gets on a
// board, which is the baseline the reward is measured against.
package simulator

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
	"github.com/rocketscienceinc/minesweeper-backend/internal/entity"
	"github.com/rocketscienceinc/minesweeper-backend/internal/minesweeper"
)

const DefaultPercentile = 99.0

type Params struct {
	Rows       int
	Cols       int
	NumMines   int
	Runs       int
	Percentile float64
	Seed       int64
}

type Summary struct {
	Rows       int     `json:"rows"`
	Cols       int     `json:"cols"`
	NumMines   int     `json:"num_mines"`
	SafeCells  int     `json:"safe_cells"`
	Runs       int     `json:"runs"`
	Seed       int64   `json:"seed"`
	Percentile float64 `json:"percentile"`
	Threshold  int     `json:"threshold"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	Min        int     `json:"min"`
	Max        int     `json:"max"`
}

// Run simulates params.Runs games and summarizes them.
func Run(ctx context.Context, params Params) (*Summary, error) {
	if err := checkPercentile(params.Percentile); err != nil {
		return nil, err
	}

	results, err := Simulate(ctx, params.Rows, params.Cols, params.NumMines, params.Runs, params.Seed)
	if err != nil {
		return nil, err
	}

	summary, err := Summarize(results, params.Percentile)
	if err != nil {
		return nil, err
	}

	summary.Rows = params.Rows
	summary.Cols = params.Cols
	summary.NumMines = params.NumMines
	summary.SafeCells = params.Rows*params.Cols - params.NumMines
	summary.Seed = params.Seed

	return summary, nil
}

// Simulate plays runs random games and returns the safe cells revealed in
// each. Mines are placed fresh for every run. The result depends only on
// the arguments, not on how the runs are spread over workers.
func Simulate(ctx context.Context, rows, cols, numMines, runs int, seed int64) ([]int, error) {
	config := entity.GameConfig{Rows: rows, Cols: cols, NumMines: numMines}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if runs < 1 {
		return nil, fmt.Errorf("%w: runs must be positive, got %d", apperror.ErrInvalidConfiguration, runs)
	}

	master := minesweeper.NewRand(seed)
	seeds := make([]int64, runs)
	for i := range seeds {
		seeds[i] = master.Int64()
	}

	results := make([]int, runs)
	workers := min(runtime.GOMAXPROCS(0), runs)
	chunk := (runs + workers - 1) / workers

	group, ctx := errgroup.WithContext(ctx)
	for start := 0; start < runs; start += chunk {
		end := min(start+chunk, runs)

		group.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}

				revealed, err := playRandom(config, seeds[i])
				if err != nil {
					return err
				}
				results[i] = revealed
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("simulation aborted: %w", err)
	}

	return results, nil
}

// playRandom clicks uniformly among hidden cells until a mine is hit or the
// board is solved, and returns the safe cells revealed.
func playRandom(config entity.GameConfig, seed int64) (int, error) {
	game, err := minesweeper.NewGame("", config, seed)
	if err != nil {
		return 0, err
	}

	clicks := minesweeper.NewRand(^seed)
	hidden := make([]int, 0, game.Board.Size())

	for !game.IsOver() {
		hidden = hidden[:0]
		for i, cell := range game.Board.Cells {
			if cell.Visibility == entity.Hidden {
				hidden = append(hidden, i)
			}
		}

		target := hidden[clicks.IntN(len(hidden))]
		if _, err = minesweeper.Reveal(game, target/config.Cols, target%config.Cols); err != nil {
			return 0, err
		}
	}

	return game.RevealedCount, nil
}

// checkPercentile accepts (0, 100]. NaN fails every comparison, so it is
// rejected explicitly.
func checkPercentile(p float64) error {
	if math.IsNaN(p) || p <= 0 || p > 100 {
		return fmt.Errorf("%w: got %g", apperror.ErrInvalidPercentile, p)
	}

	return nil
}

// PercentileThreshold returns the nearest-rank "higher" percentile: the
// element at rank ceil(p/100 * n) of the sorted data.
func PercentileThreshold(data []int, percentile float64) (int, error) {
	if len(data) == 0 {
		return 0, apperror.ErrEmptyDataset
	}

	if err := checkPercentile(percentile); err != nil {
		return 0, err
	}

	sorted := slices.Clone(data)
	slices.Sort(sorted)

	rank := int(math.Ceil(percentile / 100 * float64(len(sorted))))
	idx := max(0, min(len(sorted)-1, rank-1))

	return sorted[idx], nil
}

// Summarize computes the percentile threshold, mean, population standard
// deviation and range of results.
func Summarize(results []int, percentile float64) (*Summary, error) {
	threshold, err := PercentileThreshold(results, percentile)
	if err != nil {
		return nil, err
	}

	n := float64(len(results))

	var sum float64
	for _, v := range results {
		sum += float64(v)
	}
	mean := sum / n

	var squares float64
	for _, v := range results {
		d := float64(v) - mean
		squares += d * d
	}

	return &Summary{
		Runs:       len(results),
		Percentile: percentile,
		Threshold:  threshold,
		Mean:       mean,
		StdDev:     math.Sqrt(squares / n),
		Min:        slices.Min(results),
		Max:        slices.Max(results),
	}, nil
}
