package simulator

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
)

func TestPercentileThreshold(t *testing.T) {
	data := []int{5, 1, 4, 2, 3, 10, 9, 8, 7, 6}

	tests := []struct {
		percentile float64
		expected   int
	}{
		{percentile: 100, expected: 10},
		{percentile: 99, expected: 10},
		{percentile: 90, expected: 9},
		{percentile: 50, expected: 5},
		{percentile: 51, expected: 6},
		{percentile: 0.1, expected: 1},
	}

	for _, tt := range tests {
		got, err := PercentileThreshold(data, tt.percentile)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got, "p%g", tt.percentile)
	}

	t.Run("Input is left unsorted", func(t *testing.T) {
		_, err := PercentileThreshold(data, 50)
		require.NoError(t, err)
		assert.Equal(t, 5, data[0])
	})

	t.Run("Invalid input", func(t *testing.T) {
		_, err := PercentileThreshold(nil, 50)
		require.ErrorIs(t, err, apperror.ErrEmptyDataset)

		_, err = PercentileThreshold(data, 0)
		require.ErrorIs(t, err, apperror.ErrInvalidPercentile)

		_, err = PercentileThreshold(data, 100.5)
		require.ErrorIs(t, err, apperror.ErrInvalidPercentile)

		_, err = PercentileThreshold(data, math.NaN())
		require.ErrorIs(t, err, apperror.ErrInvalidPercentile)

		_, err = PercentileThreshold(data, math.Inf(1))
		require.ErrorIs(t, err, apperror.ErrInvalidPercentile)
	})
}

func TestSummarize(t *testing.T) {
	summary, err := Summarize([]int{2, 4, 4, 4, 5, 5, 7, 9}, 50)
	require.NoError(t, err)

	assert.Equal(t, 8, summary.Runs)
	assert.Equal(t, 4, summary.Threshold)
	assert.InDelta(t, 5.0, summary.Mean, 1e-12)
	assert.InDelta(t, 2.0, summary.StdDev, 1e-12)
	assert.Equal(t, 2, summary.Min)
	assert.Equal(t, 9, summary.Max)
}

func TestSimulate(t *testing.T) {
	ctx := context.Background()

	t.Run("Results stay within the safe cells", func(t *testing.T) {
		// Given: a 5x5 board with 3 mines
		results, err := Simulate(ctx, 5, 5, 3, 500, 42)

		// Then: every run reveals between 0 and 22 safe cells
		require.NoError(t, err)
		require.Len(t, results, 500)
		for _, r := range results {
			assert.GreaterOrEqual(t, r, 0)
			assert.LessOrEqual(t, r, 22)
		}
	})

	t.Run("Same seed gives the same results", func(t *testing.T) {
		first, err := Simulate(ctx, 6, 6, 6, 200, 7)
		require.NoError(t, err)

		second, err := Simulate(ctx, 6, 6, 6, 200, 7)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("Single safe cell is solved or lost immediately", func(t *testing.T) {
		results, err := Simulate(ctx, 2, 2, 3, 100, 1)
		require.NoError(t, err)

		for _, r := range results {
			assert.Contains(t, []int{0, 1}, r)
		}
	})

	t.Run("Invalid parameters", func(t *testing.T) {
		_, err := Simulate(ctx, 3, 3, 9, 10, 1)
		require.ErrorIs(t, err, apperror.ErrInvalidConfiguration)

		_, err = Simulate(ctx, 3, 3, 1, 0, 1)
		require.ErrorIs(t, err, apperror.ErrInvalidConfiguration)
	})

	t.Run("Canceled context stops the simulation", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := Simulate(canceled, 9, 9, 10, 100, 1)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestRun(t *testing.T) {
	// Given: the default beginner board
	summary, err := Run(context.Background(), Params{
		Rows: 9, Cols: 9, NumMines: 10, Runs: 300, Percentile: DefaultPercentile, Seed: 3,
	})

	// Then: the summary describes the board and sits within the safe range
	require.NoError(t, err)
	assert.Equal(t, 71, summary.SafeCells)
	assert.Equal(t, 300, summary.Runs)
	assert.LessOrEqual(t, summary.Min, summary.Threshold)
	assert.LessOrEqual(t, summary.Threshold, summary.Max)
	assert.LessOrEqual(t, summary.Max, 71)
	assert.Greater(t, summary.Mean, 0.0)

	// Then: percentiles outside (0, 100] are refused before simulating
	for _, percentile := range []float64{0, -5, 101, math.NaN(), math.Inf(-1)} {
		_, err = Run(context.Background(), Params{Rows: 9, Cols: 9, NumMines: 10, Runs: 10, Percentile: percentile})
		require.ErrorIs(t, err, apperror.ErrInvalidPercentile, "percentile %g", percentile)
	}
}
